//go:build unit || e2e

package builder

import (
	"time"

	"gear-ledger/internal/domain/asset"

	"github.com/google/uuid"
)

type AssetBuilder struct {
	ID           uuid.UUID
	Name         string
	Category     string
	SerialNumber *string
	AssetTag     *string
	ValueCents   *int64
	Status       asset.Status
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
}

func NewAssetBuilder() *AssetBuilder {
	serial := "SN-0001"
	tag := "TAG-0001"
	value := int64(129900)
	return &AssetBuilder{
		ID:           uuid.New(),
		Name:         "Sony A7 IV",
		Category:     "camera",
		SerialNumber: &serial,
		AssetTag:     &tag,
		ValueCents:   &value,
		Status:       asset.StatusAvailable,
		CreatedBy:    uuid.New(),
		CreatedAt:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (a *AssetBuilder) With(mutate func(*AssetBuilder)) *AssetBuilder {
	mutate(a)
	return a
}

func (a *AssetBuilder) BuildDomain() *asset.Asset {
	return asset.Reconstruct(
		a.ID, a.Name, a.Category,
		a.SerialNumber, a.AssetTag, a.ValueCents,
		a.Status, a.CreatedBy, a.CreatedBy,
		a.CreatedAt, a.CreatedAt,
	)
}

func (a *AssetBuilder) BuildParams() asset.NewAssetParams {
	return asset.NewAssetParams{
		Name:         a.Name,
		Category:     a.Category,
		SerialNumber: a.SerialNumber,
		AssetTag:     a.AssetTag,
		ValueCents:   a.ValueCents,
	}
}

func (a *AssetBuilder) WithID(id uuid.UUID) *AssetBuilder {
	a.ID = id
	return a
}

func (a *AssetBuilder) WithName(name string) *AssetBuilder {
	a.Name = name
	return a
}

func (a *AssetBuilder) WithStatus(status asset.Status) *AssetBuilder {
	a.Status = status
	return a
}

func (a *AssetBuilder) WithSerial(serial string) *AssetBuilder {
	a.SerialNumber = &serial
	return a
}

func (a *AssetBuilder) WithTag(tag string) *AssetBuilder {
	a.AssetTag = &tag
	return a
}

func (a *AssetBuilder) WithoutIdentifiers() *AssetBuilder {
	a.SerialNumber = nil
	a.AssetTag = nil
	return a
}
