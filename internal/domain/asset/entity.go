package asset

import (
	"errors"
	"strings"
	"time"

	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errors.New("invalid asset status")
	ErrInvalidAction = errors.New("invalid transaction action")
	ErrEmptyName     = errors.New("asset name is required")
	ErrNegativeValue = errors.New("asset value must not be negative")
)

type Asset struct {
	id             uuid.UUID
	name           string
	category       string
	serialNumber   *string
	assetTag       *string
	valueCents     *int64
	status         Status
	createdBy      uuid.UUID
	lastModifiedBy uuid.UUID
	createdAt      time.Time
	updatedAt      time.Time
}

type NewAssetParams struct {
	Name         string
	Category     string
	SerialNumber *string
	AssetTag     *string
	ValueCents   *int64
}

// NewAsset registers equipment as AVAILABLE.
func NewAsset(p NewAssetParams, createdBy uuid.UUID, now time.Time) (*Asset, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if p.ValueCents != nil && *p.ValueCents < 0 {
		return nil, ErrNegativeValue
	}

	return &Asset{
		id:             uuid.New(),
		name:           name,
		category:       strings.TrimSpace(p.Category),
		serialNumber:   patch.TrimmedOrNil(p.SerialNumber),
		assetTag:       patch.TrimmedOrNil(p.AssetTag),
		valueCents:     p.ValueCents,
		status:         StatusAvailable,
		createdBy:      createdBy,
		lastModifiedBy: createdBy,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds an asset from persisted state without validation.
func Reconstruct(
	id uuid.UUID,
	name, category string,
	serialNumber, assetTag *string,
	valueCents *int64,
	status Status,
	createdBy, lastModifiedBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Asset {
	return &Asset{
		id:             id,
		name:           name,
		category:       category,
		serialNumber:   serialNumber,
		assetTag:       assetTag,
		valueCents:     valueCents,
		status:         status,
		createdBy:      createdBy,
		lastModifiedBy: lastModifiedBy,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Apply runs action through the state machine and, if accepted, moves the asset
// to the next status. A rejection leaves the asset untouched and is marked
// errs.ErrInvalidTransition with the human-readable reason as its message.
func (a *Asset) Apply(sm StateMachine, action Action, hasActiveCheckout bool, actor uuid.UUID, now time.Time) (Decision, error) {
	d := sm.Decide(a.status, action, hasActiveCheckout)
	if !d.Allowed {
		return d, errs.Mark(errs.New(d.Reason), errs.ErrInvalidTransition)
	}
	a.status = d.Next
	a.lastModifiedBy = actor
	a.updatedAt = now
	return d, nil
}

func (a *Asset) ID() uuid.UUID             { return a.id }
func (a *Asset) Name() string              { return a.name }
func (a *Asset) Category() string          { return a.category }
func (a *Asset) SerialNumber() *string     { return a.serialNumber }
func (a *Asset) AssetTag() *string         { return a.assetTag }
func (a *Asset) ValueCents() *int64        { return a.valueCents }
func (a *Asset) Status() Status            { return a.status }
func (a *Asset) CreatedBy() uuid.UUID      { return a.createdBy }
func (a *Asset) LastModifiedBy() uuid.UUID { return a.lastModifiedBy }
func (a *Asset) CreatedAt() time.Time      { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time      { return a.updatedAt }
