package request

import (
	"gear-ledger/internal/domain/asset"
)

type CreateAssetRequest struct {
	Name         string  `json:"name" binding:"required,max=200"`
	Category     string  `json:"category" binding:"max=100"`
	SerialNumber *string `json:"serialNumber,omitempty" binding:"omitempty,max=100"`
	AssetTag     *string `json:"assetTag,omitempty" binding:"omitempty,max=100"`
	ValueCents   *int64  `json:"valueCents,omitempty" binding:"omitempty,min=0"`
}

func (r CreateAssetRequest) ToParams() asset.NewAssetParams {
	return asset.NewAssetParams{
		Name:         r.Name,
		Category:     r.Category,
		SerialNumber: r.SerialNumber,
		AssetTag:     r.AssetTag,
		ValueCents:   r.ValueCents,
	}
}
