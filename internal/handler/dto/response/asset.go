package response

import (
	"time"

	"gear-ledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AssetResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	SerialNumber        *string    `json:"serialNumber,omitempty"`
	AssetTag            *string    `json:"assetTag,omitempty"`
	ValueCents          *int64     `json:"valueCents,omitempty"`
	Status              string     `json:"status"`
	CreatedBy           uuid.UUID  `json:"createdBy"`
	LastModifiedBy      uuid.UUID  `json:"lastModifiedBy"`
	ActiveTransactionID *uuid.UUID `json:"activeTransactionId,omitempty"`
	HolderID            *uuid.UUID `json:"holderId,omitempty"`
	HolderName          *string    `json:"holderName,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func FromAssetView(v *queries.AssetView) (*AssetResponse, error) {
	res := &AssetResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

type AssetHistoryResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	NextCursor   string                 `json:"nextCursor,omitempty"`
}
