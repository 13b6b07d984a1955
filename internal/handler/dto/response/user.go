package response

import (
	"gear-ledger/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TransferredAssetResponse struct {
	TransactionID uuid.UUID `json:"transactionId"`
	AssetID       uuid.UUID `json:"assetId"`
	AssetName     string    `json:"assetName"`
}

type TransferResponse struct {
	TransferredCount  int                        `json:"transferredCount"`
	TransferredAssets []TransferredAssetResponse `json:"transferredAssets"`
}

func FromTransferResult(r *commands.TransferResult) (*TransferResponse, error) {
	res := &TransferResponse{TransferredAssets: make([]TransferredAssetResponse, 0, len(r.TransferredAssets))}
	if err := copier.Copy(res, r); err != nil {
		return nil, err
	}
	if res.TransferredAssets == nil {
		res.TransferredAssets = []TransferredAssetResponse{}
	}
	return res, nil
}

type UserCheckoutsResponse struct {
	Checkouts []*TransactionResponse `json:"checkouts"`
}
