package request

import (
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProcessTransactionRequest struct {
	AssetID            uuid.UUID  `json:"assetId" binding:"required"`
	Type               string     `json:"type" binding:"required,oneof=CHECK_OUT CHECK_IN"`
	UserID             *uuid.UUID `json:"userId,omitempty"`
	Notes              string     `json:"notes" binding:"max=2000"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
}

func (r ProcessTransactionRequest) ToCommand() commands.ProcessRequest {
	return commands.ProcessRequest{
		AssetID:            r.AssetID,
		Action:             asset.Action(r.Type),
		AssignedUserID:     r.UserID,
		Notes:              r.Notes,
		ExpectedReturnDate: r.ExpectedReturnDate,
	}
}

type BatchItemRequest struct {
	AssetID            uuid.UUID  `json:"assetId" binding:"required"`
	Notes              string     `json:"notes" binding:"max=2000"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	AssignedUserID     *uuid.UUID `json:"assignedUserId,omitempty"`
}

// BatchTransactionRequest leaves the item ceiling to the use case, which reads
// it from configuration.
type BatchTransactionRequest struct {
	Action   string             `json:"action" binding:"required,oneof=CHECK_OUT CHECK_IN"`
	Items    []BatchItemRequest `json:"items" binding:"required,min=1,dive"`
	ClientID *uuid.UUID         `json:"clientId,omitempty"`
}

func (r BatchTransactionRequest) ToCommand() commands.BatchRequest {
	items := make([]commands.BatchItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.BatchItem{
			AssetID:            it.AssetID,
			Notes:              it.Notes,
			ExpectedReturnDate: it.ExpectedReturnDate,
			AssignedUserID:     it.AssignedUserID,
		}
	}
	return commands.BatchRequest{
		Action:   asset.Action(r.Action),
		Items:    items,
		ClientID: r.ClientID,
	}
}

type PreflightRequest struct {
	Action   string      `json:"action" binding:"required,oneof=CHECK_OUT CHECK_IN"`
	AssetIDs []uuid.UUID `json:"assetIds" binding:"required,min=1"`
}
