package request

import "github.com/google/uuid"

type TransferRequest struct {
	ToUserID uuid.UUID `json:"toUserId" binding:"required"`
}
