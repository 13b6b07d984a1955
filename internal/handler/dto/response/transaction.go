package response

import (
	"time"

	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TransactionResponse struct {
	ID                 uuid.UUID  `json:"id"`
	AssetID            uuid.UUID  `json:"assetId"`
	AssetName          string     `json:"assetName"`
	UserID             *uuid.UUID `json:"userId,omitempty"`
	UserName           *string    `json:"userName,omitempty"`
	UserEmail          *string    `json:"userEmail,omitempty"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	CheckoutAt         time.Time  `json:"checkoutDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	ActualReturnDate   *time.Time `json:"actualReturnDate,omitempty"`
	Notes              string     `json:"notes"`
	CreatedBy          uuid.UUID  `json:"createdBy"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func FromTransactionView(v *queries.TransactionView) (*TransactionResponse, error) {
	res := &TransactionResponse{}
	if err := copier.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

// FromProcessResult renders the committed record without the user join, so
// the user name and email are left empty.
func FromProcessResult(r *commands.ProcessResult) *TransactionResponse {
	t := r.Transaction
	res := &TransactionResponse{
		ID:                 t.ID(),
		AssetID:            t.AssetID(),
		UserID:             t.UserID(),
		Type:               string(t.Type()),
		Status:             string(t.Status()),
		CheckoutAt:         t.CheckoutAt(),
		ExpectedReturnDate: t.ExpectedReturnDate(),
		ActualReturnDate:   t.ActualReturnDate(),
		Notes:              t.Notes(),
		CreatedBy:          t.CreatedBy(),
		CreatedAt:          t.CreatedAt(),
		UpdatedAt:          t.UpdatedAt(),
	}
	if r.Asset != nil {
		res.AssetName = r.Asset.Name()
	}
	return res
}

func FromTransactionViews(vs []*queries.TransactionView) ([]*TransactionResponse, error) {
	res := make([]*TransactionResponse, 0, len(vs))
	if len(vs) == 0 {
		return res, nil
	}
	if err := copier.Copy(&res, &vs); err != nil {
		return nil, err
	}
	return res, nil
}

type BatchItemResultResponse struct {
	AssetID       uuid.UUID  `json:"assetId"`
	Status        string     `json:"status"`
	TransactionID *uuid.UUID `json:"transactionId,omitempty"`
	Error         string     `json:"error,omitempty"`
}

type BatchReportResponse struct {
	Processed int                       `json:"processed"`
	Total     int                       `json:"total"`
	Results   []BatchItemResultResponse `json:"results"`
	Errors    []string                  `json:"errors"`
}

func FromBatchReport(r *commands.BatchReport) (*BatchReportResponse, error) {
	res := &BatchReportResponse{
		Results: make([]BatchItemResultResponse, 0, len(r.Results)),
		Errors:  make([]string, 0, len(r.Errors)),
	}
	if err := copier.Copy(res, r); err != nil {
		return nil, err
	}
	if res.Results == nil {
		res.Results = []BatchItemResultResponse{}
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	return res, nil
}

type PreflightResultResponse struct {
	AssetID       uuid.UUID `json:"assetId"`
	Allowed       bool      `json:"allowed"`
	Reason        string    `json:"reason,omitempty"`
	CurrentStatus string    `json:"currentStatus,omitempty"`
}

type PreflightResponse struct {
	Results []PreflightResultResponse `json:"results"`
}

func FromPreflight(rs []queries.PreflightResult) (*PreflightResponse, error) {
	res := &PreflightResponse{Results: make([]PreflightResultResponse, 0, len(rs))}
	if err := copier.Copy(&res.Results, &rs); err != nil {
		return nil, err
	}
	return res, nil
}
