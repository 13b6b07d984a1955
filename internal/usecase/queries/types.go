package queries

import (
	"time"

	"github.com/google/uuid"
)

// AssetView is an asset with its current holder, if checked out.
type AssetView struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	SerialNumber        *string    `json:"serial_number,omitempty"`
	AssetTag            *string    `json:"asset_tag,omitempty"`
	ValueCents          *int64     `json:"value_cents,omitempty"`
	Status              string     `json:"status"`
	CreatedBy           uuid.UUID  `json:"created_by"`
	LastModifiedBy      uuid.UUID  `json:"last_modified_by"`
	ActiveTransactionID *uuid.UUID `json:"active_transaction_id,omitempty"`
	HolderID            *uuid.UUID `json:"holder_id,omitempty"`
	HolderName          *string    `json:"holder_name,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type TransactionView struct {
	ID                 uuid.UUID  `json:"id"`
	AssetID            uuid.UUID  `json:"asset_id"`
	AssetName          string     `json:"asset_name"`
	UserID             *uuid.UUID `json:"user_id,omitempty"`
	UserName           *string    `json:"user_name,omitempty"`
	UserEmail          *string    `json:"user_email,omitempty"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	CheckoutAt         time.Time  `json:"checkout_at"`
	ExpectedReturnDate *time.Time `json:"expected_return_date,omitempty"`
	ActualReturnDate   *time.Time `json:"actual_return_date,omitempty"`
	Notes              string     `json:"notes"`
	CreatedBy          uuid.UUID  `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// PreflightResult is a dry-run decision for one asset in a cart.
type PreflightResult struct {
	AssetID       uuid.UUID
	Allowed       bool
	Reason        string
	CurrentStatus string
}

// NotificationJobView is one outbox row as operators see it.
type NotificationJobView struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Topic     string    `json:"topic"`
	Payload   []byte    `json:"payload"`
	RunAt     time.Time `json:"run_at"`
	Attempts  int       `json:"attempts"`
	Status    string    `json:"status"`
	LastError *string   `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
