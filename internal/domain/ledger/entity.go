package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotActive            = errors.New("transaction is not active")
	ErrNotCheckout          = errors.New("transaction is not a checkout")
	ErrReturnBeforeCheckout = errors.New("expected return date must be after checkout time")
	ErrSameCustodian        = errors.New("cannot transfer a checkout to its current holder")
)

// Transaction is a ledger record of a checkout. It is created ACTIVE and can only
// move to COMPLETED, gain notes, or change custodian through Reassign.
type Transaction struct {
	id                 uuid.UUID
	assetID            uuid.UUID
	userID             *uuid.UUID
	txType             Type
	status             Status
	checkoutAt         time.Time
	expectedReturnDate *time.Time
	actualReturnDate   *time.Time
	notes              string
	createdBy          uuid.UUID
	createdAt          time.Time
	updatedAt          time.Time
}

func NewCheckout(assetID, assignee, actor uuid.UUID, notes string, expectedReturn *time.Time, now time.Time) (*Transaction, error) {
	if expectedReturn != nil && !expectedReturn.After(now) {
		return nil, ErrReturnBeforeCheckout
	}
	user := assignee
	return &Transaction{
		id:                 uuid.New(),
		assetID:            assetID,
		userID:             &user,
		txType:             TypeCheckOut,
		status:             StatusActive,
		checkoutAt:         now,
		expectedReturnDate: expectedReturn,
		notes:              strings.TrimSpace(notes),
		createdBy:          actor,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func Reconstruct(
	id, assetID uuid.UUID,
	userID *uuid.UUID,
	txType Type,
	status Status,
	checkoutAt time.Time,
	expectedReturnDate, actualReturnDate *time.Time,
	notes string,
	createdBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:                 id,
		assetID:            assetID,
		userID:             userID,
		txType:             txType,
		status:             status,
		checkoutAt:         checkoutAt,
		expectedReturnDate: expectedReturnDate,
		actualReturnDate:   actualReturnDate,
		notes:              notes,
		createdBy:          createdBy,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Complete closes an active checkout, stamping the return time.
func (t *Transaction) Complete(now time.Time, notes string) error {
	if t.status != StatusActive {
		return ErrNotActive
	}
	t.status = StatusCompleted
	t.actualReturnDate = &now
	t.AppendNote(notes)
	t.updatedAt = now
	return nil
}

// AppendNote adds to the notes; existing text is never replaced.
func (t *Transaction) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if t.notes == "" {
		t.notes = note
		return
	}
	t.notes = t.notes + NoteSeparator + note
}

// Reassign moves custody of an active checkout to another user and records an
// audit note naming the previous holder.
func (t *Transaction) Reassign(to uuid.UUID, fromLabel string, now time.Time) error {
	if t.txType != TypeCheckOut {
		return ErrNotCheckout
	}
	if t.status != StatusActive {
		return ErrNotActive
	}
	if t.userID != nil && *t.userID == to {
		return ErrSameCustodian
	}
	t.userID = &to
	t.AppendNote(TransferNote(fromLabel, now))
	t.updatedAt = now
	return nil
}

func TransferNote(fromLabel string, at time.Time) string {
	return fmt.Sprintf("Transferred from %s on %s", fromLabel, at.Format(TransferDateLayout))
}

func (t *Transaction) IsActiveCheckout() bool {
	return t.txType == TypeCheckOut && t.status == StatusActive
}

func (t *Transaction) ID() uuid.UUID                  { return t.id }
func (t *Transaction) AssetID() uuid.UUID             { return t.assetID }
func (t *Transaction) UserID() *uuid.UUID             { return t.userID }
func (t *Transaction) Type() Type                     { return t.txType }
func (t *Transaction) Status() Status                 { return t.status }
func (t *Transaction) CheckoutAt() time.Time          { return t.checkoutAt }
func (t *Transaction) ExpectedReturnDate() *time.Time { return t.expectedReturnDate }
func (t *Transaction) ActualReturnDate() *time.Time   { return t.actualReturnDate }
func (t *Transaction) Notes() string                  { return t.notes }
func (t *Transaction) CreatedBy() uuid.UUID           { return t.createdBy }
func (t *Transaction) CreatedAt() time.Time           { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time           { return t.updatedAt }
