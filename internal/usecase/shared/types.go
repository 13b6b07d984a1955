package shared

import (
	"time"

	"gear-ledger/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as reported by the identity collaborator.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

type ClientSnapshot struct {
	ID           uuid.UUID
	Name         string
	ContactEmail *string
}

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int
	Status   string
}

// BatchNotification is emitted once per batch that committed at least one item.
type BatchNotification struct {
	Action     string
	ActorID    uuid.UUID
	ClientID   *uuid.UUID
	Assignees  []uuid.UUID
	Assets     []NotifiedAsset
	OccurredAt time.Time
}

type NotifiedAsset struct {
	ID            uuid.UUID
	Name          string
	SerialNumber  *string
	AssetTag      *string
	ValueCents    *int64
	TransactionID uuid.UUID
	Notes         string
	DueDate       *time.Time
}
