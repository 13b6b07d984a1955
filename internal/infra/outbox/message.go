package outbox

import (
	"time"

	"gear-ledger/internal/pkg/errs"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

const (
	KindEmail             = "email"
	TopicTransactionBatch = "transaction_batch"
)

// BatchMessage is the payload stored for one committed batch.
type BatchMessage struct {
	Action     string      `json:"action"`
	ActorID    uuid.UUID   `json:"actor_id"`
	Recipients []string    `json:"recipients"`
	Assets     []AssetLine `json:"assets"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type AssetLine struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	SerialNumber  *string    `json:"serial_number,omitempty"`
	AssetTag      *string    `json:"asset_tag,omitempty"`
	ValueCents    *int64     `json:"value_cents,omitempty"`
	TransactionID uuid.UUID  `json:"transaction_id"`
	Notes         string     `json:"notes,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

func Encode(m BatchMessage) ([]byte, error) {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(m)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode notification payload")
	}
	return b, nil
}

func Decode(payload []byte) (BatchMessage, error) {
	var m BatchMessage
	if !jsoniter.ConfigFastest.Valid(payload) {
		return m, errs.New("notification payload is not valid JSON")
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(payload, &m); err != nil {
		return m, errs.Wrap(err, "failed to decode notification payload")
	}
	return m, nil
}
