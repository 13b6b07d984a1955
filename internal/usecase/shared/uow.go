package shared

import (
	"context"
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Assets() AssetRepository
	Transactions() TransactionRepository
	Users() UserRepository
	Clients() ClientRepository
	Presets() PresetRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

type AssetRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*asset.Asset, error)
	// FindByIDForUpdate locks the asset row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*asset.Asset, error)
	FindByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID) ([]*asset.Asset, error)
	Statuses(ctx context.Context, tx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]asset.Status, error)
	Create(ctx context.Context, tx db.DBTX, a *asset.Asset) error
	// UpdateStatus writes a's status only if the stored status still equals expected.
	UpdateStatus(ctx context.Context, tx db.DBTX, a *asset.Asset, expected asset.Status) error
}

type TransactionRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*ledger.Transaction, error)
	// FindActiveCheckoutForAsset returns the most recent ACTIVE CHECK_OUT.
	FindActiveCheckoutForAsset(ctx context.Context, tx db.DBTX, assetID uuid.UUID) (*ledger.Transaction, error)
	ActiveCheckoutAssetIDs(ctx context.Context, tx db.DBTX, assetIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	FindActiveCheckoutsByUserForUpdate(ctx context.Context, tx db.DBTX, userID uuid.UUID) ([]*ledger.Transaction, error)
	Create(ctx context.Context, tx db.DBTX, t *ledger.Transaction) error
	Complete(ctx context.Context, tx db.DBTX, t *ledger.Transaction) error
	Reassign(ctx context.Context, tx db.DBTX, t *ledger.Transaction, from uuid.UUID) error
}

type UserRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error)
}

type ClientRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*ClientSnapshot, error)
}

type PresetRepository interface {
	ListActive(ctx context.Context, tx db.DBTX) ([]*preset.Preset, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*preset.Preset, error)
	Create(ctx context.Context, tx db.DBTX, p *preset.Preset) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	// ClaimDue locks up to limit due jobs and pushes their run_at to leaseUntil,
	// so a relay that dies mid-delivery releases them once the lease lapses.
	ClaimDue(ctx context.Context, tx db.DBTX, now, leaseUntil time.Time, limit uint) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx db.DBTX, jobID uuid.UUID) error
	MarkRetry(ctx context.Context, tx db.DBTX, jobID uuid.UUID, status string, lastError string, runAt time.Time) error
}
