package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/infra/repository"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/pkg/pgconv"
	"gear-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = 100 * time.Millisecond
)

// Repositories is the set of stateless repositories a transaction hands out.
type Repositories struct {
	Assets        shared.AssetRepository
	Transactions  shared.TransactionRepository
	Users         shared.UserRepository
	Clients       shared.ClientRepository
	Presets       shared.PresetRepository
	Notifications shared.NotificationRepository
}

func DefaultRepositories() Repositories {
	return Repositories{
		Assets:        repository.NewAssetRepository(),
		Transactions:  repository.NewTransactionRepository(),
		Users:         repository.NewUserRepository(),
		Clients:       repository.NewClientRepository(),
		Presets:       repository.NewPresetRepository(),
		Notifications: repository.NewNotificationRepository(),
	}
}

type PostgresUoW struct {
	pool       *pgxpool.Pool
	repos      Repositories
	maxRetries int
	backoff    time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, repos Repositories) *PostgresUoW {
	return &PostgresUoW{
		pool:       pool,
		repos:      repos,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
}

// ReadCommitted plus row locks is enough: every write path locks the asset row
// or conditions its UPDATE on the status it read.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, u.newTx(pgxTx))
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, u.maxRetries) {
			if attempt == u.maxRetries && pgconv.IsRetryable(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, u.backoff)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, u.newTx(pgxTx)); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) newTx(dbtx db.DBTX) *pgTx {
	return &pgTx{dbtx: dbtx, repos: u.repos}
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return pgconv.IsRetryable(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

type pgTx struct {
	dbtx  db.DBTX
	repos Repositories
}

func (t *pgTx) DB() db.DBTX                                  { return t.dbtx }
func (t *pgTx) Assets() shared.AssetRepository               { return t.repos.Assets }
func (t *pgTx) Transactions() shared.TransactionRepository   { return t.repos.Transactions }
func (t *pgTx) Users() shared.UserRepository                 { return t.repos.Users }
func (t *pgTx) Clients() shared.ClientRepository             { return t.repos.Clients }
func (t *pgTx) Presets() shared.PresetRepository             { return t.repos.Presets }
func (t *pgTx) Notifications() shared.NotificationRepository { return t.repos.Notifications }
