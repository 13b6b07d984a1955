//go:build unit || e2e

package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	errNoRows    = errs.New("no rows in result set")
	errDuplicate = errs.New("duplicate key value violates unique constraint")
	errNoMatch   = errs.New("conditional update matched no row")
)

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, errNoRows, infra.KindNotFound)
}

type assetRepo struct{ tx *memTx }

func (r assetRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*asset.Asset, error) {
	a, ok := r.tx.st.assets[id]
	if !ok {
		return nil, notFound("asset not found")
	}
	return cloneAsset(a), nil
}

// The store lock already serializes units of work, which is the row lock.
func (r assetRepo) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*asset.Asset, error) {
	return r.FindByID(ctx, tx, id)
}

func (r assetRepo) FindByIDs(_ context.Context, _ db.DBTX, ids []uuid.UUID) ([]*asset.Asset, error) {
	out := make([]*asset.Asset, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if a, ok := r.tx.st.assets[id]; ok {
			out = append(out, cloneAsset(a))
		}
	}
	return out, nil
}

func (r assetRepo) Statuses(_ context.Context, _ db.DBTX, ids []uuid.UUID) (map[uuid.UUID]asset.Status, error) {
	out := make(map[uuid.UUID]asset.Status, len(ids))
	for _, id := range ids {
		if a, ok := r.tx.st.assets[id]; ok {
			out[id] = a.Status()
		}
	}
	return out, nil
}

func (r assetRepo) Create(_ context.Context, _ db.DBTX, a *asset.Asset) error {
	for _, existing := range r.tx.st.assets {
		if sameIdentifier(existing.SerialNumber(), a.SerialNumber()) || sameIdentifier(existing.AssetTag(), a.AssetTag()) {
			return infra.WrapRepoErr("failed to create asset", errDuplicate, infra.KindDuplicateKey)
		}
	}
	r.tx.st.assets[a.ID()] = cloneAsset(a)
	return nil
}

func (r assetRepo) UpdateStatus(_ context.Context, _ db.DBTX, a *asset.Asset, expected asset.Status) error {
	if err := r.tx.store.fault(OpAssetUpdateStatus, a.ID()); err != nil {
		return infra.WrapRepoErr("failed to update asset status", err)
	}
	stored, ok := r.tx.st.assets[a.ID()]
	if !ok || stored.Status() != expected {
		return infra.WrapRepoErr("asset status changed concurrently", errNoMatch, infra.KindConflict)
	}
	r.tx.st.assets[a.ID()] = cloneAsset(a)
	return nil
}

func sameIdentifier(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

type transactionRepo struct{ tx *memTx }

func (r transactionRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*ledger.Transaction, error) {
	t, ok := r.tx.st.transactions[id]
	if !ok {
		return nil, notFound("transaction not found")
	}
	return cloneTransaction(t), nil
}

func (r transactionRepo) activeCheckouts(match func(*ledger.Transaction) bool) []*ledger.Transaction {
	var out []*ledger.Transaction
	for _, t := range r.tx.st.transactions {
		if t.IsActiveCheckout() && match(t) {
			out = append(out, cloneTransaction(t))
		}
	}
	sortTransactions(out)
	return out
}

func (r transactionRepo) FindActiveCheckoutForAsset(_ context.Context, _ db.DBTX, assetID uuid.UUID) (*ledger.Transaction, error) {
	active := r.activeCheckouts(func(t *ledger.Transaction) bool { return t.AssetID() == assetID })
	if len(active) == 0 {
		return nil, notFound("no active checkout")
	}
	return active[len(active)-1], nil
}

func (r transactionRepo) ActiveCheckoutAssetIDs(_ context.Context, _ db.DBTX, assetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(assetIDs))
	for _, t := range r.activeCheckouts(func(t *ledger.Transaction) bool { return slices.Contains(assetIDs, t.AssetID()) }) {
		out[t.AssetID()] = true
	}
	return out, nil
}

func (r transactionRepo) FindActiveCheckoutsByUserForUpdate(_ context.Context, _ db.DBTX, userID uuid.UUID) ([]*ledger.Transaction, error) {
	return r.activeCheckouts(func(t *ledger.Transaction) bool {
		return t.UserID() != nil && *t.UserID() == userID
	}), nil
}

func (r transactionRepo) Create(_ context.Context, _ db.DBTX, t *ledger.Transaction) error {
	if err := r.tx.store.fault(OpTransactionCreate, t.AssetID()); err != nil {
		return infra.WrapRepoErr("failed to create transaction", err)
	}
	if t.IsActiveCheckout() {
		for _, existing := range r.tx.st.transactions {
			if existing.IsActiveCheckout() && existing.AssetID() == t.AssetID() {
				return infra.WrapRepoErr("failed to create transaction", errDuplicate, infra.KindDuplicateKey)
			}
		}
	}
	r.tx.st.transactions[t.ID()] = cloneTransaction(t)
	return nil
}

func (r transactionRepo) Complete(_ context.Context, _ db.DBTX, t *ledger.Transaction) error {
	stored, ok := r.tx.st.transactions[t.ID()]
	if !ok || stored.Status() != ledger.StatusActive {
		return infra.WrapRepoErr("transaction closed concurrently", errNoMatch, infra.KindConflict)
	}
	r.tx.st.transactions[t.ID()] = cloneTransaction(t)
	return nil
}

func (r transactionRepo) Reassign(_ context.Context, _ db.DBTX, t *ledger.Transaction, from uuid.UUID) error {
	if err := r.tx.store.fault(OpTransactionReassign, t.ID()); err != nil {
		return infra.WrapRepoErr("failed to reassign transaction", err)
	}
	stored, ok := r.tx.st.transactions[t.ID()]
	if !ok || !stored.IsActiveCheckout() || stored.UserID() == nil || *stored.UserID() != from {
		return infra.WrapRepoErr("transaction custody changed concurrently", errNoMatch, infra.KindConflict)
	}
	r.tx.st.transactions[t.ID()] = cloneTransaction(t)
	return nil
}

type userRepo struct{ tx *memTx }

func (r userRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*user.User, error) {
	u, ok := r.tx.st.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return cloneUser(u), nil
}

type clientRepo struct{ tx *memTx }

func (r clientRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.ClientSnapshot, error) {
	c, ok := r.tx.st.clients[id]
	if !ok {
		return nil, notFound("client not found")
	}
	return &c, nil
}

type presetRepo struct{ tx *memTx }

func (r presetRepo) ListActive(_ context.Context, _ db.DBTX) ([]*preset.Preset, error) {
	out := make([]*preset.Preset, 0, len(r.tx.st.presets))
	for _, p := range r.tx.st.presets {
		if p.IsActive() {
			out = append(out, clonePreset(p))
		}
	}
	slices.SortFunc(out, func(a, b *preset.Preset) int {
		if a.Priority() != b.Priority() {
			return b.Priority() - a.Priority()
		}
		return strings.Compare(a.Name(), b.Name())
	})
	return out, nil
}

func (r presetRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*preset.Preset, error) {
	p, ok := r.tx.st.presets[id]
	if !ok {
		return nil, notFound("preset not found")
	}
	return clonePreset(p), nil
}

func (r presetRepo) Create(_ context.Context, _ db.DBTX, p *preset.Preset) error {
	for _, existing := range r.tx.st.presets {
		if existing.Name() == p.Name() {
			return infra.WrapRepoErr("failed to create preset", errDuplicate, infra.KindDuplicateKey)
		}
	}
	r.tx.st.presets[p.ID()] = clonePreset(p)
	return nil
}

type notificationRepo struct{ tx *memTx }

func (r notificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	id := uuid.New()
	if err := r.tx.store.fault(OpJobCreate, id); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	r.tx.st.jobs[id] = &job{
		NotificationJob: shared.NotificationJob{
			ID:      id,
			Kind:    kind,
			Topic:   topic,
			Payload: slices.Clone(payload),
			RunAt:   runAt,
			Status:  shared.JobStatusQueued,
		},
		Seq: r.tx.nextSeq(),
	}
	return nil
}

func (r notificationRepo) ClaimDue(_ context.Context, _ db.DBTX, now, leaseUntil time.Time, limit uint) ([]shared.NotificationJob, error) {
	var due []*job
	for _, j := range r.tx.st.jobs {
		if j.Status == shared.JobStatusQueued && !j.RunAt.After(now) {
			due = append(due, j)
		}
	}
	slices.SortFunc(due, func(a, b *job) int {
		if c := a.RunAt.Compare(b.RunAt); c != 0 {
			return c
		}
		return a.Seq - b.Seq
	})
	if uint(len(due)) > limit {
		due = due[:limit]
	}
	out := make([]shared.NotificationJob, 0, len(due))
	for _, j := range due {
		n := j.NotificationJob
		n.Payload = slices.Clone(j.Payload)
		out = append(out, n)
		j.RunAt = leaseUntil
	}
	return out, nil
}

func (r notificationRepo) MarkSent(_ context.Context, _ db.DBTX, jobID uuid.UUID) error {
	if err := r.tx.store.fault(OpJobMark, jobID); err != nil {
		return err
	}
	j, ok := r.tx.st.jobs[jobID]
	if !ok {
		return notFound("notification job not found")
	}
	j.Status = shared.JobStatusSent
	j.Attempts++
	j.LastError = ""
	return nil
}

func (r notificationRepo) MarkRetry(_ context.Context, _ db.DBTX, jobID uuid.UUID, status string, lastError string, runAt time.Time) error {
	if err := r.tx.store.fault(OpJobMark, jobID); err != nil {
		return err
	}
	j, ok := r.tx.st.jobs[jobID]
	if !ok {
		return notFound("notification job not found")
	}
	j.Status = status
	j.Attempts++
	j.LastError = lastError
	j.RunAt = runAt
	return nil
}
