//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork. Every unit of work runs
// against a private copy of the state under a single lock, and the copy only
// replaces the committed state when the callback returns nil.
package memstore

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

// Op names a repository write that tests can make fail.
type Op string

const (
	OpAssetUpdateStatus   Op = "asset.update_status"
	OpTransactionCreate   Op = "transaction.create"
	OpTransactionReassign Op = "transaction.reassign"
	OpJobCreate           Op = "job.create"
	OpJobMark             Op = "job.mark"
)

// Fault is consulted before the write it is registered for; a non-nil result
// aborts the write with that error.
type Fault func(id uuid.UUID) error

type state struct {
	assets       map[uuid.UUID]*asset.Asset
	transactions map[uuid.UUID]*ledger.Transaction
	users        map[uuid.UUID]*user.User
	clients      map[uuid.UUID]shared.ClientSnapshot
	presets      map[uuid.UUID]*preset.Preset
	jobs         map[uuid.UUID]*job
}

type job struct {
	shared.NotificationJob
	LastError string
	Seq       int
}

type Store struct {
	mu      sync.Mutex
	open    atomic.Bool
	state   *state
	faults  map[Op]Fault
	commits int
	seq     int
}

func New() *Store {
	return &Store{
		state: &state{
			assets:       map[uuid.UUID]*asset.Asset{},
			transactions: map[uuid.UUID]*ledger.Transaction{},
			users:        map[uuid.UUID]*user.User{},
			clients:      map[uuid.UUID]shared.ClientSnapshot{},
			presets:      map[uuid.UUID]*preset.Preset{},
			jobs:         map[uuid.UUID]*job{},
		},
		faults: map[Op]Fault{},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	s.open.Store(true)
	defer s.open.Store(false)

	work := s.state.clone()
	if err := fn(ctx, &memTx{store: s, st: work}); err != nil {
		return err
	}
	s.state = work
	s.commits++
	return nil
}

// InUnit reports whether a read-write unit of work is running.
func (s *Store) InUnit() bool {
	return s.open.Load()
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{store: s, st: s.state.clone()})
}

// Fail registers f for op until cleared with a nil Fault.
func (s *Store) Fail(op Op, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = f
}

func (s *Store) fault(op Op, id uuid.UUID) error {
	if f, ok := s.faults[op]; ok {
		return f(id)
	}
	return nil
}

// Commits counts units of work that committed.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Seeding helpers write straight into the committed state.

func (s *Store) PutAsset(a *asset.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.assets[a.ID()] = cloneAsset(a)
}

func (s *Store) PutTransaction(t *ledger.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.transactions[t.ID()] = cloneTransaction(t)
}

func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[u.ID()] = cloneUser(u)
}

func (s *Store) PutClient(c shared.ClientSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.clients[c.ID] = c
}

func (s *Store) PutPreset(p *preset.Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.presets[p.ID()] = clonePreset(p)
}

// Snapshot accessors read the committed state.

func (s *Store) Asset(id uuid.UUID) (*asset.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.state.assets[id]
	if !ok {
		return nil, false
	}
	return cloneAsset(a), true
}

func (s *Store) Transaction(id uuid.UUID) (*ledger.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.state.transactions[id]
	if !ok {
		return nil, false
	}
	return cloneTransaction(t), true
}

// TransactionsForAsset returns the asset's ledger ordered by checkout time.
func (s *Store) TransactionsForAsset(assetID uuid.UUID) []*ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ledger.Transaction
	for _, t := range s.state.transactions {
		if t.AssetID() == assetID {
			out = append(out, cloneTransaction(t))
		}
	}
	sortTransactions(out)
	return out
}

func (s *Store) Jobs() []shared.NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]*job, 0, len(s.state.jobs))
	for _, j := range s.state.jobs {
		jobs = append(jobs, j)
	}
	slices.SortFunc(jobs, func(a, b *job) int { return a.Seq - b.Seq })
	out := make([]shared.NotificationJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.NotificationJob)
	}
	return out
}

func (s *Store) JobError(id uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.state.jobs[id]; ok {
		return j.LastError
	}
	return ""
}

func (st *state) clone() *state {
	c := &state{
		assets:       make(map[uuid.UUID]*asset.Asset, len(st.assets)),
		transactions: make(map[uuid.UUID]*ledger.Transaction, len(st.transactions)),
		users:        make(map[uuid.UUID]*user.User, len(st.users)),
		clients:      make(map[uuid.UUID]shared.ClientSnapshot, len(st.clients)),
		presets:      make(map[uuid.UUID]*preset.Preset, len(st.presets)),
		jobs:         make(map[uuid.UUID]*job, len(st.jobs)),
	}
	for k, v := range st.assets {
		c.assets[k] = cloneAsset(v)
	}
	for k, v := range st.transactions {
		c.transactions[k] = cloneTransaction(v)
	}
	for k, v := range st.users {
		c.users[k] = cloneUser(v)
	}
	for k, v := range st.clients {
		c.clients[k] = v
	}
	for k, v := range st.presets {
		c.presets[k] = clonePreset(v)
	}
	for k, v := range st.jobs {
		j := *v
		j.Payload = slices.Clone(v.Payload)
		c.jobs[k] = &j
	}
	return c
}

func cloneAsset(a *asset.Asset) *asset.Asset {
	return asset.Reconstruct(
		a.ID(), a.Name(), a.Category(),
		clonePtr(a.SerialNumber()), clonePtr(a.AssetTag()), clonePtr(a.ValueCents()),
		a.Status(), a.CreatedBy(), a.LastModifiedBy(),
		a.CreatedAt(), a.UpdatedAt(),
	)
}

func cloneTransaction(t *ledger.Transaction) *ledger.Transaction {
	return ledger.Reconstruct(
		t.ID(), t.AssetID(), clonePtr(t.UserID()),
		t.Type(), t.Status(), t.CheckoutAt(),
		clonePtr(t.ExpectedReturnDate()), clonePtr(t.ActualReturnDate()),
		t.Notes(), t.CreatedBy(), t.CreatedAt(), t.UpdatedAt(),
	)
}

func cloneUser(u *user.User) *user.User {
	return user.Reconstruct(u.ID(), u.Email(), u.Name(), u.Role(), u.IsActive(), u.CreatedAt(), u.UpdatedAt())
}

func clonePreset(p *preset.Preset) *preset.Preset {
	items := p.Items()
	for i := range items {
		items[i].Substitutions = slices.Clone(items[i].Substitutions)
	}
	return preset.Reconstruct(p.ID(), p.Name(), p.Description(), items, p.IsActive(), p.Priority(), p.CreatedBy(), p.CreatedAt())
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func sortTransactions(ts []*ledger.Transaction) {
	slices.SortStableFunc(ts, func(a, b *ledger.Transaction) int {
		return a.CheckoutAt().Compare(b.CheckoutAt())
	})
}

type memTx struct {
	store *Store
	st    *state
}

func (t *memTx) DB() db.DBTX                                  { return nil }
func (t *memTx) Assets() shared.AssetRepository               { return assetRepo{t} }
func (t *memTx) Transactions() shared.TransactionRepository   { return transactionRepo{t} }
func (t *memTx) Users() shared.UserRepository                 { return userRepo{t} }
func (t *memTx) Clients() shared.ClientRepository             { return clientRepo{t} }
func (t *memTx) Presets() shared.PresetRepository             { return presetRepo{t} }
func (t *memTx) Notifications() shared.NotificationRepository { return notificationRepo{t} }

func (t *memTx) nextSeq() int {
	t.store.seq++
	return t.store.seq
}
