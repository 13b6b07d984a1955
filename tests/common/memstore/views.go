//go:build unit || e2e

package memstore

import (
	"context"
	"slices"

	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

// Views serves the read-side stores from the committed state.
type Views struct{ s *Store }

func (s *Store) Views() Views { return Views{s: s} }

var _ queries.AssetReadStore = Views{}

func (v Views) FindByID(_ context.Context, id uuid.UUID) (*queries.AssetView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	a, ok := v.s.state.assets[id]
	if !ok {
		return nil, notFound("asset not found")
	}
	view := &queries.AssetView{
		ID:             a.ID(),
		Name:           a.Name(),
		Category:       a.Category(),
		SerialNumber:   a.SerialNumber(),
		AssetTag:       a.AssetTag(),
		ValueCents:     a.ValueCents(),
		Status:         a.Status().String(),
		CreatedBy:      a.CreatedBy(),
		LastModifiedBy: a.LastModifiedBy(),
		CreatedAt:      a.CreatedAt(),
		UpdatedAt:      a.UpdatedAt(),
	}
	for _, t := range v.s.state.transactions {
		if t.AssetID() == id && t.IsActiveCheckout() {
			txID := t.ID()
			view.ActiveTransactionID = &txID
			view.HolderID = clonePtr(t.UserID())
			if t.UserID() != nil {
				if u, ok := v.s.state.users[*t.UserID()]; ok {
					name := u.Name()
					view.HolderName = &name
				}
			}
		}
	}
	return view, nil
}

// TransactionReadStore has its own FindByID, so it is exposed separately.
func (v Views) Transactions() TransactionViews { return TransactionViews(v) }

type TransactionViews struct{ s *Store }

var _ queries.TransactionReadStore = TransactionViews{}

func (v TransactionViews) FindByID(_ context.Context, id uuid.UUID) (*queries.TransactionView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	t, ok := v.s.state.transactions[id]
	if !ok {
		return nil, notFound("transaction not found")
	}
	return v.view(t), nil
}

func (v TransactionViews) ListByAsset(_ context.Context, assetID uuid.UUID, after *queries.Cursor, limit int) ([]*queries.TransactionView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	var rows []*ledger.Transaction
	for _, t := range v.s.state.transactions {
		if t.AssetID() != assetID {
			continue
		}
		if after != nil && !before(t, after) {
			continue
		}
		rows = append(rows, t)
	}
	slices.SortFunc(rows, func(a, b *ledger.Transaction) int {
		if c := b.CheckoutAt().Compare(a.CheckoutAt()); c != 0 {
			return c
		}
		return compareUUID(b.ID(), a.ID())
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]*queries.TransactionView, 0, len(rows))
	for _, t := range rows {
		out = append(out, v.view(t))
	}
	return out, nil
}

func (v TransactionViews) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]*queries.TransactionView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	var rows []*ledger.Transaction
	for _, t := range v.s.state.transactions {
		if t.IsActiveCheckout() && t.UserID() != nil && *t.UserID() == userID {
			rows = append(rows, t)
		}
	}
	slices.SortFunc(rows, func(a, b *ledger.Transaction) int {
		return b.CheckoutAt().Compare(a.CheckoutAt())
	})
	out := make([]*queries.TransactionView, 0, len(rows))
	for _, t := range rows {
		out = append(out, v.view(t))
	}
	return out, nil
}

func (v TransactionViews) view(t *ledger.Transaction) *queries.TransactionView {
	view := &queries.TransactionView{
		ID:                 t.ID(),
		AssetID:            t.AssetID(),
		UserID:             clonePtr(t.UserID()),
		Type:               t.Type().String(),
		Status:             t.Status().String(),
		CheckoutAt:         t.CheckoutAt(),
		ExpectedReturnDate: clonePtr(t.ExpectedReturnDate()),
		ActualReturnDate:   clonePtr(t.ActualReturnDate()),
		Notes:              t.Notes(),
		CreatedBy:          t.CreatedBy(),
		CreatedAt:          t.CreatedAt(),
		UpdatedAt:          t.UpdatedAt(),
	}
	if a, ok := v.s.state.assets[t.AssetID()]; ok {
		view.AssetName = a.Name()
	}
	if t.UserID() != nil {
		if u, ok := v.s.state.users[*t.UserID()]; ok {
			name, email := u.Name(), u.Email().Value()
			view.UserName = &name
			view.UserEmail = &email
		}
	}
	return view
}

// before mirrors the SQL keyset predicate (checkout_date, id) < (at, id).
func before(t *ledger.Transaction, cur *queries.Cursor) bool {
	if c := t.CheckoutAt().Compare(cur.At); c != 0 {
		return c < 0
	}
	return compareUUID(t.ID(), cur.ID) < 0
}

func compareUUID(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}
