package commands

import (
	"context"
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAssetNotFound       = errs.Mark(errs.New("asset not found"), errs.ErrNotFound)
	ErrAssigneeNotFound    = errs.Mark(errs.New("assigned user not found"), errs.ErrNotFound)
	ErrAssigneeInactive    = errs.Mark(errs.New("assigned user is inactive"), errs.ErrValidation)
	ErrInvalidAction       = errs.Mark(errs.New("action must be CHECK_OUT or CHECK_IN"), errs.ErrValidation)
	ErrInvalidReturnDate   = errs.Mark(errs.New("expected return date must be in the future"), errs.ErrValidation)
	ErrConcurrentUpdate    = errs.Mark(errs.New("asset was modified concurrently, retry the request"), errs.ErrConflictingState)
	ErrActiveCheckoutExist = errs.Mark(errs.New("asset already has an active checkout"), errs.ErrConflictingState)
)

type ProcessRequest struct {
	AssetID            uuid.UUID
	Action             asset.Action
	AssignedUserID     *uuid.UUID
	Notes              string
	ExpectedReturnDate *time.Time
}

// ProcessResult carries the ledger record written or closed by the transition
// and the asset in its new state.
type ProcessResult struct {
	Transaction *ledger.Transaction
	Asset       *asset.Asset
}

type TransactionCommands interface {
	Process(ctx context.Context, req ProcessRequest, actor shared.Actor) (*ProcessResult, error)
	ProcessBatch(ctx context.Context, req BatchRequest, actor shared.Actor) (*BatchReport, error)
}

type transactionUseCaseImpl struct {
	uow      shared.UnitOfWork
	sm       asset.StateMachine
	clock    clock.Clock
	notifier BatchNotifier
	maxBatch int
}

func NewTransactionUseCase(
	uow shared.UnitOfWork,
	sm asset.StateMachine,
	clk clock.Clock,
	notifier BatchNotifier,
	limits BatchLimits,
) TransactionCommands {
	maxBatch := limits.MaxItems
	if maxBatch <= 0 || maxBatch > DefaultBatchMaxItems {
		maxBatch = DefaultBatchMaxItems
	}
	return &transactionUseCaseImpl{
		uow:      uow,
		sm:       sm,
		clock:    clk,
		notifier: notifier,
		maxBatch: maxBatch,
	}
}

func (uc *transactionUseCaseImpl) Process(ctx context.Context, req ProcessRequest, actor shared.Actor) (*ProcessResult, error) {
	if !req.Action.IsValid() {
		return nil, ErrInvalidAction
	}

	var result *ProcessResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := uc.processOne(ctx, tx, req, actor)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// processOne must run inside a single unit of work: the asset row lock, the
// ledger write and the conditional status update commit together or not at all.
func (uc *transactionUseCaseImpl) processOne(ctx context.Context, tx shared.Tx, req ProcessRequest, actor shared.Actor) (*ProcessResult, error) {
	now := uc.clock.Now()

	a, err := tx.Assets().FindByIDForUpdate(ctx, tx.DB(), req.AssetID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	active, err := tx.Transactions().FindActiveCheckoutForAsset(ctx, tx.DB(), a.ID())
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err != nil {
		active = nil
	}

	decision, err := a.Apply(uc.sm, req.Action, active != nil, actor.ID, now)
	if err != nil {
		return nil, err
	}

	var record *ledger.Transaction
	switch req.Action {
	case asset.ActionCheckOut:
		record, err = uc.checkOut(ctx, tx, a, req, actor, now)
	case asset.ActionCheckIn:
		record, err = uc.checkIn(ctx, tx, active, req, now)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Assets().UpdateStatus(ctx, tx.DB(), a, decision.From); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrConcurrentUpdate
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &ProcessResult{Transaction: record, Asset: a}, nil
}

func (uc *transactionUseCaseImpl) checkOut(
	ctx context.Context,
	tx shared.Tx,
	a *asset.Asset,
	req ProcessRequest,
	actor shared.Actor,
	now time.Time,
) (*ledger.Transaction, error) {
	assignee, err := uc.resolveAssignee(ctx, tx, req.AssignedUserID, actor)
	if err != nil {
		return nil, err
	}

	record, err := ledger.NewCheckout(a.ID(), assignee, actor.ID, req.Notes, req.ExpectedReturnDate, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidReturnDate)
	}

	if err := tx.Transactions().Create(ctx, tx.DB(), record); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrActiveCheckoutExist
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return record, nil
}

func (uc *transactionUseCaseImpl) checkIn(
	ctx context.Context,
	tx shared.Tx,
	active *ledger.Transaction,
	req ProcessRequest,
	now time.Time,
) (*ledger.Transaction, error) {
	if err := active.Complete(now, req.Notes); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTransition)
	}
	if err := tx.Transactions().Complete(ctx, tx.DB(), active); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrConcurrentUpdate
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return active, nil
}

// resolveAssignee falls back to the actor unless the actor may assign to
// others, in which case the requested user has to exist and be active.
func (uc *transactionUseCaseImpl) resolveAssignee(ctx context.Context, tx shared.Tx, requested *uuid.UUID, actor shared.Actor) (uuid.UUID, error) {
	if requested == nil || *requested == uuid.Nil || *requested == actor.ID {
		return actor.ID, nil
	}
	if !actor.Role.CanAssignOthers() {
		return actor.ID, nil
	}

	u, err := tx.Users().FindByID(ctx, tx.DB(), *requested)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrAssigneeNotFound
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !u.IsActive() {
		return uuid.Nil, ErrAssigneeInactive
	}
	return u.ID(), nil
}
