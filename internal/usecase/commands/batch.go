package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

const DefaultBatchMaxItems = 50

var (
	ErrEmptyBatch    = errs.Mark(errs.New("batch must contain at least one item"), errs.ErrValidation)
	ErrBatchTooLarge = errs.Mark(errs.New("batch exceeds the maximum number of items"), errs.ErrValidation)
	ErrMissingAsset  = errs.Mark(errs.New("every batch item needs an assetId"), errs.ErrValidation)
)

type BatchLimits struct {
	MaxItems int
}

// BatchNotifier hands a committed batch to the notification collaborator.
// Delivery is best-effort; errors are logged by the caller and never surface.
type BatchNotifier interface {
	NotifyBatch(ctx context.Context, n shared.BatchNotification) error
}

type BatchItem struct {
	AssetID            uuid.UUID
	Notes              string
	ExpectedReturnDate *time.Time
	AssignedUserID     *uuid.UUID
}

type BatchRequest struct {
	Action   asset.Action
	Items    []BatchItem
	ClientID *uuid.UUID
}

const (
	ItemStatusSuccess = "success"
	ItemStatusError   = "error"
)

type BatchItemResult struct {
	AssetID       uuid.UUID
	Status        string
	TransactionID *uuid.UUID
	Error         string
}

type BatchReport struct {
	Processed int
	Total     int
	Results   []BatchItemResult
	Errors    []string
}

func (uc *transactionUseCaseImpl) ProcessBatch(ctx context.Context, req BatchRequest, actor shared.Actor) (*BatchReport, error) {
	if err := uc.validateBatch(req); err != nil {
		return nil, err
	}

	report := &BatchReport{
		Total:   len(req.Items),
		Results: make([]BatchItemResult, 0, len(req.Items)),
		Errors:  make([]string, 0),
	}
	committed := make([]*ProcessResult, 0, len(req.Items))

	// Each item gets its own unit of work; a failed item never rolls back another.
	for i, item := range req.Items {
		single := ProcessRequest{
			AssetID:            item.AssetID,
			Action:             req.Action,
			AssignedUserID:     item.AssignedUserID,
			Notes:              item.Notes,
			ExpectedReturnDate: item.ExpectedReturnDate,
		}

		var res *ProcessResult
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			r, err := uc.processOne(ctx, tx, single, actor)
			if err != nil {
				return err
			}
			res = r
			return nil
		})
		if err != nil {
			msg := itemErrorMessage(err)
			if errs.Kind(err) == nil {
				slog.Error("batch item failed",
					"index", i,
					"asset_id", item.AssetID,
					"action", req.Action,
					"error", err.Error())
			}
			report.Results = append(report.Results, BatchItemResult{
				AssetID: item.AssetID,
				Status:  ItemStatusError,
				Error:   msg,
			})
			report.Errors = append(report.Errors, fmt.Sprintf("asset %s: %s", item.AssetID, msg))
			continue
		}

		txID := res.Transaction.ID()
		report.Processed++
		report.Results = append(report.Results, BatchItemResult{
			AssetID:       item.AssetID,
			Status:        ItemStatusSuccess,
			TransactionID: &txID,
		})
		committed = append(committed, res)
	}

	if len(committed) > 0 {
		uc.notify(ctx, req, actor, committed)
	}

	return report, nil
}

func (uc *transactionUseCaseImpl) validateBatch(req BatchRequest) error {
	if !req.Action.IsValid() {
		return ErrInvalidAction
	}
	if len(req.Items) == 0 {
		return ErrEmptyBatch
	}
	if len(req.Items) > uc.maxBatch {
		return errs.Mark(errs.Newf("batch has %d items, maximum is %d", len(req.Items), uc.maxBatch), ErrBatchTooLarge)
	}
	for _, item := range req.Items {
		if item.AssetID == uuid.Nil {
			return ErrMissingAsset
		}
	}
	return nil
}

func (uc *transactionUseCaseImpl) notify(ctx context.Context, req BatchRequest, actor shared.Actor, committed []*ProcessResult) {
	if uc.notifier == nil {
		return
	}

	n := shared.BatchNotification{
		Action:     req.Action.String(),
		ActorID:    actor.ID,
		ClientID:   req.ClientID,
		Assets:     make([]shared.NotifiedAsset, 0, len(committed)),
		OccurredAt: uc.clock.Now(),
	}
	seen := make(map[uuid.UUID]struct{})
	for _, res := range committed {
		t := res.Transaction
		if uid := t.UserID(); uid != nil {
			if _, ok := seen[*uid]; !ok {
				seen[*uid] = struct{}{}
				n.Assignees = append(n.Assignees, *uid)
			}
		}
		n.Assets = append(n.Assets, shared.NotifiedAsset{
			ID:            res.Asset.ID(),
			Name:          res.Asset.Name(),
			SerialNumber:  res.Asset.SerialNumber(),
			AssetTag:      res.Asset.AssetTag(),
			ValueCents:    res.Asset.ValueCents(),
			TransactionID: t.ID(),
			Notes:         t.Notes(),
			DueDate:       t.ExpectedReturnDate(),
		})
	}

	if err := uc.notifier.NotifyBatch(ctx, n); err != nil {
		slog.Warn("batch notification failed",
			"action", n.Action,
			"actor_id", actor.ID,
			"assets", len(n.Assets),
			"error", errs.Mark(err, errs.ErrNotificationFailure).Error())
	}
}

// itemErrorMessage exposes the reason for classified failures only.
func itemErrorMessage(err error) string {
	if errs.Kind(err) != nil {
		return err.Error()
	}
	return "internal error while processing item"
}
