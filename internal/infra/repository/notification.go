package repository

import (
	"context"
	"time"

	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const notificationJobsTable = "notification_jobs"

type notificationJobRow struct {
	ID       uuid.UUID `db:"id"`
	Kind     string    `db:"kind"`
	Topic    string    `db:"topic"`
	Payload  []byte    `db:"payload"`
	RunAt    time.Time `db:"run_at"`
	Attempts int       `db:"attempts"`
	Status   string    `db:"status"`
}

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	ds := db.Insert(notificationJobsTable).Rows(goqu.Record{
		"id":       uuid.New(),
		"kind":     kind,
		"topic":    topic,
		"payload":  string(payload),
		"run_at":   runAt,
		"attempts": 0,
		"status":   shared.JobStatusQueued,
	})
	if _, err := execute(ctx, tx, ds); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// claimDueJobs skips rows another relay already holds so several relays can
// drain the queue without double delivery.
func claimDueJobs(now time.Time, limit uint) *goqu.SelectDataset {
	return db.From(notificationJobsTable).
		Select("id", "kind", "topic", "payload", "run_at", "attempts", "status").
		Where(
			goqu.C("status").Eq(shared.JobStatusQueued),
			goqu.C("run_at").Lte(now),
		).
		Order(goqu.C("run_at").Asc()).
		Limit(limit).
		ForUpdate(exp.SkipLocked)
}

func leaseJobs(ids []uuid.UUID, until time.Time) *goqu.UpdateDataset {
	return db.Update(notificationJobsTable).
		Set(goqu.Record{
			"run_at":     until,
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("id").In(ids))
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, tx db.DBTX, now, leaseUntil time.Time, limit uint) ([]shared.NotificationJob, error) {
	rows, err := collectAll[notificationJobRow](ctx, tx, claimDueJobs(now, limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	if _, err := execute(ctx, tx, leaseJobs(ids, leaseUntil)); err != nil {
		return nil, infra.WrapRepoErr("failed to lease notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, shared.NotificationJob{
			ID:       row.ID,
			Kind:     row.Kind,
			Topic:    row.Topic,
			Payload:  row.Payload,
			RunAt:    row.RunAt,
			Attempts: row.Attempts,
			Status:   row.Status,
		})
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx db.DBTX, jobID uuid.UUID) error {
	ds := db.Update(notificationJobsTable).
		Set(goqu.Record{
			"status":     shared.JobStatusSent,
			"attempts":   goqu.L("attempts + 1"),
			"last_error": nil,
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(jobID))
	if _, err := execute(ctx, tx, ds); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkRetry(ctx context.Context, tx db.DBTX, jobID uuid.UUID, status string, lastError string, runAt time.Time) error {
	ds := db.Update(notificationJobsTable).
		Set(goqu.Record{
			"status":     status,
			"attempts":   goqu.L("attempts + 1"),
			"last_error": lastError,
			"run_at":     runAt,
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(jobID))
	if _, err := execute(ctx, tx, ds); err != nil {
		return infra.WrapRepoErr("failed to reschedule notification job", err)
	}
	return nil
}
