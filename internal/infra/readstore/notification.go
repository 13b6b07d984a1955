package readstore

import (
	"context"
	"time"

	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type notificationJobViewRow struct {
	ID        uuid.UUID `db:"id"`
	Kind      string    `db:"kind"`
	Topic     string    `db:"topic"`
	Payload   []byte    `db:"payload"`
	RunAt     time.Time `db:"run_at"`
	Attempts  int       `db:"attempts"`
	Status    string    `db:"status"`
	LastError *string   `db:"last_error"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(db db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: db}
}

// selectJobsByStatus lists jobs oldest run_at first. An empty status lists all of them.
func selectJobsByStatus(status string, limit uint) *goqu.SelectDataset {
	ds := db.From("notification_jobs").
		Select("id", "kind", "topic", "payload", "run_at", "attempts", "status", "last_error", "created_at", "updated_at").
		Order(goqu.C("run_at").Asc(), goqu.C("id").Asc()).
		Limit(limit)
	if status != "" {
		ds = ds.Where(goqu.C("status").Eq(status))
	}
	return ds
}

func (s *NotificationReadStore) ListJobs(ctx context.Context, status string, limit uint) ([]*queries.NotificationJobView, error) {
	query, args, err := selectJobsByStatus(status, limit).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build notification job query", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notification jobs", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[notificationJobViewRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notification jobs", err)
	}

	result := make([]*queries.NotificationJobView, len(collected))
	for i, row := range collected {
		result[i] = toNotificationJobView(row)
	}
	return result, nil
}

func toNotificationJobView(row notificationJobViewRow) *queries.NotificationJobView {
	return &queries.NotificationJobView{
		ID:        row.ID,
		Kind:      row.Kind,
		Topic:     row.Topic,
		Payload:   row.Payload,
		RunAt:     row.RunAt,
		Attempts:  row.Attempts,
		Status:    row.Status,
		LastError: row.LastError,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
