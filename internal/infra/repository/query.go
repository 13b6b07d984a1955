package repository

import (
	"context"

	"gear-ledger/internal/infra/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// statement is any goqu dataset that renders to SQL plus positional args.
type statement interface {
	ToSQL() (string, []any, error)
}

func collectOne[T any](ctx context.Context, tx db.DBTX, stmt statement) (T, error) {
	var zero T
	query, args, err := stmt.ToSQL()
	if err != nil {
		return zero, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
}

func collectAll[T any](ctx context.Context, tx db.DBTX, stmt statement) ([]T, error) {
	query, args, err := stmt.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func execute(ctx context.Context, tx db.DBTX, stmt statement) (pgconn.CommandTag, error) {
	query, args, err := stmt.ToSQL()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return tx.Exec(ctx, query, args...)
}
