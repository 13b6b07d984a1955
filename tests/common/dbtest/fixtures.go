//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infradb "gear-ledger/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by the pool and by an open transaction.
type DBLike = infradb.DBTX

func CreateTestUser(t *testing.T, db DBLike, name, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "+" + userID.String()[:8] + "@example.com"
	_, err := db.Exec(context.Background(),
		"INSERT INTO users (id, email, name, role, is_active) VALUES ($1, $2, $3, $4, true)",
		userID, email, name, role)
	require.NoError(t, err)
	return userID
}

func DeactivateUser(t *testing.T, db DBLike, userID uuid.UUID) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET is_active = false WHERE id = $1", userID)
	require.NoError(t, err)
}

// CreateTestAsset inserts an asset directly, bypassing the state machine, so
// tests can start from any status.
func CreateTestAsset(t *testing.T, db DBLike, name, status string, createdBy uuid.UUID) uuid.UUID {
	t.Helper()

	assetID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO assets (id, name, category, serial_number, asset_tag, status, created_by, last_modified_by)
		 VALUES ($1, $2, 'camera', $3, $4, $5, $6, $6)`,
		assetID, name, "SN-"+assetID.String(), "TAG-"+assetID.String()[:8], status, createdBy)
	require.NoError(t, err)
	return assetID
}

func AssetStatus(t *testing.T, db DBLike, assetID uuid.UUID) string {
	t.Helper()
	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM assets WHERE id = $1", assetID).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountRows(t *testing.T, db DBLike, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every application table; the goose version table is kept.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('goose_db_version')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
