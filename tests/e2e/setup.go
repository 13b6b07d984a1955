//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gear-ledger/cmd/bootstrap"
	"gear-ledger/cmd/bootstrap/components"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/infra/migrations"
	"gear-ledger/internal/pkg/config"
	"gear-ledger/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// SharedSuite gives every e2e suite its own migrated database and a fully
// wired router. Tables are truncated before each test.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	s.Config = config.NewTestConfig()
	s.Config.DB = createDatabase(t, sharedPostgres(t))

	pool, closePool, err := db.Connect(s.Config.DB)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(closePool)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, migrations.Up(ctx, pool), "マイグレーションに失敗")

	s.DB = pool
	s.Router = startApp(t, s.Config, pool)
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "テーブルの初期化に失敗")
}

// createDatabase makes a database private to the calling suite and drops it afterwards.
func createDatabase(t *testing.T, srv postgresServer) config.DBConfig {
	t.Helper()
	name := "ledger_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, srv.dsn("postgres"))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 並列実行中はテンプレートDBのロックで失敗することがあるので少し待って再試行
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("retrying CREATE DATABASE", "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, srv.dsn("postgres"))
		if err != nil {
			slog.Warn("could not connect to drop test database", "database", name, "error", err)
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("could not drop test database", "database", name, "error", err)
		}
	})

	return config.DBConfig{
		Host:     srv.Host,
		Port:     srv.Port,
		User:     srv.User,
		Password: srv.Password,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

// startApp wires the production modules around the suite's pool and config.
func startApp(t *testing.T, cfg config.Config, pool *pgxpool.Pool) *gin.Engine {
	t.Helper()
	var router *gin.Engine

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *pgxpool.Pool { return pool }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.ConfigSections,
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		bootstrap.OutboxModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリの起動に失敗")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fx app did not stop cleanly", "error", err)
		}
	})

	require.NotNil(t, router)
	return router
}
