//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver for wait.ForSQL
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:17-alpine"
	postgresUser     = "ledger"
	postgresPassword = "ledger"
	postgresPort     = nat.Port("5432/tcp")

	// E2E_DATABASE_URL に既存サーバのDSNを入れるとコンテナを起動しない
	externalDSNEnv = "E2E_DATABASE_URL"
)

// postgresServer is where each suite creates its own throwaway database.
type postgresServer struct {
	Host     string
	Port     string
	User     string
	Password string
}

func (p postgresServer) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, database)
}

var (
	serverOnce sync.Once
	server     postgresServer
	serverErr  error
)

// sharedPostgres starts one server per test binary. Ryuk reaps the container
// when the binary exits, so suites never terminate it themselves.
func sharedPostgres(t *testing.T) postgresServer {
	t.Helper()
	serverOnce.Do(func() {
		if dsn := os.Getenv(externalDSNEnv); dsn != "" {
			server, serverErr = serverFromDSN(dsn)
			return
		}
		server, serverErr = startPostgresContainer()
	})
	require.NoError(t, serverErr, "PostgreSQLの準備に失敗")
	return server
}

func serverFromDSN(dsn string) (postgresServer, error) {
	cfg, err := pgconn.ParseConfig(dsn)
	if err != nil {
		return postgresServer{}, fmt.Errorf("parse %s: %w", externalDSNEnv, err)
	}
	return postgresServer{
		Host:     cfg.Host,
		Port:     fmt.Sprint(cfg.Port),
		User:     cfg.User,
		Password: cfg.Password,
	}, nil
}

func startPostgresContainer() (postgresServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{string(postgresPort)},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       "postgres",
		},
		// データはRAM上に置き、耐久性より速度を優先
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "max_connections=200",
		},
		WaitingFor: wait.ForSQL(postgresPort, "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", postgresUser, postgresPassword, host, port.Port())
		}).WithStartupTimeout(time.Minute),
		Labels: map[string]string{"purpose": "gear-ledger-e2e"},
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return postgresServer{}, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		return postgresServer{}, err
	}
	port, err := c.MappedPort(ctx, postgresPort)
	if err != nil {
		return postgresServer{}, err
	}
	return postgresServer{Host: host, Port: port.Port(), User: postgresUser, Password: postgresPassword}, nil
}
