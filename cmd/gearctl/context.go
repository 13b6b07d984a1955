package main

import (
	"fmt"
	"log/slog"
	"sync"

	"gear-ledger/internal/handler/middleware"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/infra/uow"
	"gear-ledger/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

type commandContext struct {
	configOnce sync.Once
	config     config.Config
	configErr  error

	poolOnce sync.Once
	pool     *pgxpool.Pool
	cleanup  func()
	poolErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil {
			c.configErr = err
			return
		}
		slog.SetDefault(middleware.NewLogger(cfg.Log).GetSlogLogger())
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensurePool() (*pgxpool.Pool, error) {
	c.poolOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.poolErr = err
			return
		}
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			c.poolErr = fmt.Errorf("connect to database: %w", err)
			return
		}
		c.pool, c.cleanup = pool, cleanup
	})
	return c.pool, c.poolErr
}

func (c *commandContext) unitOfWork() (*uow.PostgresUoW, error) {
	pool, err := c.ensurePool()
	if err != nil {
		return nil, err
	}
	return uow.NewPostgresUoW(pool, uow.DefaultRepositories()), nil
}

func (c *commandContext) close() {
	if c.cleanup != nil {
		c.cleanup()
	}
}
