package bootstrap

import (
	"fmt"
	"time"

	"gear-ledger/internal/pkg/config"
	"gear-ledger/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.JWTConfig) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION: %w", err)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("JWT_DURATION must be positive, got %s", duration)
	}
	return jwt.NewService(cfg.Secret, duration, jwt.WithLeeway(cfg.Leeway)), nil
}
