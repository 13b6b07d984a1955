package main

import (
	"fmt"
	"time"

	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCommand(ctx *commandContext) *cobra.Command {
	var userFlag string
	var roleFlag string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("parse --user: %w", err)
			}
			role, err := user.NewRole(roleFlag)
			if err != nil {
				return fmt.Errorf("parse --role: %w", err)
			}
			if ttl <= 0 {
				if ttl, err = time.ParseDuration(cfg.JWT.Duration); err != nil {
					return fmt.Errorf("invalid JWT_DURATION: %w", err)
				}
			}

			token, err := jwt.NewService(cfg.JWT.Secret, ttl).GenerateToken(userID, role)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userFlag, "user", "u", "", "User ID the token acts as")
	cmd.Flags().StringVarP(&roleFlag, "role", "r", "viewer", "Role claim: viewer, operator or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_DURATION)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
