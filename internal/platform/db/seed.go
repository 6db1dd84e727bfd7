package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrflow/internal/auth"
	"hrflow/internal/platform/config"
)

// Seed provisions the initial HR login. Employee logins are created by
// onboarding promotion, never here.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedHREmail) == "" || strings.TrimSpace(cfg.SeedHRPassword) == "" {
		return nil
	}
	hash, err := auth.HashPassword(cfg.SeedHRPassword)
	if err != nil {
		return err
	}
	return auth.NewStore(pool).EnsureHRUser(ctx, cfg.SeedHREmail, hash)
}
