package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"nairapay/internal/domain/auth"
	"nairapay/internal/platform/config"
)

// Seed creates the initial admin user when one does not already exist.
// A blank email or password makes seeding a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	password := cfg.SeedAdminPassword
	if email == "" || password == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3)",
		email, "Administrator", hash)
	return err
}
