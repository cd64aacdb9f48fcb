package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vacations/internal/domain/auth"
	"vacations/internal/platform/config"
)

// Seed ensures the admin user exists so the API is reachable on first boot.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, 'admin')
  `, email, hash)
	return err
}
