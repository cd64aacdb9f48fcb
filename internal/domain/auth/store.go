package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"vacations/internal/platform/querier"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, created_at
    FROM users
    WHERE email = $1
  `, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	return u, err
}

// Login verifies the credentials and issues a signed token.
func (s *Store) Login(ctx context.Context, secret, email, password string, ttl time.Duration) (string, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return GenerateToken(secret, Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, ttl)
}
