package substitute

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"vacations/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Substitute, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, registration, name, location, created_at
    FROM substitutes
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	substitutes := make([]Substitute, 0)
	for rows.Next() {
		var sub Substitute
		if err := rows.Scan(&sub.ID, &sub.Registration, &sub.Name, &sub.Location, &sub.CreatedAt); err != nil {
			return nil, err
		}
		substitutes = append(substitutes, sub)
	}
	return substitutes, rows.Err()
}

func (s *Store) Create(ctx context.Context, sub Substitute) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO substitutes (registration, name, location)
    VALUES ($1,$2,$3)
    RETURNING id
  `, sub.Registration, sub.Name, sub.Location).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicateRegistration
		}
		return "", err
	}
	return id, nil
}

// Delete removes a substitute; vacation periods referencing it fall back to
// substitute_id NULL via the foreign key.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM substitutes WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
