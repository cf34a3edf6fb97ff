package profile

import (
	"context"
	"database/sql"
	"errors"
)

type postgresService struct {
	db *sql.DB
}

// NewPostgresService returns a Service backed by the profiles table.
func NewPostgresService(db *sql.DB) Service {
	return &postgresService{db: db}
}

func (svc *postgresService) DisplayName(ctx context.Context, userID string) (string, error) {
	var name string
	err := svc.db.QueryRowContext(ctx,
		`SELECT display_name FROM profiles WHERE user_id = $1`, userID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}
