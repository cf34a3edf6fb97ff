package profile

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresService_DisplayName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT display_name FROM profiles`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"display_name"}).AddRow("Alice"))

	svc := NewPostgresService(db)
	name, err := svc.DisplayName(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresService_DisplayName_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT display_name FROM profiles`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	svc := NewPostgresService(db)
	_, err = svc.DisplayName(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}
