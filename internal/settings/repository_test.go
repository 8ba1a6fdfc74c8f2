package settings

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const upsertSQL = "INSERT INTO site_settings (category, key, value, updated_at) VALUES ($1, $2, $3, NOW()) ON CONFLICT (category, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()"

func mockTime() time.Time {
	return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
}

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestUpsertGroupWritesAllKeysInOneTx(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	// keys land in sorted order
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs("theme", "logo_text", "ProFit").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs("theme", "primary_color", "#222222").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpsertGroup(context.Background(), "theme", Values{
		"primary_color": "#222222",
		"logo_text":     "ProFit",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertGroupRollsBackOnFailure(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs("theme", "logo_text", "ProFit").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.UpsertGroup(context.Background(), "theme", Values{"logo_text": "ProFit"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGroup(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, category, key, value, updated_at FROM site_settings WHERE category = $1")).
		WithArgs("seo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category", "key", "value", "updated_at"}).
			AddRow(1, "seo", "meta_title", "ProFit Gyms", mockTime()).
			AddRow(2, "seo", "meta_keywords", "gym, fitness", mockTime()))

	values, err := repo.GetGroup(context.Background(), "seo")
	require.NoError(t, err)
	require.Equal(t, "ProFit Gyms", values["meta_title"])
	require.Len(t, values, 2)
}
