package resumes

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGRepoInsertVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes SET is_latest = FALSE")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO resumes")).
		WithArgs(sqlmock.AnyArg(), "u1", sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "version", "content", "is_ai_generated", "is_latest", "created_at",
		}).AddRow("r2", "u1", 2, []byte(`{"name":"Jane Doe"}`), false, true, now))
	mock.ExpectCommit()

	repo := NewPGRepo(db)
	resume, err := repo.InsertVersion(context.Background(), "u1", Content{Name: "Jane Doe"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, resume.Version)
	assert.True(t, resume.IsLatest)
	assert.Equal(t, "Jane Doe", resume.Content.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoInsertVersionRetriesOnUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// A concurrent writer won the unique index on (user_id) WHERE is_latest;
	// the insert must roll back and retry in a fresh transaction.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes SET is_latest = FALSE")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO resumes")).
		WithArgs(sqlmock.AnyArg(), "u1", sqlmock.AnyArg(), false).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes SET is_latest = FALSE")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO resumes")).
		WithArgs(sqlmock.AnyArg(), "u1", sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "version", "content", "is_ai_generated", "is_latest", "created_at",
		}).AddRow("r3", "u1", 3, []byte(`{"name":"Jane Doe"}`), false, true, now))
	mock.ExpectCommit()

	repo := NewPGRepo(db)
	resume, err := repo.InsertVersion(context.Background(), "u1", Content{Name: "Jane Doe"}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, resume.Version)
	assert.True(t, resume.IsLatest)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoInsertVersionGivesUpAfterRepeatedViolations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < insertVersionAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE resumes SET is_latest = FALSE")).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO resumes")).
			WithArgs(sqlmock.AnyArg(), "u1", sqlmock.AnyArg(), false).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()
	}

	repo := NewPGRepo(db)
	_, err = repo.InsertVersion(context.Background(), "u1", Content{Name: "Jane Doe"}, false)
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoLatestByUserNoVersions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND is_latest")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "version", "content", "is_ai_generated", "is_latest", "created_at",
		}))

	repo := NewPGRepo(db)
	_, err = repo.LatestByUser(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoVersions)
	require.NoError(t, mock.ExpectationsWereMet())
}
