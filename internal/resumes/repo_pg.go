package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo is the Postgres-backed resume repository.
type PGRepo struct {
	db *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

const resumeColumns = `id, user_id, version, content, is_ai_generated, is_latest, created_at`

// insertVersionAttempts bounds retries when two writers race for the
// same version number and one loses on the unique constraint.
const insertVersionAttempts = 3

func (r *PGRepo) InsertVersion(ctx context.Context, userID string, content Content, aiGenerated bool) (Resume, error) {
	var lastErr error
	for attempt := 0; attempt < insertVersionAttempts; attempt++ {
		resume, err := r.insertVersionOnce(ctx, userID, content, aiGenerated)
		if err == nil {
			return resume, nil
		}
		if !isUniqueViolation(err) {
			return Resume{}, err
		}
		lastErr = err
	}
	return Resume{}, lastErr
}

func (r *PGRepo) insertVersionOnce(ctx context.Context, userID string, content Content, aiGenerated bool) (Resume, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return Resume{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Resume{}, err
	}
	defer tx.Rollback()

	const clearLatest = `UPDATE resumes SET is_latest = FALSE WHERE user_id = $1 AND is_latest`
	if _, err := tx.ExecContext(ctx, clearLatest, userID); err != nil {
		return Resume{}, err
	}

	const insert = `
		INSERT INTO resumes (id, user_id, version, content, is_ai_generated, is_latest)
		SELECT $1, $2, COALESCE(MAX(version), 0) + 1, $3, $4, TRUE
		FROM resumes
		WHERE user_id = $2
		RETURNING ` + resumeColumns

	row := tx.QueryRowContext(ctx, insert, uuid.NewString(), userID, raw, aiGenerated)
	resume, err := scanResume(row)
	if err != nil {
		return Resume{}, err
	}

	if err := tx.Commit(); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	const query = `
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE user_id = $1
		ORDER BY version DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, resumeID, userID)
	resume, err := scanResume(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return resume, err
}

func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Resume, error) {
	const query = `
		SELECT ` + resumeColumns + `
		FROM resumes
		WHERE user_id = $1 AND is_latest`

	row := r.db.QueryRowContext(ctx, query, userID)
	resume, err := scanResume(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNoVersions
	}
	return resume, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume Resume
		raw    []byte
	)
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Version,
		&raw,
		&resume.IsAIGenerated,
		&resume.IsLatest,
		&resume.CreatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if err := json.Unmarshal(raw, &resume.Content); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
