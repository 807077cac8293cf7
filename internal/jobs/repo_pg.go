package jobs

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo is the Postgres-backed job repository.
type PGRepo struct {
	db *sql.DB
}

var _ Repo = (*PGRepo)(nil)

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{db: db}
}

const jobColumns = `id, user_id, company, position, status, job_description, cover_letter, follow_up_date, created_at`

func (r *PGRepo) Create(ctx context.Context, job Job) (Job, error) {
	const query = `
		INSERT INTO jobs (id, user_id, company, position, status, job_description, cover_letter, follow_up_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + jobColumns

	row := r.db.QueryRowContext(ctx, query,
		job.ID,
		job.UserID,
		job.Company,
		job.Position,
		job.Status,
		nullableString(job.JobDescription),
		nullableString(job.CoverLetter),
		job.FollowUpDate,
	)
	return scanJob(row)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	const query = `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func (r *PGRepo) GetByID(ctx context.Context, userID, jobID string) (Job, error) {
	const query = `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, jobID, userID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
}

func (r *PGRepo) Update(ctx context.Context, userID, jobID string, fields UpdateFields) (Job, error) {
	const query = `
		UPDATE jobs
		SET job_description = COALESCE($3, job_description),
		    cover_letter    = COALESCE($4, cover_letter),
		    status          = COALESCE($5, status),
		    follow_up_date  = CASE
		        WHEN $6 THEN NULL
		        WHEN $7::timestamptz IS NOT NULL THEN $7
		        ELSE follow_up_date
		    END
		WHERE id = $1 AND user_id = $2
		RETURNING ` + jobColumns

	row := r.db.QueryRowContext(ctx, query,
		jobID,
		userID,
		fields.JobDescription,
		fields.CoverLetter,
		fields.Status,
		fields.ClearFollowUp,
		fields.FollowUpDate,
	)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
}

func (r *PGRepo) Delete(ctx context.Context, userID, jobID string) error {
	const query = `DELETE FROM jobs WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, jobID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListFollowUpsDue(ctx context.Context, userID string, from, to time.Time) ([]Job, error) {
	const query = `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE user_id = $1
		  AND follow_up_date IS NOT NULL
		  AND follow_up_date >= $2
		  AND follow_up_date < $3
		ORDER BY follow_up_date ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		job            Job
		jobDescription sql.NullString
		coverLetter    sql.NullString
		followUpDate   sql.NullTime
	)
	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Company,
		&job.Position,
		&job.Status,
		&jobDescription,
		&coverLetter,
		&followUpDate,
		&job.CreatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	job.JobDescription = jobDescription.String
	job.CoverLetter = coverLetter.String
	if followUpDate.Valid {
		t := followUpDate.Time
		job.FollowUpDate = &t
	}
	return job, nil
}

func collectJobs(rows *sql.Rows) ([]Job, error) {
	out := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
