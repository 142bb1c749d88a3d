package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/jobboardhq/jobs-api/internal/apierror"
)

const pqErrForeignKeyViolation = "23503"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (User, error) {
	u := User{}
	row := r.db.QueryRowContext(ctx, `SELECT username, email, password_hash, is_admin, created_at FROM users WHERE username = $1`, username)
	if err := row.Scan(&u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return u, apierror.NewNotFound(fmt.Sprintf("no user with username %s", username))
		}
		return u, err
	}
	u.CreatedAtHumanised = humanize.Time(u.CreatedAt.UTC())
	return u, nil
}

// ApplyToJob records a (username, jobId) application association. The
// primary key on application makes the transition idempotent, submitting
// the same pair twice leaves a single row and both calls succeed. A job
// that does not exist surfaces the foreign key violation as not found.
func (r *Repository) ApplyToJob(ctx context.Context, username string, jobID int) (int, error) {
	stmt := `INSERT INTO application (username, job_id, created_at) VALUES ($1, $2, NOW()) ON CONFLICT (username, job_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, stmt, username, jobID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqErrForeignKeyViolation {
			return 0, apierror.NewNotFound(fmt.Sprintf("no job with id %d", jobID))
		}
		return 0, errors.Wrap(err, "unable to apply to job")
	}
	return jobID, nil
}

func (r *Repository) AppliedJobIDs(ctx context.Context, username string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT job_id FROM application WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query applications")
	}
	defer rows.Close()
	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
