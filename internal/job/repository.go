package job

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/jobboardhq/jobs-api/internal/apierror"
)

const (
	pqErrForeignKeyViolation = "23503"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// JobsByFilters composes the selection predicate out of the validated
// filter set. A record matches iff every present constraint holds, the
// empty filter set returns all records. Result order beyond ORDER BY id is left
// to postgres.
func (r *Repository) JobsByFilters(ctx context.Context, f Filters) ([]*JobPost, error) {
	where := []string{}
	args := []interface{}{}
	if f.MinSalary != nil {
		args = append(args, *f.MinSalary)
		where = append(where, fmt.Sprintf("j.salary >= $%d", len(args)))
	}
	if f.HasEquity {
		where = append(where, "j.equity > 0")
	}
	if f.Title != "" {
		args = append(args, f.Title)
		where = append(where, fmt.Sprintf("j.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	stmt := `SELECT j.id, j.title, j.salary, j.equity, j.description, j.slug, j.company_handle, c.name, j.created_at
	FROM job j JOIN company c ON c.handle = j.company_handle`
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY j.id"
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query jobs by filters")
	}
	defer rows.Close()
	jobs := []*JobPost{}
	for rows.Next() {
		jobPost, err := scanJob(rows)
		if err != nil {
			return jobs, err
		}
		jobs = append(jobs, jobPost)
	}
	if err := rows.Err(); err != nil {
		return jobs, err
	}
	return jobs, nil
}

// JobByID returns a single job. The company detail is attached by the
// caller through the company repository.
func (r *Repository) JobByID(ctx context.Context, jobID int) (*JobPost, error) {
	row := r.db.QueryRowContext(ctx, `SELECT j.id, j.title, j.salary, j.equity, j.description, j.slug, j.company_handle, c.name, j.created_at
	FROM job j JOIN company c ON c.handle = j.company_handle WHERE j.id = $1`, jobID)
	jobPost, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, apierror.NewNotFound(fmt.Sprintf("no job with id %d", jobID))
	}
	if err != nil {
		return nil, err
	}
	return jobPost, nil
}

func (r *Repository) SaveJob(ctx context.Context, rq *JobRq) (*JobPost, error) {
	slugTitle := slug.Make(fmt.Sprintf("%s %s %d", rq.Title, rq.CompanyHandle, time.Now().UTC().Unix()))
	row := r.db.QueryRowContext(ctx, `
	INSERT INTO job (title, salary, equity, description, slug, company_handle, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_at`,
		rq.Title,
		nullableInt(rq.Salary),
		nullableFloat(rq.Equity),
		rq.Description,
		slugTitle,
		rq.CompanyHandle,
	)
	jobPost := &JobPost{
		Title:         rq.Title,
		Salary:        rq.Salary,
		Equity:        rq.Equity,
		Description:   rq.Description,
		Slug:          slugTitle,
		CompanyHandle: rq.CompanyHandle,
	}
	if err := row.Scan(&jobPost.ID, &jobPost.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqErrForeignKeyViolation {
			return nil, apierror.NewValidation([]string{fmt.Sprintf("companyHandle %s does not exist", rq.CompanyHandle)})
		}
		return nil, errors.Wrap(err, "unable to save job")
	}
	jobPost.TimeAgo = humanize.Time(jobPost.CreatedAt.UTC())
	return jobPost, nil
}

// UpdateJob applies a partial update over the mutable fields only and
// returns the updated record. A payload touching zero columns never gets
// here, the update schema rejects it first.
func (r *Repository) UpdateJob(ctx context.Context, jobID int, rq *JobRqUpdate) (*JobPost, error) {
	set := []string{}
	args := []interface{}{}
	if rq.Title != nil {
		args = append(args, *rq.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if rq.Salary != nil {
		args = append(args, *rq.Salary)
		set = append(set, fmt.Sprintf("salary = $%d", len(args)))
	}
	if rq.Equity != nil {
		args = append(args, *rq.Equity)
		set = append(set, fmt.Sprintf("equity = $%d", len(args)))
	}
	if rq.Description != nil {
		args = append(args, *rq.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	args = append(args, jobID)
	stmt := fmt.Sprintf(`UPDATE job SET %s WHERE id = $%d
	RETURNING id, title, salary, equity, description, slug, company_handle, created_at`, strings.Join(set, ", "), len(args))
	row := r.db.QueryRowContext(ctx, stmt, args...)
	jobPost := &JobPost{}
	var salary sql.NullInt64
	var equity sql.NullFloat64
	err := row.Scan(&jobPost.ID, &jobPost.Title, &salary, &equity, &jobPost.Description, &jobPost.Slug, &jobPost.CompanyHandle, &jobPost.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apierror.NewNotFound(fmt.Sprintf("no job with id %d", jobID))
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to update job")
	}
	if salary.Valid {
		s := int(salary.Int64)
		jobPost.Salary = &s
	}
	if equity.Valid {
		e := equity.Float64
		jobPost.Equity = &e
	}
	jobPost.TimeAgo = humanize.Time(jobPost.CreatedAt.UTC())
	return jobPost, nil
}

func (r *Repository) DeleteJob(ctx context.Context, jobID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job WHERE id = $1`, jobID)
	if err != nil {
		return errors.Wrap(err, "unable to delete job")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierror.NewNotFound(fmt.Sprintf("no job with id %d", jobID))
	}
	return nil
}

// SalarySamples feeds the salary stats endpoint, jobs without a declared
// salary are left out of the sample.
func (r *Repository) SalarySamples(ctx context.Context) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT salary FROM job WHERE salary IS NOT NULL`)
	if err != nil {
		return nil, errors.Wrap(err, "unable to query salary samples")
	}
	defer rows.Close()
	samples := []float64{}
	for rows.Next() {
		var salary float64
		if err := rows.Scan(&salary); err != nil {
			return samples, err
		}
		samples = append(samples, salary)
	}
	return samples, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*JobPost, error) {
	jobPost := &JobPost{}
	var salary sql.NullInt64
	var equity sql.NullFloat64
	err := row.Scan(
		&jobPost.ID,
		&jobPost.Title,
		&salary,
		&equity,
		&jobPost.Description,
		&jobPost.Slug,
		&jobPost.CompanyHandle,
		&jobPost.CompanyName,
		&jobPost.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if salary.Valid {
		s := int(salary.Int64)
		jobPost.Salary = &s
	}
	if equity.Valid {
		e := equity.Float64
		jobPost.Equity = &e
	}
	jobPost.TimeAgo = humanize.Time(jobPost.CreatedAt.UTC())
	return jobPost, nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
