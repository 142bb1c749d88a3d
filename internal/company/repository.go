package company

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jobboardhq/jobs-api/internal/apierror"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) CompanyByHandle(ctx context.Context, handle string) (*Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT handle, name, description, num_employees, logo_url FROM company WHERE handle = $1`, handle)
	c := &Company{}
	var numEmployees sql.NullInt64
	var logoURL sql.NullString
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &numEmployees, &logoURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewNotFound(fmt.Sprintf("no company with handle %s", handle))
		}
		return nil, err
	}
	if numEmployees.Valid {
		n := int(numEmployees.Int64)
		c.NumEmployees = &n
	}
	if logoURL.Valid {
		u := logoURL.String
		c.LogoURL = &u
	}
	return c, nil
}
