package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/sqlbuild"
	"github.com/garnizeh/jobly/pkg/models"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

// companyFields maps JSON field names to columns for partial updates.
var companyFields = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

func scanCompany(s rowScanner) (*models.Company, error) {
	var (
		c    models.Company
		num  sql.NullInt64
		logo sql.NullString
	)
	if err := s.Scan(&c.Handle, &c.Name, &c.Description, &num, &logo); err != nil {
		return nil, err
	}
	c.NumEmployees = nullInt(num)
	c.LogoURL = nullString(logo)

	return &c, nil
}

// CreateCompany inserts a company. A handle that is already taken is a
// validation error, whether caught by the lookup or by the primary key.
func (r *SQLRepo) CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	if c == nil {
		return nil, fmt.Errorf("company is nil")
	}

	var existing string
	err := r.conn.QueryRow(ctx, `SELECT handle FROM companies WHERE handle = $1`, c.Handle).Scan(&existing)
	switch {
	case err == nil:
		return nil, apperr.BadRequest("Duplicate company: " + c.Handle)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("check company handle: %w", err)
	}

	row := r.conn.QueryRow(ctx,
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+companyColumns,
		c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL)
	created, err := scanCompany(row)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("duplicate company caught by constraint", "handle", c.Handle)
			return nil, apperr.BadRequest("Duplicate company: " + c.Handle)
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}

	return created, nil
}

// FindAllCompanies returns the companies matching every supplied filter,
// ordered by name then handle.
func (r *SQLRepo) FindAllCompanies(ctx context.Context, f models.CompanyFilter) ([]models.Company, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return nil, apperr.BadRequest("minEmployees cannot be greater than maxEmployees")
	}

	var preds []sqlbuild.Predicate
	if f.Name != nil && *f.Name != "" {
		preds = append(preds, sqlbuild.Predicate{Column: "name", Op: sqlbuild.ContainsFold, Value: *f.Name})
	}
	if f.MinEmployees != nil {
		preds = append(preds, sqlbuild.Predicate{Column: "num_employees", Op: sqlbuild.AtLeast, Value: *f.MinEmployees})
	}
	if f.MaxEmployees != nil {
		preds = append(preds, sqlbuild.Predicate{Column: "num_employees", Op: sqlbuild.AtMost, Value: *f.MaxEmployees})
	}
	where, args, _ := sqlbuild.Where(preds, 1)

	rows, err := r.conn.QueryRows(ctx, `SELECT `+companyColumns+` FROM companies `+where+` ORDER BY name, handle`, args...)
	if err != nil {
		return nil, fmt.Errorf("find companies: %w", err)
	}
	defer rows.Close()

	out := []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, *c)
	}

	return out, rows.Err()
}

// GetCompany returns the company with its jobs ordered by id.
func (r *SQLRepo) GetCompany(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	c, err := scanCompany(r.conn.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("No company: " + handle)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, salary, equity FROM jobs WHERE company_handle = $1 ORDER BY id`, handle)
	if err != nil {
		return nil, fmt.Errorf("get company jobs: %w", err)
	}
	defer rows.Close()

	detail := &models.CompanyDetail{Company: *c, Jobs: []models.JobSummary{}}
	for rows.Next() {
		var (
			j      models.JobSummary
			salary sql.NullInt64
			equity sql.NullString
		)
		if err := rows.Scan(&j.ID, &j.Title, &salary, &equity); err != nil {
			return nil, fmt.Errorf("scan company job: %w", err)
		}
		j.Salary = nullInt(salary)
		j.Equity = nullString(equity)
		detail.Jobs = append(detail.Jobs, j)
	}

	return detail, rows.Err()
}

// UpdateCompany applies a partial update. data is keyed by JSON field name
// and must not contain the handle.
func (r *SQLRepo) UpdateCompany(ctx context.Context, handle string, data map[string]any) (*models.Company, error) {
	set, values, err := sqlbuild.PartialUpdate(data, companyFields)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`, set, len(values)+1, companyColumns)
	c, err := scanCompany(r.conn.QueryRow(ctx, q, append(values, handle)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("No company: " + handle)
		}
		return nil, fmt.Errorf("update company: %w", err)
	}

	return c, nil
}

// RemoveCompany deletes a company; its jobs go with it.
func (r *SQLRepo) RemoveCompany(ctx context.Context, handle string) error {
	var deleted string
	err := r.conn.QueryRow(ctx, `DELETE FROM companies WHERE handle = $1 RETURNING handle`, handle).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("No company: " + handle)
		}
		return fmt.Errorf("remove company: %w", err)
	}

	return nil
}
