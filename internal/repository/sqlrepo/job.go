package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/sqlbuild"
	"github.com/garnizeh/jobly/pkg/models"
)

const jobColumns = `id, title, salary, equity, company_handle`

var jobFields = map[string]string{
	"companyHandle": "company_handle",
}

func scanJob(s rowScanner) (*models.Job, error) {
	var (
		j      models.Job
		salary sql.NullInt64
		equity sql.NullString
	)
	if err := s.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	j.Salary = nullInt(salary)
	j.Equity = nullString(equity)

	return &j, nil
}

func jobNotFound(id int64) error {
	return apperr.NotFound("No job: " + strconv.FormatInt(id, 10))
}

// CreateJob inserts a job. The company must exist.
func (r *SQLRepo) CreateJob(ctx context.Context, j *models.Job) (*models.Job, error) {
	if j == nil {
		return nil, fmt.Errorf("job is nil")
	}

	row := r.conn.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobColumns,
		j.Title, j.Salary, j.Equity, j.CompanyHandle)
	created, err := scanJob(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperr.BadRequest("No company: " + j.CompanyHandle)
		}
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return created, nil
}

// FindAllJobs returns the jobs matching every supplied filter, ordered by
// title then id.
func (r *SQLRepo) FindAllJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	var preds []sqlbuild.Predicate
	if f.Title != nil && *f.Title != "" {
		preds = append(preds, sqlbuild.Predicate{Column: "title", Op: sqlbuild.ContainsFold, Value: *f.Title})
	}
	if f.MinSalary != nil {
		preds = append(preds, sqlbuild.Predicate{Column: "salary", Op: sqlbuild.AtLeast, Value: *f.MinSalary})
	}
	if f.HasEquity {
		preds = append(preds, sqlbuild.Predicate{Column: "equity", Op: sqlbuild.NotNull})
	}
	where, args, _ := sqlbuild.Where(preds, 1)

	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobColumns+` FROM jobs `+where+` ORDER BY title, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}

func (r *SQLRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	j, err := scanJob(r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	return j, nil
}

// UpdateJob applies a partial update. The id and company are immutable and
// callers are expected to have rejected them already.
func (r *SQLRepo) UpdateJob(ctx context.Context, id int64, data map[string]any) (*models.Job, error) {
	set, values, err := sqlbuild.PartialUpdate(data, jobFields)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`, set, len(values)+1, jobColumns)
	j, err := scanJob(r.conn.QueryRow(ctx, q, append(values, id)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		return nil, fmt.Errorf("update job: %w", err)
	}

	return j, nil
}

func (r *SQLRepo) RemoveJob(ctx context.Context, id int64) error {
	var deleted int64
	err := r.conn.QueryRow(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jobNotFound(id)
		}
		return fmt.Errorf("remove job: %w", err)
	}

	return nil
}
