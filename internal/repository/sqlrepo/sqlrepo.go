package sqlrepo

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/pkg/repository"
)

// SQLRepo implements repository interfaces using the internal DB wrapper.
// Statements use $n placeholders and run unchanged on sqlite and postgres.
type SQLRepo struct {
	conn       *db.DB
	logger     *slog.Logger
	bcryptCost int
}

// Ensure SQLRepo implements the public interfaces.
var _ repository.CompanyRepo = (*SQLRepo)(nil)
var _ repository.JobRepo = (*SQLRepo)(nil)
var _ repository.UserRepo = (*SQLRepo)(nil)

func New(conn *db.DB, logger *slog.Logger, bcryptCost int) *SQLRepo {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &SQLRepo{conn: conn, logger: logger, bcryptCost: bcryptCost}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code.Name() == "unique_violation"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code.Name() == "foreign_key_violation"
	}
	return false
}

// isValueTooLong reports a postgres VARCHAR overflow. sqlite does not enforce
// declared widths.
func isValueTooLong(err error) bool {
	var pe *pq.Error
	return errors.As(err, &pe) && pe.Code.Name() == "string_data_right_truncation"
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
