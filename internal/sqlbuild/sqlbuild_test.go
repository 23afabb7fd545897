package sqlbuild_test

import (
	"testing"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/sqlbuild"
	"github.com/stretchr/testify/require"
)

func TestPartialUpdate(t *testing.T) {
	t.Run("MapsColumnsAndNumbersFromOne", func(t *testing.T) {
		set, values, err := sqlbuild.PartialUpdate(
			map[string]any{"numEmployees": 5, "name": "Acme"},
			map[string]string{"numEmployees": "num_employees", "logoUrl": "logo_url"},
		)
		require.NoError(t, err)
		require.Equal(t, `"name"=$1, "num_employees"=$2`, set)
		require.Equal(t, []any{"Acme", 5}, values)
	})

	t.Run("FallsBackToFieldName", func(t *testing.T) {
		set, values, err := sqlbuild.PartialUpdate(map[string]any{"title": "Engineer"}, nil)
		require.NoError(t, err)
		require.Equal(t, `"title"=$1`, set)
		require.Equal(t, []any{"Engineer"}, values)
	})

	t.Run("KeepsNilValues", func(t *testing.T) {
		set, values, err := sqlbuild.PartialUpdate(map[string]any{"salary": nil}, nil)
		require.NoError(t, err)
		require.Equal(t, `"salary"=$1`, set)
		require.Equal(t, []any{nil}, values)
	})

	t.Run("EmptyIsValidationError", func(t *testing.T) {
		_, _, err := sqlbuild.PartialUpdate(map[string]any{}, nil)
		require.Error(t, err)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestWhere(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		clause, args, next := sqlbuild.Where(nil, 1)
		require.Empty(t, clause)
		require.Empty(t, args)
		require.Equal(t, 1, next)
	})

	t.Run("AllOps", func(t *testing.T) {
		clause, args, next := sqlbuild.Where([]sqlbuild.Predicate{
			{Column: "title", Op: sqlbuild.ContainsFold, Value: "NeT"},
			{Column: "salary", Op: sqlbuild.AtLeast, Value: 3000},
			{Column: "equity", Op: sqlbuild.NotNull},
			{Column: "num_employees", Op: sqlbuild.AtMost, Value: 10},
		}, 1)
		require.Equal(t,
			`WHERE LOWER(title) LIKE $1 ESCAPE '\' AND salary >= $2 AND equity IS NOT NULL AND num_employees <= $3`,
			clause)
		require.Equal(t, []any{"%net%", 3000, 10}, args)
		require.Equal(t, 4, next)
	})

	t.Run("StartOffset", func(t *testing.T) {
		clause, args, next := sqlbuild.Where([]sqlbuild.Predicate{
			{Column: "salary", Op: sqlbuild.AtLeast, Value: 1},
		}, 3)
		require.Equal(t, "WHERE salary >= $3", clause)
		require.Equal(t, []any{1}, args)
		require.Equal(t, 4, next)
	})

	t.Run("EscapesLikeWildcards", func(t *testing.T) {
		_, args, _ := sqlbuild.Where([]sqlbuild.Predicate{
			{Column: "name", Op: sqlbuild.ContainsFold, Value: `100%_a\b`},
		}, 1)
		require.Equal(t, []any{`%100\%\_a\\b%`}, args)
	})
}
