// Package sqlbuild assembles the dynamic parts of parameterized SQL
// statements: SET lists for partial updates and WHERE clauses for filtered
// searches. Placeholders use the $n form understood by both the sqlite and
// postgres drivers.
package sqlbuild

import (
	"fmt"
	"sort"
	"strings"

	"github.com/garnizeh/jobly/internal/apperr"
)

// PartialUpdate builds the SET fragment of an UPDATE statement from the
// supplied fields. columns maps field names to column names; unmapped fields
// are used as-is. Fields are emitted in sorted order and numbered from $1.
//
//	PartialUpdate({"numEmployees": 5, "name": "Acme"}, {"numEmployees": "num_employees"})
//	=> `"name"=$1, "num_employees"=$2`, ["Acme", 5]
func PartialUpdate(data map[string]any, columns map[string]string) (string, []any, error) {
	if len(data) == 0 {
		return "", nil, apperr.BadRequest("No data")
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]string, 0, len(keys))
	values := make([]any, 0, len(keys))
	for i, k := range keys {
		col, ok := columns[k]
		if !ok {
			col = k
		}
		cols = append(cols, fmt.Sprintf(`"%s"=$%d`, col, i+1))
		values = append(values, data[k])
	}

	return strings.Join(cols, ", "), values, nil
}

// Op is a comparison applied by a Predicate.
type Op int

const (
	// ContainsFold matches a case-insensitive substring.
	ContainsFold Op = iota
	// AtLeast matches column >= value.
	AtLeast
	// AtMost matches column <= value.
	AtMost
	// NotNull matches rows where the column has a value. Value is ignored.
	NotNull
)

// Predicate is one filter term of a WHERE clause.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Where folds preds into a single AND-ed WHERE clause. Placeholders start at
// $start; next is the first unused placeholder index. An empty predicate list
// yields an empty clause.
func Where(preds []Predicate, start int) (clause string, args []any, next int) {
	next = start
	if len(preds) == 0 {
		return "", nil, next
	}

	terms := make([]string, 0, len(preds))
	for _, p := range preds {
		switch p.Op {
		case ContainsFold:
			s := fmt.Sprint(p.Value)
			terms = append(terms, fmt.Sprintf(`LOWER(%s) LIKE $%d ESCAPE '\'`, p.Column, next))
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(s))+"%")
			next++
		case AtLeast:
			terms = append(terms, fmt.Sprintf("%s >= $%d", p.Column, next))
			args = append(args, p.Value)
			next++
		case AtMost:
			terms = append(terms, fmt.Sprintf("%s <= $%d", p.Column, next))
			args = append(args, p.Value)
			next++
		case NotNull:
			terms = append(terms, p.Column+" IS NOT NULL")
		}
	}

	return "WHERE " + strings.Join(terms, " AND "), args, next
}
