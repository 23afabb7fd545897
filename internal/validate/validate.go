// Package validate checks request bodies against the JSON schemas of the API.
// Schemas are declared in this package and compiled once at start up.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/qri-io/jsonschema"
	"github.com/shopspring/decimal"
)

// Result is the outcome of Check. Errors is empty when OK is true.
type Result struct {
	OK     bool
	Errors []string
}

// Schema is a compiled body schema plus checks the schema language cannot
// express.
type Schema struct {
	name   string
	schema *jsonschema.Schema
	extra  []func(doc map[string]any) []string
}

func mustCompile(name, src string, extra ...func(map[string]any) []string) *Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("validate: compile schema %s: %v", name, err))
	}
	return &Schema{name: name, schema: rs, extra: extra}
}

// Check validates body against s.
func Check(ctx context.Context, s *Schema, body []byte) Result {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return Result{Errors: []string{"instance is not a JSON object"}}
	}

	keyErrs, err := s.schema.ValidateBytes(ctx, body)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("%s: %v", s.name, err)}}
	}

	var msgs []string
	for _, ke := range keyErrs {
		msgs = append(msgs, instancePath(ke.PropertyPath)+" "+ke.Message)
	}
	if len(msgs) == 0 {
		for _, fn := range s.extra {
			msgs = append(msgs, fn(doc)...)
		}
	}
	if len(msgs) > 0 {
		sort.Strings(msgs)
		return Result{Errors: msgs}
	}

	return Result{OK: true}
}

// instancePath renders a property path as instance.a.b.
func instancePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "instance"
	}
	return "instance." + strings.ReplaceAll(p, "/", ".")
}

var (
	equityMin = decimal.Zero
	equityMax = decimal.NewFromInt(1)
)

// equityFraction requires equity, when present and not null, to be a decimal
// string between 0 and 1 inclusive.
func equityFraction(doc map[string]any) []string {
	v, ok := doc["equity"]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return []string{"instance.equity is not a string"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return []string{fmt.Sprintf("instance.equity %q is not a decimal number", s)}
	}
	if d.LessThan(equityMin) || d.GreaterThan(equityMax) {
		return []string{fmt.Sprintf("instance.equity %s is not between 0 and 1", d.String())}
	}
	return nil
}
