package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/validate"
	"github.com/garnizeh/jobly/pkg/models"
)

const maxBodyBytes = 1 << 20

// readBody reads the request body and checks it against schema.
func readBody(w http.ResponseWriter, r *http.Request, schema *validate.Schema) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.BadRequest("Invalid request body")
	}

	res := validate.Check(r.Context(), schema, body)
	if !res.OK {
		return nil, apperr.BadRequest("Invalid request body", res.Errors...)
	}
	return body, nil
}

// decodeBody validates the body against schema and decodes it into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, schema *validate.Schema, dst any) error {
	body, err := readBody(w, r, schema)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	return nil
}

// decodePatch validates a partial update body and returns it as a field map.
// Whole numbers become int64 so drivers bind them as integers.
func decodePatch(w http.ResponseWriter, r *http.Request, schema *validate.Schema) (map[string]any, error) {
	body, err := readBody(w, r, schema)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	data := map[string]any{}
	if err := dec.Decode(&data); err != nil {
		return nil, apperr.BadRequest("Invalid request body")
	}

	for k, v := range data {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			data[k] = i
			continue
		}
		f, err := n.Float64()
		if err != nil {
			return nil, apperr.BadRequest(fmt.Sprintf("%s is not a number", k))
		}
		data[k] = int64(f)
	}
	return data, nil
}

func newQueryValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	return v
}

type companyQuery struct {
	Name         *string `query:"name" validate:"omitempty,max=255"`
	MinEmployees *int64  `query:"minEmployees" validate:"omitempty,gte=0"`
	MaxEmployees *int64  `query:"maxEmployees" validate:"omitempty,gte=0"`
}

type jobQuery struct {
	Title     *string `query:"title" validate:"omitempty,max=255"`
	MinSalary *int64  `query:"minSalary" validate:"omitempty,gte=0"`
	HasEquity *bool   `query:"hasEquity"`
}

// parseQuery copies the query string into the pointer fields of dst, keyed by
// their query tag. Unknown keys and unparsable values are client errors.
func parseQuery(v *validator.Validate, q url.Values, dst any) error {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()

	fields := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		fields[rt.Field(i).Tag.Get("query")] = i
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		idx, ok := fields[k]
		if !ok {
			return apperr.BadRequest("Unknown filter: " + k)
		}
		raw := strings.TrimSpace(q.Get(k))
		if raw == "" {
			continue
		}

		fv := rv.Field(idx)
		switch fv.Type().Elem().Kind() {
		case reflect.String:
			fv.Set(reflect.ValueOf(&raw))
		case reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return apperr.BadRequest(k + " must be an integer")
			}
			fv.Set(reflect.ValueOf(&n))
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return apperr.BadRequest(k + " must be true or false")
			}
			fv.Set(reflect.ValueOf(&b))
		}
	}

	if err := v.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			details := make([]string, 0, len(ve))
			for _, fe := range ve {
				details = append(details, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			}
			return apperr.BadRequest("Invalid filter", details...)
		}
		return err
	}
	return nil
}

func parseCompanyFilter(v *validator.Validate, q url.Values) (models.CompanyFilter, error) {
	var cq companyQuery
	if err := parseQuery(v, q, &cq); err != nil {
		return models.CompanyFilter{}, err
	}
	if cq.MinEmployees != nil && cq.MaxEmployees != nil && *cq.MinEmployees > *cq.MaxEmployees {
		return models.CompanyFilter{}, apperr.BadRequest("minEmployees cannot be greater than maxEmployees")
	}
	return models.CompanyFilter{Name: cq.Name, MinEmployees: cq.MinEmployees, MaxEmployees: cq.MaxEmployees}, nil
}

func parseJobFilter(v *validator.Validate, q url.Values) (models.JobFilter, error) {
	var jq jobQuery
	if err := parseQuery(v, q, &jq); err != nil {
		return models.JobFilter{}, err
	}
	return models.JobFilter{Title: jq.Title, MinSalary: jq.MinSalary, HasEquity: jq.HasEquity != nil && *jq.HasEquity}, nil
}
