package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/garnizeh/jobly/internal/apperr"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "Validation", err: apperr.BadRequest("bad"), want: http.StatusBadRequest},
		{name: "NotFound", err: apperr.NotFound("missing"), want: http.StatusNotFound},
		{name: "Unauthorized", err: apperr.Unauthorized(""), want: http.StatusUnauthorized},
		{name: "RateLimited", err: apperr.TooManyRequests(), want: http.StatusTooManyRequests},
		{name: "Internal", err: apperr.Wrap(errors.New("db down"), "query"), want: http.StatusInternalServerError},
		{name: "Plain", err: errors.New("plain"), want: http.StatusInternalServerError},
		{name: "WrappedNotFound", err: fmt.Errorf("get company: %w", apperr.NotFound("No company: x")), want: http.StatusNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := apperr.Status(c.err); got != c.want {
				t.Fatalf("want %d got %d", c.want, got)
			}
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Wrap(cause, "")
	if err.Error() != "connection refused" {
		t.Fatalf("expected cause message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find cause")
	}

	if msg := apperr.Unauthorized("").Error(); msg != "Unauthorized" {
		t.Fatalf("unexpected default unauthorized message %q", msg)
	}
}
