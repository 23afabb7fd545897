package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/internal/auth"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ctxClaims).(*auth.Claims)
	return c, ok && c != nil
}

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote", r.RemoteAddr),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic", slog.Any("err", err), slog.String("path", r.URL.Path))
					writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{
						Message: http.StatusText(http.StatusInternalServerError),
						Status:  http.StatusInternalServerError,
					}})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware rejects requests with 429 once limiter runs dry.
func RateLimitMiddleware(limiter *rate.Limiter, logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, logger, apperr.TooManyRequests())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate stores the claims of a valid bearer token in the request
// context. It never rejects a request: missing or bad tokens simply leave the
// request anonymous, and the Ensure* wrappers decide.
func Authenticate(verifier TokenVerifier, logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("ignoring invalid token", slog.Any("err", err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxClaims, claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errorBody{
		Message: http.StatusText(http.StatusUnauthorized),
		Status:  http.StatusUnauthorized,
	}})
}

// EnsureLoggedIn requires any valid token. The other Ensure wrappers build on
// it, so claims are always present inside them.
func EnsureLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EnsureAdmin requires a token carrying the admin flag.
func EnsureAdmin(next http.Handler) http.Handler {
	return EnsureLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, _ := ClaimsFromContext(r.Context()); !c.IsAdmin {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// EnsureCorrectUserOrAdmin requires an admin token or one whose username
// equals the path variable named param.
func EnsureCorrectUserOrAdmin(param string, next http.Handler) http.Handler {
	return EnsureLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, _ := ClaimsFromContext(r.Context()); !c.IsAdmin && c.Username != mux.Vars(r)[param] {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
