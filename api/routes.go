package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/garnizeh/jobly/internal/auth"
	"github.com/garnizeh/jobly/pkg/repository"
)

// TokenVerifier turns a bearer token into claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	NewToken(username string, isAdmin bool) (string, error)
}

// Tokens is satisfied by *auth.JWT.
type Tokens interface {
	TokenVerifier
	TokenIssuer
}

// Deps are the collaborators an App is built from.
type Deps struct {
	Companies repository.CompanyRepo
	Jobs      repository.JobRepo
	Users     repository.UserRepo
	Tokens    Tokens
	Logger    *slog.Logger

	Version   string
	BuildTime string
	// Ping reports storage health for GET /health. Nil means always healthy.
	Ping func(ctx context.Context) error

	// RateLimit is requests per second across all clients; zero disables it.
	RateLimit float64
	Burst     int
	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// App is the HTTP application. Build one with NewApp.
type App struct {
	deps     Deps
	logger   *slog.Logger
	router   *mux.Router
	handler  http.Handler
	validate *validator.Validate
}

func NewApp(d Deps) *App {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	a := &App{
		deps:     d,
		logger:   d.Logger,
		router:   mux.NewRouter(),
		validate: newQueryValidator(),
	}
	a.setupRoutes()
	a.setupMiddleware()
	return a
}

// Handler returns the root handler to serve.
func (a *App) Handler() http.Handler {
	return a.handler
}

// The middleware chain wraps the router instead of being registered with
// r.Use, so preflights and unmatched paths pass through it too.
func (a *App) setupMiddleware() {
	d := a.deps
	m := newMetrics(d.Registry, a.router)

	h := Authenticate(d.Tokens, a.logger)(a.router)
	if d.RateLimit > 0 {
		h = RateLimitMiddleware(rate.NewLimiter(rate.Limit(d.RateLimit), d.Burst), a.logger)(h)
	}
	h = CORSMiddleware(h)
	h = m.Middleware(h)
	h = LoggingMiddleware(a.logger)(h)
	h = RecoveryMiddleware(a.logger)(h)

	a.handler = h
}

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, code, errorResponse{Error: errorBody{Message: http.StatusText(code), Status: code}})
	})
}

func (a *App) setupRoutes() {
	r := a.router
	d := a.deps

	r.NotFoundHandler = statusHandler(http.StatusNotFound)
	r.MethodNotAllowedHandler = statusHandler(http.StatusMethodNotAllowed)

	// Create handlers
	systemHandler := NewSystemHandler(d.Version, d.BuildTime, d.Ping)
	authHandler := NewAuthHandler(d.Users, d.Tokens, a.logger)
	userHandler := NewUserHandler(d.Users, d.Tokens, a.logger)
	companyHandler := NewCompanyHandler(d.Companies, a.validate, a.logger)
	jobHandler := NewJobHandler(d.Jobs, a.validate, a.logger)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/auth/token", authHandler.Token).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)

	// Users
	r.Handle("/users", EnsureAdmin(http.HandlerFunc(userHandler.Create))).Methods(http.MethodPost)
	r.Handle("/users/{username}", EnsureCorrectUserOrAdmin("username", http.HandlerFunc(userHandler.Get))).Methods(http.MethodGet)

	// Companies
	r.HandleFunc("/companies", companyHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/companies/{handle}", companyHandler.Get).Methods(http.MethodGet)
	r.Handle("/companies", EnsureAdmin(http.HandlerFunc(companyHandler.Create))).Methods(http.MethodPost)
	r.Handle("/companies/{handle}", EnsureAdmin(http.HandlerFunc(companyHandler.Update))).Methods(http.MethodPatch)
	r.Handle("/companies/{handle}", EnsureAdmin(http.HandlerFunc(companyHandler.Delete))).Methods(http.MethodDelete)

	// Jobs
	r.HandleFunc("/jobs", jobHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/jobs/{id:[0-9]+}", jobHandler.Get).Methods(http.MethodGet)
	r.Handle("/jobs", EnsureAdmin(http.HandlerFunc(jobHandler.Create))).Methods(http.MethodPost)
	r.Handle("/jobs/{id:[0-9]+}", EnsureAdmin(http.HandlerFunc(jobHandler.Update))).Methods(http.MethodPatch)
	r.Handle("/jobs/{id:[0-9]+}", EnsureAdmin(http.HandlerFunc(jobHandler.Delete))).Methods(http.MethodDelete)
}
