package repository

import (
	"context"

	"github.com/garnizeh/jobly/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Implementations return *apperr.Error values for not-found, duplicate and
// validation failures.

type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error)
	FindAllCompanies(ctx context.Context, f models.CompanyFilter) ([]models.Company, error)
	GetCompany(ctx context.Context, handle string) (*models.CompanyDetail, error)
	UpdateCompany(ctx context.Context, handle string, data map[string]any) (*models.Company, error)
	RemoveCompany(ctx context.Context, handle string) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (*models.Job, error)
	FindAllJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	UpdateJob(ctx context.Context, id int64, data map[string]any) (*models.Job, error)
	RemoveJob(ctx context.Context, id int64) error
}

type UserRepo interface {
	Register(ctx context.Context, u *models.User) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}
