package mock

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/pkg/models"
)

// Test helpers and mocks. Each repo keeps its rows in memory, records the
// last filter it was called with, and returns Err from every method when set.
type Mocks struct {
	Companies *CompanyRepo
	Jobs      *JobRepo
	Users     *UserRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Companies: &CompanyRepo{Stored: map[string]models.Company{}},
		Jobs:      &JobRepo{Stored: map[int64]models.Job{}},
		Users:     &UserRepo{Stored: map[string]models.User{}},
	}
}

type CompanyRepo struct {
	mu         sync.Mutex
	Stored     map[string]models.Company
	Err        error
	FindCalls  int
	LastFilter models.CompanyFilter
	LastUpdate map[string]any
}

func (m *CompanyRepo) CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.Stored[c.Handle]; ok {
		return nil, apperr.BadRequest("Duplicate company: " + c.Handle)
	}
	m.Stored[c.Handle] = *c
	out := *c
	return &out, nil
}

func (m *CompanyRepo) FindAllCompanies(ctx context.Context, f models.CompanyFilter) ([]models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	m.LastFilter = f
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Company{}
	for _, c := range m.Stored {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}

func (m *CompanyRepo) GetCompany(ctx context.Context, handle string) (*models.CompanyDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Stored[handle]
	if !ok {
		return nil, apperr.NotFound("No company: " + handle)
	}
	return &models.CompanyDetail{Company: c, Jobs: []models.JobSummary{}}, nil
}

func (m *CompanyRepo) UpdateCompany(ctx context.Context, handle string, data map[string]any) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUpdate = data
	if m.Err != nil {
		return nil, m.Err
	}
	if len(data) == 0 {
		return nil, apperr.BadRequest("No data")
	}
	c, ok := m.Stored[handle]
	if !ok {
		return nil, apperr.NotFound("No company: " + handle)
	}
	if v, ok := data["name"].(string); ok {
		c.Name = v
	}
	if v, ok := data["description"].(string); ok {
		c.Description = v
	}
	if v, ok := data["numEmployees"].(int64); ok {
		c.NumEmployees = &v
	}
	if v, ok := data["logoUrl"]; ok {
		c.LogoURL = nil
		if str, ok := v.(string); ok {
			c.LogoURL = &str
		}
	}
	m.Stored[handle] = c
	return &c, nil
}

func (m *CompanyRepo) RemoveCompany(ctx context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Stored[handle]; !ok {
		return apperr.NotFound("No company: " + handle)
	}
	delete(m.Stored, handle)
	return nil
}

type JobRepo struct {
	mu         sync.Mutex
	Stored     map[int64]models.Job
	Err        error
	NextID     int64
	FindCalls  int
	LastFilter models.JobFilter
	LastUpdate map[string]any
	// Companies, when set, is consulted to reject unknown company handles.
	Companies *CompanyRepo
}

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Companies != nil {
		m.Companies.mu.Lock()
		_, ok := m.Companies.Stored[j.CompanyHandle]
		m.Companies.mu.Unlock()
		if !ok {
			return nil, apperr.BadRequest("No company: " + j.CompanyHandle)
		}
	}
	m.NextID++
	out := *j
	out.ID = m.NextID
	m.Stored[out.ID] = out
	return &out, nil
}

func (m *JobRepo) FindAllJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	m.LastFilter = f
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Job{}
	for _, j := range m.Stored {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (m *JobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	j, ok := m.Stored[id]
	if !ok {
		return nil, apperr.NotFound("No job: " + strconv.FormatInt(id, 10))
	}
	return &j, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, id int64, data map[string]any) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUpdate = data
	if m.Err != nil {
		return nil, m.Err
	}
	if len(data) == 0 {
		return nil, apperr.BadRequest("No data")
	}
	j, ok := m.Stored[id]
	if !ok {
		return nil, apperr.NotFound("No job: " + strconv.FormatInt(id, 10))
	}
	if v, ok := data["title"].(string); ok {
		j.Title = v
	}
	if v, ok := data["salary"].(int64); ok {
		j.Salary = &v
	}
	if v, ok := data["equity"]; ok {
		j.Equity = nil
		if str, ok := v.(string); ok {
			j.Equity = &str
		}
	}
	m.Stored[id] = j
	return &j, nil
}

func (m *JobRepo) RemoveJob(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Stored[id]; !ok {
		return apperr.NotFound("No job: " + strconv.FormatInt(id, 10))
	}
	delete(m.Stored, id)
	return nil
}

// UserRepo stores passwords in clear text; it exists only for handler tests.
type UserRepo struct {
	mu     sync.Mutex
	Stored map[string]models.User
	Err    error
}

func (m *UserRepo) Register(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.Stored[u.Username]; ok {
		return nil, apperr.BadRequest("Duplicate username: " + u.Username)
	}
	m.Stored[u.Username] = *u
	out := *u
	out.Password = ""
	return &out, nil
}

func (m *UserRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Stored[username]
	if !ok || u.Password != password {
		return nil, apperr.Unauthorized("Invalid username/password")
	}
	u.Password = ""
	return &u, nil
}

func (m *UserRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Stored[username]
	if !ok {
		return nil, apperr.NotFound("No user: " + username)
	}
	u.Password = ""
	return &u, nil
}
