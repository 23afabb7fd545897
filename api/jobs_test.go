package api_test

import (
	"net/http"
	"testing"

	"github.com/garnizeh/jobly/pkg/models"
)

type jobEnvelope struct {
	Job models.Job `json:"job"`
}

type jobsEnvelope struct {
	Jobs []models.Job `json:"jobs"`
}

func TestJobCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		admin      bool
		wantStatus int
	}{
		{"Admin", map[string]any{"title": "J-new", "salary": 10, "equity": "0.2", "companyHandle": "c1"}, true, http.StatusCreated},
		{"NonAdmin", map[string]any{"title": "J-new", "companyHandle": "c1"}, false, http.StatusUnauthorized},
		{"MissingData", map[string]any{"companyHandle": "c1"}, true, http.StatusBadRequest},
		{"BadEquity", map[string]any{"title": "J-new", "equity": "1.5", "companyHandle": "c1"}, true, http.StatusBadRequest},
		{"NegativeSalary", map[string]any{"title": "J-new", "salary": -1, "companyHandle": "c1"}, true, http.StatusBadRequest},
		{"UnknownCompany", map[string]any{"title": "J-new", "companyHandle": "nope"}, true, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			token := env.userToken
			if tc.admin {
				token = env.adminToken
			}

			status, body := env.do(t, http.MethodPost, "/jobs", tc.body, token)
			if status != tc.wantStatus {
				t.Fatalf("expected %d got %d: %s", tc.wantStatus, status, body)
			}
			if status != http.StatusCreated {
				return
			}

			got := decode[jobEnvelope](t, body).Job
			if got.ID != 2 || got.Title != "J-new" || *got.Salary != 10 || *got.Equity != "0.2" || got.CompanyHandle != "c1" {
				t.Fatalf("unexpected job: %+v", got)
			}
		})
	}
}

func TestJobList(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/jobs?title=j&minSalary=3000&hasEquity=true", nil, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", status, body)
	}
	if got := decode[jobsEnvelope](t, body).Jobs; len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected jobs: %+v", got)
	}

	f := env.mocks.Jobs.LastFilter
	if f.Title == nil || *f.Title != "j" || f.MinSalary == nil || *f.MinSalary != 3000 || !f.HasEquity {
		t.Fatalf("filter not passed through: %+v", f)
	}

	if status, _ := env.do(t, http.MethodGet, "/jobs?hasEquity=false", nil, ""); status != http.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}
	if env.mocks.Jobs.LastFilter.HasEquity {
		t.Fatalf("hasEquity=false must not filter")
	}
}

func TestJobList_BadFilters(t *testing.T) {
	cases := map[string]string{
		"UnknownKey":     "/jobs?minEmployees=1",
		"NotInteger":     "/jobs?minSalary=lots",
		"NegativeSalary": "/jobs?minSalary=-1",
		"NotBool":        "/jobs?hasEquity=maybe",
	}

	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			if status, body := env.do(t, http.MethodGet, path, nil, ""); status != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d: %s", status, body)
			}
			if env.mocks.Jobs.FindCalls != 0 {
				t.Fatalf("expected no query")
			}
		})
	}
}

func TestJobGet(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/jobs/1", nil, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}
	if got := decode[jobEnvelope](t, body).Job; got.Title != "J1" || got.CompanyHandle != "c1" {
		t.Fatalf("unexpected job: %+v", got)
	}

	for _, path := range []string{"/jobs/0", "/jobs/abc", "/jobs/99999999999999999999"} {
		if status, _ := env.do(t, http.MethodGet, path, nil, ""); status != http.StatusNotFound {
			t.Fatalf("%s: expected 404 got %d", path, status)
		}
	}
}

func TestJobUpdate(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       any
		admin      bool
		wantStatus int
	}{
		{"Admin", "/jobs/1", map[string]any{"title": "J-New"}, true, http.StatusOK},
		{"NonAdmin", "/jobs/1", map[string]any{"title": "J-New"}, false, http.StatusUnauthorized},
		{"NotFound", "/jobs/0", map[string]any{"title": "new nope"}, true, http.StatusNotFound},
		{"ChangeID", "/jobs/1", map[string]any{"id": 7}, true, http.StatusBadRequest},
		{"ChangeCompany", "/jobs/1", map[string]any{"companyHandle": "c2"}, true, http.StatusBadRequest},
		{"InvalidData", "/jobs/1", map[string]any{"salary": "not-a-number"}, true, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			token := env.userToken
			if tc.admin {
				token = env.adminToken
			}

			status, body := env.do(t, http.MethodPatch, tc.path, tc.body, token)
			if status != tc.wantStatus {
				t.Fatalf("expected %d got %d: %s", tc.wantStatus, status, body)
			}

			stored := env.mocks.Jobs.Stored[1]
			if status == http.StatusOK {
				if stored.Title != "J-New" || *stored.Salary != 1 || *stored.Equity != "0.1" {
					t.Fatalf("unexpected stored job: %+v", stored)
				}
			} else if stored.Title != "J1" || stored.CompanyHandle != "c1" {
				t.Fatalf("failed update changed the job: %+v", stored)
			}
		})
	}
}

func TestJobUpdate_NullClearsEquity(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPatch, "/jobs/1", `{"equity": null}`, env.adminToken)
	if status != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", status, body)
	}
	if got := decode[jobEnvelope](t, body).Job; got.Equity != nil || got.Title != "J1" {
		t.Fatalf("unexpected job: %+v", got)
	}
	if stored := env.mocks.Jobs.Stored[1]; stored.Equity != nil {
		t.Fatalf("equity not cleared: %+v", stored)
	}
}

func TestJobDelete(t *testing.T) {
	env := newTestEnv(t)

	if status, _ := env.do(t, http.MethodDelete, "/jobs/1", nil, ""); status != http.StatusUnauthorized {
		t.Fatalf("anon: expected 401 got %d", status)
	}

	status, body := env.do(t, http.MethodDelete, "/jobs/1", nil, env.adminToken)
	if status != http.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}
	if got := decode[map[string]int64](t, body); got["deleted"] != 1 {
		t.Fatalf("unexpected body: %s", body)
	}

	if status, _ := env.do(t, http.MethodGet, "/jobs/1", nil, ""); status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}
