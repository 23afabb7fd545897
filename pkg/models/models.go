package models

// Domain models matching the database schema in db/migrations.

type Company struct {
	Handle       string  `json:"handle" db:"handle"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	NumEmployees *int64  `json:"numEmployees" db:"num_employees"`
	LogoURL      *string `json:"logoUrl" db:"logo_url"`
}

// CompanyDetail is a company together with the jobs it owns.
type CompanyDetail struct {
	Company
	Jobs []JobSummary `json:"jobs"`
}

type Job struct {
	ID            int64   `json:"id" db:"id"`
	Title         string  `json:"title" db:"title"`
	Salary        *int64  `json:"salary" db:"salary"`
	Equity        *string `json:"equity" db:"equity"`
	CompanyHandle string  `json:"companyHandle" db:"company_handle"`
}

// JobSummary is a job as listed under its company.
type JobSummary struct {
	ID     int64   `json:"id" db:"id"`
	Title  string  `json:"title" db:"title"`
	Salary *int64  `json:"salary" db:"salary"`
	Equity *string `json:"equity" db:"equity"`
}

type User struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	IsAdmin   bool   `json:"isAdmin" db:"is_admin"`
	// Password is the plain password on input and is never serialized.
	Password string `json:"-" db:"password"`
}

// CompanyFilter narrows FindAllCompanies. Nil fields are not applied.
type CompanyFilter struct {
	Name         *string
	MinEmployees *int64
	MaxEmployees *int64
}

// JobFilter narrows FindAllJobs. Nil or false fields are not applied.
type JobFilter struct {
	Title     *string
	MinSalary *int64
	HasEquity bool
}
