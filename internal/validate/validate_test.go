package validate_test

import (
	"context"
	"testing"

	"github.com/garnizeh/jobly/internal/validate"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name   string
		schema *validate.Schema
		body   string
		ok     bool
	}{
		{"CompanyNewOK", validate.CompanyNew, `{"handle":"new","name":"New","description":"D","numEmployees":10}`, true},
		{"CompanyNewMissingName", validate.CompanyNew, `{"handle":"new","description":"D"}`, false},
		{"CompanyNewNegativeEmployees", validate.CompanyNew, `{"handle":"new","name":"N","description":"D","numEmployees":-1}`, false},
		{"CompanyNewFractionalEmployees", validate.CompanyNew, `{"handle":"new","name":"N","description":"D","numEmployees":1.5}`, false},
		{"CompanyNewUnknownField", validate.CompanyNew, `{"handle":"new","name":"N","description":"D","ceo":"x"}`, false},
		{"CompanyUpdateOK", validate.CompanyUpdate, `{"name":"Renamed","numEmployees":3}`, true},
		{"CompanyUpdateHandle", validate.CompanyUpdate, `{"handle":"other"}`, false},
		{"CompanyUpdateClearLogo", validate.CompanyUpdate, `{"logoUrl":null}`, true},
		{"CompanyUpdateNullName", validate.CompanyUpdate, `{"name":null}`, false},
		{"CompanyUpdateWrongType", validate.CompanyUpdate, `{"name":42}`, false},
		{"JobNewOK", validate.JobNew, `{"title":"T","salary":100,"equity":"0.5","companyHandle":"c1"}`, true},
		{"JobNewNoCompany", validate.JobNew, `{"title":"T"}`, false},
		{"JobNewEquityTooLarge", validate.JobNew, `{"title":"T","equity":"1.1","companyHandle":"c1"}`, false},
		{"JobNewEquityNotNumber", validate.JobNew, `{"title":"T","equity":"lots","companyHandle":"c1"}`, false},
		{"JobNewEquityOne", validate.JobNew, `{"title":"T","equity":"1","companyHandle":"c1"}`, true},
		{"JobUpdateOK", validate.JobUpdate, `{"salary":500}`, true},
		{"JobUpdateID", validate.JobUpdate, `{"id":3}`, false},
		{"JobUpdateCompanyHandle", validate.JobUpdate, `{"companyHandle":"other"}`, false},
		{"JobUpdateClearEquity", validate.JobUpdate, `{"equity":null}`, true},
		{"JobUpdateNullTitle", validate.JobUpdate, `{"title":null}`, false},
		{"JobUpdateNegativeEquity", validate.JobUpdate, `{"equity":"-0.1"}`, false},
		{"UserAuthOK", validate.UserAuth, `{"username":"u1","password":"password1"}`, true},
		{"UserAuthMissingPassword", validate.UserAuth, `{"username":"u1"}`, false},
		{"UserRegisterOK", validate.UserRegister, `{"username":"new","password":"password","firstName":"f","lastName":"l","email":"new@email.com"}`, true},
		{"UserRegisterAdminFlag", validate.UserRegister, `{"username":"new","password":"password","firstName":"f","lastName":"l","email":"new@email.com","isAdmin":true}`, false},
		{"UserRegisterShortPassword", validate.UserRegister, `{"username":"new","password":"p","firstName":"f","lastName":"l","email":"new@email.com"}`, false},
		{"UserRegisterBadEmail", validate.UserRegister, `{"username":"new","password":"password","firstName":"f","lastName":"l","email":"not-an-email"}`, false},
		{"UserNewAdmin", validate.UserNew, `{"username":"new","password":"password","firstName":"f","lastName":"l","email":"new@email.com","isAdmin":true}`, true},
		{"NotJSON", validate.CompanyNew, `not json`, false},
		{"NotObject", validate.CompanyNew, `[1,2]`, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := validate.Check(ctx, c.schema, []byte(c.body))
			require.Equal(t, c.ok, res.OK, "errors: %v", res.Errors)
			if c.ok {
				require.Empty(t, res.Errors)
			} else {
				require.NotEmpty(t, res.Errors)
			}
		})
	}
}

func TestCheck_ErrorsNamePath(t *testing.T) {
	res := validate.Check(context.Background(), validate.CompanyNew, []byte(`{"handle":"new","name":7,"description":"D"}`))
	require.False(t, res.OK)
	require.NotEmpty(t, res.Errors)
	require.Contains(t, res.Errors[0], "instance.name")
}
