package validate

// Create schemas require every mandatory field. Update schemas list only the
// mutable fields and forbid the rest, so identifiers cannot be changed. A null
// logoUrl or equity in an update clears the column.
var (
	CompanyNew = mustCompile("companyNew", `{
		"type": "object",
		"properties": {
			"handle": {"type": "string", "minLength": 1, "maxLength": 25},
			"name": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"numEmployees": {"type": "integer", "minimum": 0},
			"logoUrl": {"type": "string", "format": "uri"}
		},
		"required": ["handle", "name", "description"],
		"additionalProperties": false
	}`)

	CompanyUpdate = mustCompile("companyUpdate", `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"numEmployees": {"type": "integer", "minimum": 0},
			"logoUrl": {"type": ["string", "null"], "format": "uri"}
		},
		"additionalProperties": false
	}`)

	JobNew = mustCompile("jobNew", `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"salary": {"type": "integer", "minimum": 0},
			"equity": {"type": "string"},
			"companyHandle": {"type": "string", "minLength": 1, "maxLength": 25}
		},
		"required": ["title", "companyHandle"],
		"additionalProperties": false
	}`, equityFraction)

	JobUpdate = mustCompile("jobUpdate", `{
		"type": "object",
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"salary": {"type": "integer", "minimum": 0},
			"equity": {"type": ["string", "null"]}
		},
		"additionalProperties": false
	}`, equityFraction)

	UserAuth = mustCompile("userAuth", `{
		"type": "object",
		"properties": {
			"username": {"type": "string", "minLength": 1, "maxLength": 30},
			"password": {"type": "string", "minLength": 5, "maxLength": 20}
		},
		"required": ["username", "password"],
		"additionalProperties": false
	}`)

	UserRegister = mustCompile("userRegister", `{
		"type": "object",
		"properties": {
			"username": {"type": "string", "minLength": 1, "maxLength": 30},
			"password": {"type": "string", "minLength": 5, "maxLength": 20},
			"firstName": {"type": "string", "minLength": 1, "maxLength": 30},
			"lastName": {"type": "string", "minLength": 1, "maxLength": 30},
			"email": {"type": "string", "minLength": 6, "maxLength": 60, "format": "email", "pattern": "^[^@\\s]+@[^@\\s]+$"}
		},
		"required": ["username", "password", "firstName", "lastName", "email"],
		"additionalProperties": false
	}`)

	// UserNew is the admin variant of UserRegister and may set isAdmin.
	UserNew = mustCompile("userNew", `{
		"type": "object",
		"properties": {
			"username": {"type": "string", "minLength": 1, "maxLength": 30},
			"password": {"type": "string", "minLength": 5, "maxLength": 20},
			"firstName": {"type": "string", "minLength": 1, "maxLength": 30},
			"lastName": {"type": "string", "minLength": 1, "maxLength": 30},
			"email": {"type": "string", "minLength": 6, "maxLength": 60, "format": "email", "pattern": "^[^@\\s]+@[^@\\s]+$"},
			"isAdmin": {"type": "boolean"}
		},
		"required": ["username", "password", "firstName", "lastName", "email"],
		"additionalProperties": false
	}`)
)
