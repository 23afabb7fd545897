package db

import "embed"

// Files holds the SQL migrations (migrations/<driver>/*.sql) and seed data
// (seed/<driver>.sql) for every supported driver.
//
//go:embed migrations/*/*.sql seed/*.sql
var Files embed.FS
