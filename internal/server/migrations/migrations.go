// Package migrations embeds the SQL schema applied with goose at startup.
// Each supported dialect has its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql mysql/*.sql
var Migrations embed.FS

// Directories inside Migrations, per goose dialect.
const (
	PostgresDir = "postgres"
	MySQLDir    = "mysql"
)
