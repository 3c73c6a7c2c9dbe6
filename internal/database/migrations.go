package database

import "embed"

// Migrations holds the schema, read from its "migrations" directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS
