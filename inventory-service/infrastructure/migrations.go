package infrastructure

import "embed"

// Migrations holds the seat schema, applied by the migrate command
//
//go:embed migrations/*.sql
var Migrations embed.FS
