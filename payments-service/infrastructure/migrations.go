package infrastructure

import "embed"

// Migrations holds the payments schema, applied by the migrate command
//
//go:embed migrations/*.sql
var Migrations embed.FS
