package infrastructure

import "embed"

// Migrations holds the enrollment schema, applied by the migrate command
//
//go:embed migrations/*.sql
var Migrations embed.FS
