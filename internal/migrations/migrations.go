// Package migrations holds the bun migration registry for the platform schema.
package migrations

import "github.com/uptrace/bun/migrate"

// Migrations is the registry applied by the `db migrate` command and by tests.
var Migrations = migrate.NewMigrations()
