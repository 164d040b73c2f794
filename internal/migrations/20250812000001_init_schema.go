package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20250812000001, down_20250812000001)
}

// up_20250812000001 initializes the full database schema
func up_20250812000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating platform schema...")

	// SQLite does not know jsonb; store skills as TEXT there.
	if IsSQLite(db) {
		_, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				full_name TEXT,
				role TEXT NOT NULL DEFAULT 'talent',
				bio TEXT,
				skills TEXT NOT NULL DEFAULT '[]',
				avatar_url TEXT,
				active INTEGER NOT NULL DEFAULT 1,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return fmt.Errorf("failed to create users table: %w", err)
		}
	} else {
		_, err := db.NewCreateTable().
			Model((*models.User)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create users table: %w", err)
		}
	}

	_, err := db.NewCreateTable().
		Model((*models.Startup)(nil)).
		IfNotExists().
		ForeignKey(`("owner_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create startups table: %w", err)
	}

	_, err = db.NewCreateTable().
		Model((*models.StartupInterest)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		ForeignKey(`("startup_id") REFERENCES "startups" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create startup_interests table: %w", err)
	}

	// The unique index is the authority for at-most-one interest per
	// (user, startup) pair; the mediator's pre-check is advisory only.
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_interests_user_startup ON startup_interests(user_id, startup_id)`,
		`CREATE INDEX IF NOT EXISTS idx_startups_owner ON startups(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_startups_industry ON startups(industry)`,
		`CREATE INDEX IF NOT EXISTS idx_startups_stage ON startups(stage)`,
		`CREATE INDEX IF NOT EXISTS idx_startups_created ON startups(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)`,
	}
	for _, stmt := range indexes {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	fmt.Println(" OK")
	return nil
}

// down_20250812000001 drops the platform schema
func down_20250812000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [down] dropping platform schema...")

	for _, model := range []any{
		(*models.StartupInterest)(nil),
		(*models.Startup)(nil),
		(*models.User)(nil),
	} {
		_, err := db.NewDropTable().
			Model(model).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}

	fmt.Println(" OK")
	return nil
}
