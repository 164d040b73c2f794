package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Startup represents a startup company listed on the platform.
// OwnerID references the founder who created it; ownership is the basis for
// update and delete authorization.
type Startup struct {
	bun.BaseModel `bun:"table:startups,alias:s"`

	ID          string    `bun:"id,pk,type:uuid"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	Industry    string    `bun:"industry"`
	Stage       string    `bun:"stage"`
	Website     string    `bun:"website"`
	OwnerID     string    `bun:"owner_id,notnull,type:uuid"` // FK to users(id)
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Owner *User `bun:"rel:belongs-to,join:owner_id=id"`
}

// StartupInterest is the join between a talent user and a startup.
// At most one interest may exist per (user, startup) pair; the unique index
// at the storage boundary is the authority for that invariant.
type StartupInterest struct {
	bun.BaseModel `bun:"table:startup_interests,alias:si"`

	ID        string    `bun:"id,pk,type:uuid"`
	UserID    string    `bun:"user_id,notnull,type:uuid"`    // FK to users(id)
	StartupID string    `bun:"startup_id,notnull,type:uuid"` // FK to startups(id)
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`

	User    *User    `bun:"rel:belongs-to,join:user_id=id"`
	Startup *Startup `bun:"rel:belongs-to,join:startup_id=id"`
}
