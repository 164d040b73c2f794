package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
)

// User represents a platform account. Email is the unique login identifier;
// Role is either founder or talent and drives role-gated authorization.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk,type:uuid"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	FullName     string    `bun:"full_name"`
	Role         auth.Role `bun:"role,notnull,default:'talent'"`
	Bio          string    `bun:"bio"`
	Skills       SkillList `bun:"skills,type:jsonb,notnull,default:'[]'"`
	AvatarURL    string    `bun:"avatar_url"`
	Active       bool      `bun:"active,notnull,default:true"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Principal returns the immutable identity snapshot minted into this user's
// tokens.
func (u *User) Principal() auth.Principal {
	return auth.Principal{ID: u.ID, Role: u.Role, Active: u.Active}
}

// SkillList stores a talent user's skills as a JSON array column.
type SkillList []string

// Scan implements sql.Scanner for reading from the database.
func (s *SkillList) Scan(value any) error {
	if value == nil {
		*s = SkillList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to scan SkillList: expected []byte or string, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}

// Value implements driver.Valuer for writing to the database.
func (s SkillList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}
