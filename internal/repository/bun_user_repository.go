package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
)

// BunUserRepository implements UserRepository using Bun ORM
type BunUserRepository struct {
	db *bun.DB
}

// NewBunUserRepository creates a new Bun-based user repository
func NewBunUserRepository(db *bun.DB) *BunUserRepository {
	return &BunUserRepository{db: db}
}

// Create inserts a new user. Emails are stored lowercased; a duplicate
// email surfaces as ErrDuplicateEmail.
func (r *BunUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.ToLower(user.Email)
	if user.Skills == nil {
		user.Skills = models.SkillList{}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *BunUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by ID: %w", err)
	}
	return user, nil
}

// GetActiveByID retrieves an active user by their ID. Deactivated accounts
// are invisible here and surface as ErrNotFound.
func (r *BunUserRepository) GetActiveByID(ctx context.Context, id string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Where("active = ?", true).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get active user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by their email
func (r *BunUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("email = ?", strings.ToLower(email)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// Update updates an existing user
func (r *BunUserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// List retrieves active users, optionally filtered by role.
func (r *BunUserRepository) List(ctx context.Context, role auth.Role) ([]models.User, error) {
	var users []models.User
	q := r.db.NewSelect().
		Model(&users).
		Where("active = ?", true).
		Order("created_at DESC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
