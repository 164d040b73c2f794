package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
)

// BunInterestRepository implements InterestRepository using Bun ORM
type BunInterestRepository struct {
	db *bun.DB
}

// NewBunInterestRepository creates a new Bun-based interest repository
func NewBunInterestRepository(db *bun.DB) *BunInterestRepository {
	return &BunInterestRepository{db: db}
}

// Create inserts the interest row. The unique index on (user_id, startup_id)
// resolves concurrent duplicate creates: first writer wins, later writers get
// ErrDuplicateInterest.
func (r *BunInterestRepository) Create(ctx context.Context, interest *models.StartupInterest) error {
	if interest.ID == "" {
		interest.ID = uuid.NewString()
	}
	interest.CreatedAt = time.Now()

	_, err := r.db.NewInsert().
		Model(interest).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateInterest
		}
		return fmt.Errorf("create interest: %w", err)
	}
	return nil
}

// Delete removes the (user, startup) interest if present.
func (r *BunInterestRepository) Delete(ctx context.Context, userID, startupID string) error {
	result, err := r.db.NewDelete().
		Model((*models.StartupInterest)(nil)).
		Where("user_id = ?", userID).
		Where("startup_id = ?", startupID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete interest: %w", err)
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

// Exists reports whether the (user, startup) interest exists.
func (r *BunInterestRepository) Exists(ctx context.Context, userID, startupID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.StartupInterest)(nil)).
		Where("user_id = ?", userID).
		Where("startup_id = ?", startupID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check interest existence: %w", err)
	}
	return exists, nil
}

// ListByStartup retrieves all interests for one startup, users loaded.
func (r *BunInterestRepository) ListByStartup(ctx context.Context, startupID string) ([]models.StartupInterest, error) {
	var interests []models.StartupInterest
	err := r.db.NewSelect().
		Model(&interests).
		Relation("User").
		Where("si.startup_id = ?", startupID).
		Order("si.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interests by startup: %w", err)
	}
	return interests, nil
}

// ListByUser retrieves all interests expressed by one user, startups loaded.
func (r *BunInterestRepository) ListByUser(ctx context.Context, userID string) ([]models.StartupInterest, error) {
	var interests []models.StartupInterest
	err := r.db.NewSelect().
		Model(&interests).
		Relation("Startup").
		Where("si.user_id = ?", userID).
		Order("si.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interests by user: %w", err)
	}
	return interests, nil
}
