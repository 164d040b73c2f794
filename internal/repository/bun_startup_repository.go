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

	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
)

// BunStartupRepository implements StartupRepository using Bun ORM
type BunStartupRepository struct {
	db *bun.DB
}

// NewBunStartupRepository creates a new Bun-based startup repository
func NewBunStartupRepository(db *bun.DB) *BunStartupRepository {
	return &BunStartupRepository{db: db}
}

// Create inserts a new startup
func (r *BunStartupRepository) Create(ctx context.Context, startup *models.Startup) error {
	if startup.ID == "" {
		startup.ID = uuid.NewString()
	}
	now := time.Now()
	startup.CreatedAt = now
	startup.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(startup).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create startup: %w", err)
	}
	return nil
}

// GetByID retrieves a startup by ID with its owner loaded
func (r *BunStartupRepository) GetByID(ctx context.Context, id string) (*models.Startup, error) {
	startup := new(models.Startup)
	err := r.db.NewSelect().
		Model(startup).
		Relation("Owner").
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get startup by ID: %w", err)
	}
	return startup, nil
}

// GetOwnerID resolves only the startup's owner column.
func (r *BunStartupRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	var ownerID string
	err := r.db.NewSelect().
		Model((*models.Startup)(nil)).
		Column("owner_id").
		Where("id = ?", id).
		Scan(ctx, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get startup owner: %w", err)
	}
	return ownerID, nil
}

// Update updates an existing startup
func (r *BunStartupRepository) Update(ctx context.Context, startup *models.Startup) error {
	startup.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(startup).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update startup: %w", err)
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

// Delete removes a startup by ID
func (r *BunStartupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().
		Model((*models.Startup)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete startup: %w", err)
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

// List retrieves startups matching the filter, newest first, owners loaded.
func (r *BunStartupRepository) List(ctx context.Context, filter StartupFilter) ([]models.Startup, error) {
	var startups []models.Startup
	q := r.db.NewSelect().
		Model(&startups).
		Relation("Owner").
		Order("s.created_at DESC")

	if filter.OwnerID != "" {
		q = q.Where("s.owner_id = ?", filter.OwnerID)
	}
	if filter.Industry != "" {
		q = q.Where("lower(s.industry) = ?", strings.ToLower(filter.Industry))
	}
	if filter.Stage != "" {
		q = q.Where("lower(s.stage) = ?", strings.ToLower(filter.Stage))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	return startups, nil
}
