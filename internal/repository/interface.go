package repository

import (
	"context"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
	"github.com/jagan25-mj/startup-connect-hub/internal/db/models"
)

// UserRepository exposes persistence operations for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetActiveByID is the directory lookup: a deactivated account is
	// reported as ErrNotFound. GetByID stays unfiltered for the profile
	// endpoint, which resolves the token holder regardless of status.
	GetActiveByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// List returns active users, optionally filtered by role.
	List(ctx context.Context, role auth.Role) ([]models.User, error)
}

// StartupFilter narrows startup listings.
type StartupFilter struct {
	OwnerID  string
	Industry string
	Stage    string
}

// StartupRepository exposes persistence operations for startups.
type StartupRepository interface {
	Create(ctx context.Context, startup *models.Startup) error
	GetByID(ctx context.Context, id string) (*models.Startup, error)
	// GetOwnerID resolves only the owner column; the authorization layer's
	// storage collaborator contract.
	GetOwnerID(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, startup *models.Startup) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter StartupFilter) ([]models.Startup, error)
}

// InterestRepository exposes persistence operations for startup interests.
type InterestRepository interface {
	// Create inserts the interest; returns ErrDuplicateInterest when the
	// (user, startup) pair already exists.
	Create(ctx context.Context, interest *models.StartupInterest) error
	// Delete removes the (user, startup) interest; returns ErrNotFound when
	// no such interest exists.
	Delete(ctx context.Context, userID, startupID string) error
	Exists(ctx context.Context, userID, startupID string) (bool, error)
	ListByStartup(ctx context.Context, startupID string) ([]models.StartupInterest, error)
	ListByUser(ctx context.Context, userID string) ([]models.StartupInterest, error)
}
