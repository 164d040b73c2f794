package authz

import (
	"context"
	"errors"

	"github.com/jagan25-mj/startup-connect-hub/internal/repository"
)

// RepositoryStore adapts the bun repositories to the mediator's Store contract.
type RepositoryStore struct {
	startups  repository.StartupRepository
	interests repository.InterestRepository
}

// NewRepositoryStore wraps the given repositories.
func NewRepositoryStore(startups repository.StartupRepository, interests repository.InterestRepository) *RepositoryStore {
	return &RepositoryStore{startups: startups, interests: interests}
}

// GetStartupOwner resolves the owner of a startup.
func (s *RepositoryStore) GetStartupOwner(ctx context.Context, startupID string) (string, error) {
	ownerID, err := s.startups.GetOwnerID(ctx, startupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return ownerID, nil
}

// InterestExists reports whether the (user, startup) interest exists.
func (s *RepositoryStore) InterestExists(ctx context.Context, userID, startupID string) (bool, error) {
	return s.interests.Exists(ctx, userID, startupID)
}
