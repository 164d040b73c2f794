// Package authz mediates resource access: every guarded operation is
// evaluated against its policy before the operation's business logic runs.
package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jagan25-mj/startup-connect-hub/internal/auth"
)

// ErrNotFound is returned by Store lookups when the target does not exist.
var ErrNotFound = errors.New("not found")

// Store is the storage collaborator consumed by the mediator. Lookups are
// the only potentially blocking step of authorization; a decision is never
// returned before they complete.
type Store interface {
	// GetStartupOwner resolves the owner of a startup, or ErrNotFound.
	GetStartupOwner(ctx context.Context, startupID string) (string, error)

	// InterestExists reports whether the (user, startup) interest exists.
	InterestExists(ctx context.Context, userID, startupID string) (bool, error)
}

// ResourceRef names the target of an operation, when it has one.
type ResourceRef struct {
	StartupID string
}

const (
	ownerCacheSize = 1024
	ownerCacheTTL  = 30 * time.Second
)

// Mediator wraps each resource operation with the policy checks appropriate
// to that operation. It holds no cross-request mutable state beyond a
// read-through cache of owner lookups, so authorization is lock-free and
// trivially parallel.
type Mediator struct {
	store    Store
	policies map[auth.Operation]auth.RuleSet

	// ownerCache memoizes positive GetStartupOwner results for a short TTL.
	// It is an optimization only; negative results are never cached, and the
	// storage layer's constraints remain the authority under concurrency.
	ownerCache *expirable.LRU[string, string]
}

// NewMediator constructs a Mediator backed by the given storage collaborator.
func NewMediator(store Store) *Mediator {
	return &Mediator{
		store:      store,
		policies:   defaultPolicies(),
		ownerCache: expirable.NewLRU[string, string](ownerCacheSize, nil, ownerCacheTTL),
	}
}

// defaultPolicies is the per-operation policy table. Predicates combine
// with AND within a rule; rules combine with OR across allowed paths.
func defaultPolicies() map[auth.Operation]auth.RuleSet {
	authenticated := auth.RuleSet{{auth.IsAuthenticated, auth.ReadOnly}}

	return map[auth.Operation]auth.RuleSet{
		auth.StartupList: authenticated,
		auth.StartupRead: authenticated,
		auth.UserList:    authenticated,
		auth.UserRead:    authenticated,

		auth.StartupCreate:   {{auth.IsAuthenticated, auth.HasRole(auth.RoleFounder)}},
		auth.StartupListMine: {{auth.IsAuthenticated, auth.HasRole(auth.RoleFounder)}},
		auth.StartupUpdate: {{auth.IsAuthenticated, auth.IsOwner}},
		auth.StartupDelete: {{auth.IsAuthenticated, auth.IsOwner}},

		auth.InterestCreate:   {{auth.IsAuthenticated, auth.HasRole(auth.RoleTalent)}},
		auth.InterestDelete:   {{auth.IsAuthenticated, auth.HasRole(auth.RoleTalent)}},
		auth.InterestListMine: {{auth.IsAuthenticated, auth.HasRole(auth.RoleTalent)}},

		auth.InterestList: {{auth.IsAuthenticated, auth.HasRole(auth.RoleFounder), auth.IsOwner}},
	}
}

// Authorize evaluates the policy for one operation before it executes.
//
// Check order is fixed: authentication, then role, then target existence,
// then ownership and the interest guards. Existence is checked before
// ownership, so updating a missing startup is not_found while updating
// someone else's is not_owner; the resulting 404/403 distinction is the
// platform's documented behavior. The owner lookup runs only when the
// decision can depend on it; plain reads never touch storage here.
//
// The error return is reserved for storage failures; every policy outcome,
// including not-found targets, is expressed as a Decision.
func (m *Mediator) Authorize(ctx context.Context, principal auth.Principal, op auth.Operation, ref *ResourceRef) (auth.Decision, error) {
	policy, ok := m.policies[op]
	if !ok {
		return auth.Deny(auth.ReasonUnauthenticated), fmt.Errorf("no policy registered for operation %q", op)
	}

	// Authentication and role predicates need no resource, so evaluate them
	// first and fail fast before touching storage.
	if decision := policy.Evaluate(principal, nil); !decision.Allowed {
		if !needsResource(policy) || decision.Reason != auth.ReasonNotOwner {
			return decision, nil
		}
	}

	var resource *auth.Resource
	if ref != nil && ref.StartupID != "" && (needsResource(policy) || requiresTarget(op)) {
		ownerID, err := m.resolveOwner(ctx, ref.StartupID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return auth.Deny(auth.ReasonNotFound), nil
			}
			return auth.Decision{}, fmt.Errorf("resolve startup owner: %w", err)
		}
		resource = &auth.Resource{ID: ref.StartupID, OwnerID: ownerID}
	}

	decision := policy.Evaluate(principal, resource)
	if !decision.Allowed {
		return decision, nil
	}

	// Interest guards: advisory pre-checks producing domain errors. The
	// unique constraint at the storage boundary stays the arbiter for races.
	switch op {
	case auth.InterestCreate:
		exists, err := m.store.InterestExists(ctx, principal.ID, ref.StartupID)
		if err != nil {
			return auth.Decision{}, fmt.Errorf("check interest existence: %w", err)
		}
		if exists {
			return auth.Deny(auth.ReasonDuplicateInterest), nil
		}
	case auth.InterestDelete:
		exists, err := m.store.InterestExists(ctx, principal.ID, ref.StartupID)
		if err != nil {
			return auth.Decision{}, fmt.Errorf("check interest existence: %w", err)
		}
		if !exists {
			return auth.Deny(auth.ReasonNoInterest), nil
		}
	}

	return auth.Allow, nil
}

// resolveOwner looks up the startup's owner through the read-through cache.
func (m *Mediator) resolveOwner(ctx context.Context, startupID string) (string, error) {
	if ownerID, ok := m.ownerCache.Get(startupID); ok {
		return ownerID, nil
	}

	ownerID, err := m.store.GetStartupOwner(ctx, startupID)
	if err != nil {
		return "", err
	}

	m.ownerCache.Add(startupID, ownerID)
	return ownerID, nil
}

// InvalidateOwner drops a startup from the owner cache. Called after a
// startup is deleted so a recreated ID cannot serve a stale owner.
func (m *Mediator) InvalidateOwner(startupID string) {
	m.ownerCache.Remove(startupID)
}

// requiresTarget reports whether the operation must verify its target
// startup exists even though its policy carries no ownership predicate.
// The interest operations reference a startup that may have been deleted;
// plain reads skip the lookup and let the fetch itself report not-found.
func requiresTarget(op auth.Operation) bool {
	return op == auth.InterestCreate || op == auth.InterestDelete
}

// needsResource reports whether any rule in the set contains an ownership
// predicate, meaning the target resource must be resolved before a final
// decision.
func needsResource(policy auth.RuleSet) bool {
	for _, rule := range policy {
		for _, p := range rule {
			if p.Name == auth.IsOwner.Name {
				return true
			}
		}
	}
	return false
}
