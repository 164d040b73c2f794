package auth

// Role is the platform-wide user role baked into issued tokens.
type Role string

const (
	// RoleFounder may create and manage startups.
	RoleFounder Role = "founder"
	// RoleTalent may express interest in startups.
	RoleTalent Role = "talent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleFounder || r == RoleTalent
}

// Principal represents the authenticated identity for one request.
//
// This struct is IMMUTABLE after construction. It is a snapshot of the
// claims minted at token issuance, not a live view of the user record:
// a role change or deactivation after issuance is not visible until the
// token expires. That staleness is an accepted trade-off of stateless
// verification.
//
// The Principal is stored in the request context and consumed by the
// authorization layer; it is discarded when the request ends.
type Principal struct {
	// ID is the user's database identifier (UUID).
	ID string

	// Role is the role claim minted at issuance.
	Role Role

	// Active mirrors the account's active flag at issuance time.
	Active bool
}

// IsFounder reports whether the principal carries the founder role.
func (p Principal) IsFounder() bool { return p.Role == RoleFounder }

// IsTalent reports whether the principal carries the talent role.
func (p Principal) IsTalent() bool { return p.Role == RoleTalent }
