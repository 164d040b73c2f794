package auth

// Operation identifies one guarded resource operation. Every resource
// endpoint in the platform is wrapped by exactly one of these.
type Operation string

// Startup operations.
const (
	// StartupList allows listing startups.
	StartupList Operation = "startup:list"

	// StartupRead allows reading a single startup.
	StartupRead Operation = "startup:read"

	// StartupCreate allows creating a startup (founders only).
	StartupCreate Operation = "startup:create"

	// StartupUpdate allows updating a startup (owner only).
	StartupUpdate Operation = "startup:update"

	// StartupDelete allows deleting a startup (owner only).
	StartupDelete Operation = "startup:delete"

	// StartupListMine allows listing the caller's own startups. The query
	// itself is scoped to the principal, so no ownership predicate applies.
	StartupListMine Operation = "startup:list-mine"
)

// Interest operations.
const (
	// InterestCreate allows a talent user to express interest in a startup.
	InterestCreate Operation = "interest:create"

	// InterestDelete allows a talent user to withdraw an interest.
	InterestDelete Operation = "interest:delete"

	// InterestList allows the founder owner to list interests for a startup.
	InterestList Operation = "interest:list"

	// InterestListMine allows a talent user to list their own interests.
	InterestListMine Operation = "interest:list-mine"
)

// User discovery operations.
const (
	// UserList allows listing active users.
	UserList Operation = "user:list"

	// UserRead allows reading a single active user.
	UserRead Operation = "user:read"
)
