package auth

// Resource is the slice of a target entity the policy engine needs: its
// identity and its owner. All other fields are opaque to authorization.
type Resource struct {
	ID      string
	OwnerID string
}

// DenyReason classifies why a policy decision denied access. The HTTP layer
// maps reasons to the status taxonomy; the reasons must never be collapsed
// into one another ("not logged in" vs "logged in but not allowed" vs
// "that wasn't found" stay distinguishable).
type DenyReason string

const (
	// ReasonNone indicates an allowed decision.
	ReasonNone DenyReason = ""
	// ReasonUnauthenticated denies requests with no usable principal.
	ReasonUnauthenticated DenyReason = "unauthenticated"
	// ReasonWrongRole denies authenticated principals lacking the required role.
	ReasonWrongRole DenyReason = "wrong_role"
	// ReasonNotOwner denies authenticated principals that do not own the resource.
	ReasonNotOwner DenyReason = "not_owner"
	// ReasonNotFound denies operations whose target resource does not exist.
	ReasonNotFound DenyReason = "not_found"
	// ReasonDuplicateInterest denies creating an interest that already exists.
	ReasonDuplicateInterest DenyReason = "duplicate_interest"
	// ReasonNoInterest denies withdrawing an interest that does not exist.
	ReasonNoInterest DenyReason = "no_interest"
)

// Decision is the allow/deny outcome of evaluating one operation's policy.
// Decisions are ephemeral and never persisted.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow is the shared allowed decision.
var Allow = Decision{Allowed: true}

// Deny constructs a denied decision with the given reason.
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Predicate is a pure, side-effect-free check over a principal and an
// optional target resource. Predicates may be combined freely; evaluation
// order does not affect the outcome, but rules short-circuit on the first
// failing predicate.
type Predicate struct {
	Name   string
	Check  func(principal Principal, resource *Resource) bool
	Reason DenyReason
}

// IsAuthenticated passes when a principal is present and its account was
// active at token issuance.
var IsAuthenticated = Predicate{
	Name: "authenticated",
	Check: func(p Principal, _ *Resource) bool {
		return p.ID != "" && p.Active
	},
	Reason: ReasonUnauthenticated,
}

// HasRole passes when the principal carries exactly the given role.
func HasRole(role Role) Predicate {
	return Predicate{
		Name: "role:" + string(role),
		Check: func(p Principal, _ *Resource) bool {
			return p.Role == role
		},
		Reason: ReasonWrongRole,
	}
}

// IsOwner passes when a resource is present and owned by the principal.
var IsOwner = Predicate{
	Name: "owner",
	Check: func(p Principal, r *Resource) bool {
		return r != nil && r.OwnerID != "" && r.OwnerID == p.ID
	},
	Reason: ReasonNotOwner,
}

// ReadOnly always passes: retrieval is open to any authenticated principal
// regardless of ownership. It exists so read rules state their intent.
var ReadOnly = Predicate{
	Name:   "read-only",
	Check:  func(Principal, *Resource) bool { return true },
	Reason: ReasonNone,
}

// Rule is an AND of predicates: every predicate must pass.
type Rule []Predicate

// RuleSet is an OR of rules: the operation is allowed if any rule passes.
type RuleSet []Rule

// Evaluate runs the rule set against a principal and optional resource.
// When every rule fails, the deny reason is taken from the rule that got
// furthest before failing, which keeps denials deterministic and specific
// (an unauthenticated request denies with unauthenticated even when the
// rule also requires a role).
func (rs RuleSet) Evaluate(principal Principal, resource *Resource) Decision {
	bestDepth := -1
	reason := ReasonUnauthenticated

	for _, rule := range rs {
		depth, failed := rule.evaluate(principal, resource)
		if failed == nil {
			return Allow
		}
		if depth > bestDepth {
			bestDepth = depth
			reason = failed.Reason
		}
	}

	return Deny(reason)
}

// evaluate returns how many predicates passed and the first failing
// predicate, or nil if the whole rule passed.
func (r Rule) evaluate(principal Principal, resource *Resource) (int, *Predicate) {
	for i := range r {
		if !r[i].Check(principal, resource) {
			return i, &r[i]
		}
	}
	return len(r), nil
}
