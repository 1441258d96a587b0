// ABOUTME: Role gate deciding whether a session may use a protected view
// ABOUTME: Pure decision logic with no navigation or I/O

package rolegate

import "stayhub/internal/session"

// Reason explains a denial.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoSession
	ReasonWrongRole
)

// Decision is the gate's answer. Callers that receive a denial must not
// issue the protected request; the gate itself never navigates.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Authorize allows iff a session is present and its role is in the
// required set. An empty required set means any logged-in role.
func Authorize(sess *session.Session, required ...session.Role) Decision {
	if !sess.Complete() {
		return Decision{Allowed: false, Reason: ReasonNoSession}
	}
	if len(required) == 0 {
		return Decision{Allowed: true}
	}
	for _, role := range required {
		if sess.Role == role {
			return Decision{Allowed: true}
		}
	}
	return Decision{Allowed: false, Reason: ReasonWrongRole}
}

// Message returns user-facing text for a denial.
func (d Decision) Message() string {
	switch d.Reason {
	case ReasonNoSession:
		return "You must be logged in for this."
	case ReasonWrongRole:
		return "Your account is not allowed to do this."
	default:
		return ""
	}
}

// Route is a post-login destination.
type Route int

const (
	RouteHome Route = iota
	RouteVendor
	RouteAdmin
)

// RouteForRole maps a role to its landing destination: vendors go to
// the vendor dashboard, admins to the admin dashboard, everyone else to
// the public listings.
func RouteForRole(role session.Role) Route {
	switch role {
	case session.RoleVendor:
		return RouteVendor
	case session.RoleAdmin:
		return RouteAdmin
	default:
		return RouteHome
	}
}

// String returns the route name shown to users.
func (r Route) String() string {
	switch r {
	case RouteVendor:
		return "vendor dashboard"
	case RouteAdmin:
		return "admin dashboard"
	default:
		return "listings"
	}
}
