package core

// DecisionKind is the outcome of a route-guard check.
type DecisionKind int

const (
	// DecisionPending means session verification is still in flight;
	// render a neutral loading state and do not redirect.
	DecisionPending DecisionKind = iota
	// DecisionAllow grants access to the requested route.
	DecisionAllow
	// DecisionRedirectLogin sends the visitor to the login entry point,
	// carrying the originally requested path for post-login resume.
	DecisionRedirectLogin
	// DecisionUnauthorized denies access because the authenticated role
	// is not in the route's required set.
	DecisionUnauthorized
)

// Decision is a route-guard verdict. From is populated for
// DecisionRedirectLogin so navigation can resume after login.
type Decision struct {
	Kind DecisionKind
	From string
}

// Guard answers whether the current identity may enter a route.
type Guard struct {
	auth *AuthManager

	// EnforceRoles controls the role check on role-restricted routes.
	// Disabling it is a demo bypass where any
	// authenticated identity passes; it is on by default and should
	// stay on outside of demos.
	EnforceRoles bool
}

// NewGuard builds a guard over the auth manager with role enforcement on.
func NewGuard(auth *AuthManager) *Guard {
	return &Guard{auth: auth, EnforceRoles: true}
}

// Check evaluates access to a route. requiredRoles may be empty (any
// authenticated identity passes), a single role or a set of roles.
// fromPath is the originally requested path.
func (g *Guard) Check(requiredRoles []Role, fromPath string) Decision {
	switch g.auth.State() {
	case StateVerifying:
		return Decision{Kind: DecisionPending}
	case StateAnonymous:
		return Decision{Kind: DecisionRedirectLogin, From: fromPath}
	}

	if len(requiredRoles) > 0 && g.EnforceRoles {
		identity := g.auth.CurrentIdentity()
		if identity == nil || !identity.Role.In(requiredRoles) {
			return Decision{Kind: DecisionUnauthorized}
		}
	}
	return Decision{Kind: DecisionAllow}
}
