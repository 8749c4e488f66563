package scribesdk

// Route guards: pure functions of a session snapshot and the target path.
// They do no I/O and touch no state; the redirect decision is the whole
// output.

// Decision is a guard's verdict. When not allowed, RedirectTo names the view
// to send the user to and From preserves the intended destination so it can
// be resumed after authentication.
type Decision struct {
	Allowed    bool
	RedirectTo string
	From       string
}

// Guard checks whether the session may navigate to target.
type Guard func(snap Snapshot, target string) Decision

// RequireAuthenticated allows any authenticated session and redirects
// anonymous ones to the entry view.
func RequireAuthenticated(snap Snapshot, target string) Decision {
	if !snap.Authenticated() {
		return Decision{RedirectTo: PathAuth, From: target}
	}
	return Decision{Allowed: true}
}

// RequireAdmin allows sessions with admin capability and redirects everything
// else to the unauthorized view. Views needing both checks apply it in
// addition to RequireAuthenticated, not instead of it.
func RequireAdmin(snap Snapshot, target string) Decision {
	if !snap.Authenticated() || !snap.Admin() {
		return Decision{RedirectTo: PathUnauthorized, From: target}
	}
	return Decision{Allowed: true}
}

// Evaluate runs guards in order and returns the first redirect, or an allow
// when every guard passes.
func Evaluate(snap Snapshot, target string, guards ...Guard) Decision {
	for _, guard := range guards {
		if d := guard(snap, target); !d.Allowed {
			return d
		}
	}
	return Decision{Allowed: true}
}
