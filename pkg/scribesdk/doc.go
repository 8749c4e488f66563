/*
Package scribesdk is the client SDK for the VidScribe content-generation
service: submit a YouTube URL, get back a generated blog document, manage
your documents, and (for staff) drive the management endpoints.

# Client, SessionManager, and the gateway

Client is the transport. Its unauthenticated methods (ObtainToken, Register,
Refresh) call the auth endpoints directly. Every other method runs through
the authorized request gateway, which:

  - attaches the stored access token as a bearer credential,
  - on a 401, refreshes the access token exactly once and replays the
    request with the new token,
  - collapses concurrent refreshes into a single in-flight call whose
    outcome all waiters share,
  - forces a logout and fails with ErrAuthExpired when the refresh token
    itself is rejected.

SessionManager owns the login/register/logout state machine over a
CredentialStore and publishes the session as immutable Snapshots:

	store := scribesdk.NewMemStore() // or the sqlite store
	client := scribesdk.New("http://localhost:8000/api", store)
	sessions, err := scribesdk.NewSessionManager(client, nav)
	if err != nil {
		return err
	}

	if err := sessions.Login(ctx, email, password); err != nil {
		return err
	}

	post, err := client.GenerateBlog(ctx, videoURL, false)

# Route guards

RequireAuthenticated and RequireAdmin are pure checks over a Snapshot used
at navigation time:

	snap := sessions.Snapshot()
	if d := scribesdk.Evaluate(snap, "/admin", scribesdk.RequireAuthenticated, scribesdk.RequireAdmin); !d.Allowed {
		navigateTo(d.RedirectTo)
	}

# Errors

Failures carry the server's detail: *APIError for general HTTP failures,
*ValidationError for field-level 400s (check Field("email") for a duplicate
registration), and the ErrAuthExpired sentinel once the refresh path is
exhausted. Use errors.Is/errors.As.
*/
package scribesdk
