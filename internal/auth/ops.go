package auth

import (
	"context"
	"net/http"

	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/model"
)

// Login exchanges credentials for a server session. Remote-only: there
// is no local fallback, and a failure leaves the current session
// untouched.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login",
		"", credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return common.NewUserError("Login failed", common.ErrServer)
	}

	c.setToken(ctx, resp.Token)
	c.setUser(ctx, resp.User)
	return nil
}

// Signup creates a server account and adopts the returned session.
func (c *Client) Signup(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" || name == "" {
		return validationError("Please fill in all fields")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePasswordLength(password); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup",
		"", credentialsRequest{Email: email, Password: password, Name: name}, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return common.NewUserError("Signup failed", common.ErrServer)
	}

	c.setToken(ctx, resp.Token)
	c.setUser(ctx, resp.User)
	return nil
}

// UpdateProfile applies the change locally first, then best-effort
// syncs it to the server. The local phase always succeeds once
// validation passes; a failed remote phase is swallowed and the local
// change stands.
func (c *Client) UpdateProfile(ctx context.Context, name, email string) error {
	if name == "" || email == "" {
		return validationError("Please fill in all fields")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	c.applyProfileLocally(ctx, name, email)
	c.syncProfileRemote(ctx, name, email)
	return nil
}

// applyProfileLocally is the optimistic local commit: the cached user
// is updated and persisted regardless of connectivity.
func (c *Client) applyProfileLocally(ctx context.Context, name, email string) {
	c.mu.Lock()
	updated := model.User{ID: 1, Name: name, Email: email}
	if c.user != nil {
		updated.ID = c.user.ID
	}
	c.mu.Unlock()

	c.setUser(ctx, &updated)
}

// syncProfileRemote is the best-effort remote phase. It runs only when
// online with a real server session, and on success overwrites the
// local user with the server's canonical copy. Any failure is logged
// and ignored.
func (c *Client) syncProfileRemote(ctx context.Context, name, email string) {
	if !c.Online() {
		return
	}
	tok := c.currentToken(ctx)
	if tok == "" || model.IsLocalToken(tok) {
		return
	}

	var resp userResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/update-profile",
		tok, profileRequest{Name: name, Email: email}, &resp)
	if err != nil {
		common.LogDebug("auth: profile sync failed, keeping local change",
			common.Fields{"error": err.Error()})
		return
	}
	if resp.User != nil {
		c.setUser(ctx, resp.User)
	}
}

// ChangePassword rotates the account password. The active token is
// resolved through the durable store when the in-memory copy is
// missing.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return validationError("Please fill in all fields")
	}
	if err := validatePasswordLength(newPassword); err != nil {
		return err
	}
	if oldPassword == newPassword {
		return validationError("New password must differ from the old one")
	}

	tok := c.currentToken(ctx)
	if tok == "" {
		return common.NewUserError("No session token. Please sign in again.", common.ErrAuthentication)
	}

	return c.do(ctx, http.MethodPost, "/api/auth/change-password",
		tok, passwordRequest{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}

// DeleteAccount removes the server account when one exists and is
// reachable, then always logs out locally. Offline and local-only
// sessions skip the remote call.
func (c *Client) DeleteAccount(ctx context.Context) error {
	tok := c.currentToken(ctx)
	if c.Online() && tok != "" && !model.IsLocalToken(tok) {
		if err := c.do(ctx, http.MethodDelete, "/api/auth/delete-account", tok, nil, nil); err != nil {
			return err
		}
	}
	c.Logout(ctx)
	return nil
}

// Logout clears the cached token and the in-memory session. The remote
// API is never called.
func (c *Client) Logout(ctx context.Context) {
	c.setToken(ctx, "")
	c.setUser(ctx, nil)
}

// SyncStatus describes the outcome of an explicit sync request.
type SyncStatus int

// Sync outcomes.
const (
	// SyncedWithServer means the server's user was adopted.
	SyncedWithServer SyncStatus = iota
	// SyncSkippedOffline means no request was attempted.
	SyncSkippedOffline
	// SyncLocalAccount means only a device-local session exists.
	SyncLocalAccount
	// SyncTokenExpired means the server rejected the cached token.
	SyncTokenExpired
)

// SyncWithServer re-validates the cached session against the server on
// explicit user request. Offline and local-only sessions produce a
// status, not an error; a rejected token is reported likewise so the
// caller can suggest signing in again.
func (c *Client) SyncWithServer(ctx context.Context) (SyncStatus, error) {
	if !c.Online() {
		return SyncSkippedOffline, nil
	}

	tok := c.currentToken(ctx)
	if tok == "" || model.IsLocalToken(tok) {
		return SyncLocalAccount, nil
	}

	var resp userResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/me", tok, nil, &resp)
	switch {
	case err == nil:
		if resp.User != nil {
			c.setUser(ctx, resp.User)
		}
		return SyncedWithServer, nil
	case common.IsAuthentication(err) || common.IsServer(err):
		return SyncTokenExpired, nil
	default:
		return SyncSkippedOffline, err
	}
}
