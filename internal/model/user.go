package model

import "strings"

// LocalToken is the sentinel credential written when no server session
// exists; identity is device-local until the user signs in.
const LocalToken = "local-token"

// User is the authenticated (or locally synthesized) identity.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// LocalUser returns the placeholder identity adopted on first launch,
// before any server account exists.
func LocalUser() *User {
	return &User{ID: 1, Email: "local@user.app", Name: "Local User"}
}

// IsLocalToken reports whether tok marks a device-local session rather
// than a server-issued credential.
func IsLocalToken(tok string) bool {
	return strings.HasPrefix(tok, "local") || strings.HasPrefix(tok, "demo")
}
