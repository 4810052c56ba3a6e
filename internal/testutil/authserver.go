// Package testutil provides test doubles for the pocketledger core:
// an in-memory key-value store and a stub auth API server.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/fmansouri/pocketledger/internal/model"
)

// AuthServer is a stub implementation of the remote auth API backed by
// httptest. It issues a single configurable token and tracks per-path
// request counts so tests can assert that no network call was made.
type AuthServer struct {
	*httptest.Server

	mu       sync.Mutex
	token    string
	user     model.User
	password string
	calls    map[string]int

	// RejectAll makes every endpoint answer 401.
	RejectAll bool
}

// NewAuthServer starts a stub auth server. It is shut down
// automatically when the test ends.
func NewAuthServer(t *testing.T) *AuthServer {
	t.Helper()

	s := &AuthServer{
		token:    "srv-token-1",
		user:     model.User{ID: 42, Email: "jamila@example.com", Name: "Jamila"},
		password: "hunter22",
		calls:    make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)
	return s
}

// Token returns the token the server issues and accepts.
func (s *AuthServer) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the account the server knows about.
func (s *AuthServer) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser replaces the server-side account record.
func (s *AuthServer) SetUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Calls returns how many requests hit the given path.
func (s *AuthServer) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// TotalCalls returns how many requests the server saw in total.
func (s *AuthServer) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *AuthServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.calls[r.URL.Path]++
	reject := s.RejectAll
	s.mu.Unlock()

	if r.URL.Path == "/api/health" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if reject {
		fail(w, http.StatusUnauthorized, "session rejected")
		return
	}

	switch r.URL.Path {
	case "/api/auth/login":
		s.handleLogin(w, r)
	case "/api/auth/signup":
		s.handleSignup(w, r)
	case "/api/auth/me":
		if !s.authorized(r) {
			fail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		writeJSON(w, map[string]any{"user": s.User()})
	case "/api/auth/update-profile":
		if !s.authorized(r) {
			fail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.user.Name = req.Name
		s.user.Email = req.Email
		u := s.user
		s.mu.Unlock()
		writeJSON(w, map[string]any{"user": u})
	case "/api/auth/change-password":
		if !s.authorized(r) {
			fail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		var req struct {
			OldPassword string `json:"old_password"`
			NewPassword string `json:"new_password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		ok := req.OldPassword == s.password
		if ok {
			s.password = req.NewPassword
		}
		s.mu.Unlock()
		if !ok {
			fail(w, http.StatusBadRequest, "old password is incorrect")
			return
		}
		w.WriteHeader(http.StatusOK)
	case "/api/auth/delete-account":
		if !s.authorized(r) {
			fail(w, http.StatusUnauthorized, "invalid token")
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		fail(w, http.StatusNotFound, "not found")
	}
}

func (s *AuthServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	ok := req.Email == s.user.Email && req.Password == s.password
	tok, u := s.token, s.user
	s.mu.Unlock()

	if !ok {
		fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, map[string]any{"token": tok, "user": u})
}

func (s *AuthServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	s.user = model.User{ID: 43, Email: req.Email, Name: req.Name}
	s.password = req.Password
	tok, u := s.token, s.user
	s.mu.Unlock()

	writeJSON(w, map[string]any{"token": tok, "user": u})
}

func (s *AuthServer) authorized(r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.Header.Get("Authorization") == "Bearer "+s.token
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// DeadServerURL returns a URL nothing listens on, for connectivity
// failure tests.
func DeadServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	if !strings.HasPrefix(url, "http://") {
		t.Fatalf("unexpected test server url %q", url)
	}
	return url
}
