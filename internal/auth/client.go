// Package auth implements the session client: user identity, bearer
// token lifecycle, and the offline-tolerant remote account operations.
//
// The client is deliberately forgiving about the network: it validates
// cached credentials against the server when it can, keeps them when it
// cannot, and always leaves the app with a usable identity. Local state
// is authoritative; the server's copy overwrites it only on a
// successful refresh.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/model"
	"github.com/fmansouri/pocketledger/internal/service"
)

// Client owns the session state.
type Client struct {
	kv         service.KVStore
	reach      service.Reachability
	httpClient *http.Client
	baseURL    string

	mu          sync.Mutex
	user        *model.User
	token       string
	loading     bool
	online      bool
	cancelReach func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an unhydrated session client talking to the auth
// API at baseURL. Call Hydrate before any other operation.
func NewClient(baseURL string, kv service.KVStore, reach service.Reachability, opts ...Option) *Client {
	c := &Client{
		kv:      kv,
		reach:   reach,
		baseURL: strings.TrimRight(baseURL, "/"),
		loading: true,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hydrate restores cached credentials, validates them against the
// server when a token exists, and synthesizes a local identity when
// nothing is cached. It never fails because the server is unreachable;
// loading transitions to false regardless of outcome.
func (c *Client) Hydrate(ctx context.Context) error {
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	cachedUser := c.readCachedUser(ctx)
	cachedToken := c.readCachedToken(ctx)

	c.mu.Lock()
	c.user = cachedUser
	c.token = cachedToken
	c.online = c.reach.Online()
	c.cancelReach = c.reach.Subscribe(func(online bool) {
		c.mu.Lock()
		c.online = online
		c.mu.Unlock()
	})
	c.mu.Unlock()

	if cachedToken != "" && !model.IsLocalToken(cachedToken) {
		var resp userResponse
		err := c.do(ctx, http.MethodGet, "/api/auth/me", cachedToken, nil, &resp)
		switch {
		case err == nil && resp.User != nil:
			c.setUser(ctx, resp.User)
		case err != nil:
			// Offline or rejected: keep the cached user rather than
			// logging the user out while unreachable.
			common.LogDebug("auth: startup validation failed, keeping cached user",
				common.Fields{"error": err.Error()})
		}
	}

	c.mu.Lock()
	haveUser := c.user != nil
	c.mu.Unlock()
	if !haveUser {
		local := model.LocalUser()
		c.setUser(ctx, local)
		c.setToken(ctx, model.LocalToken)
	}

	return nil
}

// Close drops the reachability subscription.
func (c *Client) Close() error {
	c.mu.Lock()
	cancel := c.cancelReach
	c.cancelReach = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

// User returns a copy of the current identity, or nil.
func (c *Client) User() *model.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Token returns the current bearer credential, possibly the local-only
// sentinel, or "".
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Loading reports whether startup hydration is still in flight.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Online reports the last-observed reachability state.
func (c *Client) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// setUser updates the in-memory user and mirrors it to the key-value
// store. Passing nil clears both.
func (c *Client) setUser(ctx context.Context, u *model.User) {
	c.mu.Lock()
	c.user = u
	c.mu.Unlock()

	if u == nil {
		if err := c.kv.Delete(ctx, service.KeyAuthUser); err != nil {
			common.LogError(err, "auth: clear cached user failed", nil)
		}
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		common.LogError(err, "auth: marshal user failed", nil)
		return
	}
	if err := c.kv.Set(ctx, service.KeyAuthUser, string(data)); err != nil {
		common.LogError(err, "auth: cache user failed", nil)
	}
}

// setToken updates the in-memory token and mirrors it to the key-value
// store. Passing "" clears both.
func (c *Client) setToken(ctx context.Context, tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()

	if tok == "" {
		if err := c.kv.Delete(ctx, service.KeyAuthToken); err != nil {
			common.LogError(err, "auth: clear cached token failed", nil)
		}
		return
	}
	if err := c.kv.Set(ctx, service.KeyAuthToken, tok); err != nil {
		common.LogError(err, "auth: cache token failed", nil)
	}
}

// currentToken resolves the active bearer credential, consulting the
// durable store when the in-memory value is missing and writing the
// recovered value back. Returns "" when no token exists anywhere.
func (c *Client) currentToken(ctx context.Context) string {
	c.mu.Lock()
	tok := c.token
	c.mu.Unlock()
	if tok != "" {
		return tok
	}

	tok = c.readCachedToken(ctx)
	if tok != "" {
		common.LogDebug("auth: recovered token from storage", nil)
		c.mu.Lock()
		c.token = tok
		c.mu.Unlock()
	}
	return tok
}

func (c *Client) readCachedUser(ctx context.Context) *model.User {
	raw, ok, err := c.kv.Get(ctx, service.KeyAuthUser)
	if err != nil {
		common.LogError(err, "auth: read cached user failed", nil)
		return nil
	}
	if !ok {
		return nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		common.LogError(err, "auth: parse cached user failed", nil)
		return nil
	}
	return &u
}

func (c *Client) readCachedToken(ctx context.Context) string {
	tok, ok, err := c.kv.Get(ctx, service.KeyAuthToken)
	if err != nil {
		common.LogError(err, "auth: read cached token failed", nil)
		return ""
	}
	if !ok {
		return ""
	}
	return tok
}
