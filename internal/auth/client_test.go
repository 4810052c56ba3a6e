package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/model"
	"github.com/fmansouri/pocketledger/internal/netmon"
	"github.com/fmansouri/pocketledger/internal/service"
	"github.com/fmansouri/pocketledger/internal/storage"
	"github.com/fmansouri/pocketledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, kv *storage.MemoryKV, online bool) (*Client, *netmon.Static) {
	t.Helper()
	reach := netmon.NewStatic(online)
	c := NewClient(baseURL, kv, reach)
	require.NoError(t, c.Hydrate(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c, reach
}

func cachedUser(t *testing.T, kv *storage.MemoryKV) *model.User {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), service.KeyAuthUser)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	var u model.User
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	return &u
}

func cachedToken(t *testing.T, kv *storage.MemoryKV) string {
	t.Helper()
	raw, _, err := kv.Get(context.Background(), service.KeyAuthToken)
	require.NoError(t, err)
	return raw
}

func TestHydrate_FreshInstallSynthesizesLocalIdentity(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	kv := testutil.NewKV(t)

	c, _ := newTestClient(t, srv.URL, kv, true)

	require.NotNil(t, c.User())
	assert.Equal(t, "local@user.app", c.User().Email)
	assert.Equal(t, model.LocalToken, c.Token())
	assert.False(t, c.Loading())

	// Identity is persisted so the next start finds it.
	assert.Equal(t, model.LocalToken, cachedToken(t, kv))
	require.NotNil(t, cachedUser(t, kv))
	assert.Equal(t, "local@user.app", cachedUser(t, kv).Email)

	// No server traffic for a fresh local identity.
	assert.Zero(t, srv.TotalCalls())
}

func TestHydrate_ValidatesCachedTokenAndAdoptsServerUser(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	kv := testutil.NewKV(t)
	testutil.Seed(t, kv, service.KeyAuthToken, srv.Token())
	testutil.SeedJSON(t, kv, service.KeyAuthUser, model.User{ID: 42, Email: "stale@example.com", Name: "Stale"})

	c, _ := newTestClient(t, srv.URL, kv, true)

	require.NotNil(t, c.User())
	assert.Equal(t, srv.User().Email, c.User().Email)
	assert.Equal(t, 1, srv.Calls("/api/auth/me"))

	// Cache refreshed with the server's copy.
	assert.Equal(t, srv.User().Email, cachedUser(t, kv).Email)
}

func TestHydrate_KeepsCachedUserWhenServerUnreachable(t *testing.T) {
	kv := testutil.NewKV(t)
	testutil.Seed(t, kv, service.KeyAuthToken, "srv-token-1")
	testutil.SeedJSON(t, kv, service.KeyAuthUser, model.User{ID: 9, Email: "cached@example.com", Name: "Cached"})

	c, _ := newTestClient(t, testutil.DeadServerURL(t), kv, false)

	require.NotNil(t, c.User())
	assert.Equal(t, "cached@example.com", c.User().Email)
	assert.Equal(t, "srv-token-1", c.Token())
	assert.False(t, c.Loading())
}

func TestHydrate_KeepsCachedUserWhenServerRejectsToken(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	srv.RejectAll = true
	kv := testutil.NewKV(t)
	testutil.Seed(t, kv, service.KeyAuthToken, "expired-token")
	testutil.SeedJSON(t, kv, service.KeyAuthUser, model.User{ID: 9, Email: "cached@example.com"})

	c, _ := newTestClient(t, srv.URL, kv, true)

	require.NotNil(t, c.User())
	assert.Equal(t, "cached@example.com", c.User().Email)
}

func TestLogin_Success(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	kv := testutil.NewKV(t)
	c, _ := newTestClient(t, srv.URL, kv, true)

	err := c.Login(context.Background(), srv.User().Email, "hunter22")
	require.NoError(t, err)

	assert.Equal(t, srv.Token(), c.Token())
	assert.Equal(t, srv.User().Email, c.User().Email)
	assert.Equal(t, srv.Token(), cachedToken(t, kv))
	assert.Equal(t, srv.User().Email, cachedUser(t, kv).Email)
}

func TestLogin_ValidationRejectsBeforeAnyNetworkCall(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	c, _ := newTestClient(t, srv.URL, testutil.NewKV(t), true)
	before := srv.TotalCalls()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty password", email: "bad@x.com", password: ""},
		{name: "empty email", email: "", password: "secret"},
		{name: "malformed email", email: "not-an-email", password: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, common.IsValidation(err), "want validation error, got %v", err)
		})
	}

	assert.Equal(t, before, srv.TotalCalls(), "validation failures must not hit the network")
}

func TestLogin_SurfacesServerMessage(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	c, _ := newTestClient(t, srv.URL, testutil.NewKV(t), true)

	err := c.Login(context.Background(), "jamila@example.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, common.IsAuthentication(err))
	assert.Equal(t, "invalid credentials", common.Message(err))
}

func TestLogin_ConnectivityFailure(t *testing.T) {
	c, _ := newTestClient(t, testutil.DeadServerURL(t), testutil.NewKV(t), false)

	err := c.Login(context.Background(), "jamila@example.com", "hunter22")
	require.Error(t, err)
	assert.True(t, common.IsConnectivity(err))
	assert.Contains(t, common.Message(err), "connection")
}

func TestSignup_Validation(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	c, _ := newTestClient(t, srv.URL, testutil.NewKV(t), true)
	before := srv.TotalCalls()

	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'x'
	}

	tests := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{name: "missing name", email: "a@b.co", password: "secret1", userName: ""},
		{name: "short password", email: "a@b.co", password: "12345", userName: "Aya"},
		{name: "name too long", email: "a@b.co", password: "secret1", userName: string(longName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Signup(context.Background(), tt.email, tt.password, tt.userName)
			require.Error(t, err)
			assert.True(t, common.IsValidation(err))
		})
	}

	assert.Equal(t, before, srv.TotalCalls())
}

func TestSignup_Success(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	kv := testutil.NewKV(t)
	c, _ := newTestClient(t, srv.URL, kv, true)

	require.NoError(t, c.Signup(context.Background(), "aya@example.com", "secret1", "Aya"))
	assert.Equal(t, srv.Token(), c.Token())
	assert.Equal(t, "aya@example.com", c.User().Email)
	assert.Equal(t, srv.Token(), cachedToken(t, kv))
}

func TestLogout_ClearsSession(t *testing.T) {
	srv := testutil.NewAuthServer(t)
	kv := testutil.NewKV(t)
	c, _ := newTestClient(t, srv.URL, kv, true)
	require.NoError(t, c.Login(context.Background(), srv.User().Email, "hunter22"))

	before := srv.TotalCalls()
	c.Logout(context.Background())

	assert.Nil(t, c.User())
	assert.Empty(t, c.Token())
	assert.Empty(t, cachedToken(t, kv))
	assert.Nil(t, cachedUser(t, kv))
	assert.Equal(t, before, srv.TotalCalls(), "logout never calls the server")
}
