package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/lucasstarsz/lemon-mart"
	"github.com/lucasstarsz/lemon-mart/cache"
)

// Exercises the full wiring: file-backed cache, in-memory provider, session
// manager and the outbound guard, through the same lifecycle the example
// binary runs.
func TestSessionLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := cache.NewFileStore(dir)
	require.NoError(t, err)

	provider := auth.NewInMemoryProvider()
	manager := auth.NewSessionManager(ctx, provider, store)
	t.Cleanup(manager.Close)

	require.NoError(t, manager.Login(ctx, "manager@test.com", "pwd"))

	status := manager.AuthStatus()
	assert.True(t, status.IsAuthenticated)
	assert.Equal(t, auth.RoleManager, status.UserRole)

	// Authenticated calls to third parties carry the persisted token.
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer upstream.Close()

	client := &http.Client{
		Transport: auth.NewGuardTransport(manager, "http://localhost:3000"),
	}
	resp, err := client.Get(upstream.URL + "/inventory")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer "+manager.Token(), gotAuth)

	// A fresh manager over the same store resumes the session and refetches
	// the profile on the next tick.
	resumed := auth.NewSessionManager(ctx, provider, store)
	t.Cleanup(resumed.Close)

	assert.Equal(t, status, resumed.AuthStatus())
	assert.Eventually(t, func() bool {
		return resumed.CurrentUser().FullName() != ""
	}, 2*time.Second, 10*time.Millisecond)

	// Logging out purges the token, so a third manager starts clean.
	manager.Logout(true)
	assert.Eventually(t, func() bool {
		return manager.AuthStatus() == auth.DefaultAuthStatus()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, manager.Token())

	clean := auth.NewSessionManager(ctx, provider, store)
	t.Cleanup(clean.Close)
	assert.Equal(t, auth.DefaultAuthStatus(), clean.AuthStatus())
}
