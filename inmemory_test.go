package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/lucasstarsz/lemon-mart"
)

func TestInMemoryProvider_AuthProvider(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		wantRole auth.Role
		wantErr  bool
	}{
		{name: "manager", email: "manager@test.com", wantRole: auth.RoleManager},
		{name: "cashier", email: "cashier@test.com", wantRole: auth.RoleCashier},
		{name: "clerk", email: "clerk@test.com", wantRole: auth.RoleClerk},
		{name: "unrecognized local part", email: "somebody@test.com", wantRole: auth.RoleNone},
		{name: "case insensitive", email: "MANAGER@TEST.COM", wantRole: auth.RoleManager},
		{name: "wrong domain", email: "manager@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := auth.NewInMemoryProvider()

			token, err := provider.AuthProvider(context.Background(), tt.email, "x")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)

			claims, err := auth.DecodeToken(token)
			require.NoError(t, err)

			assert.True(t, claims.IsAuthenticated)
			assert.Equal(t, tt.wantRole, claims.UserRole)
			assert.Equal(t, "5da01751da27cc462d265913", claims.UserID)
		})
	}
}

func TestInMemoryProvider_TokenExpiry(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	provider := auth.NewInMemoryProvider().WithClock(func() time.Time { return now })

	token, err := provider.AuthProvider(context.Background(), "manager@test.com", "x")
	require.NoError(t, err)

	claims, err := auth.DecodeToken(token)
	require.NoError(t, err)

	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.False(t, claims.Expired(now))
	assert.True(t, claims.Expired(now.Add(time.Hour)))
}

func TestInMemoryProvider_GetCurrentUser(t *testing.T) {
	provider := auth.NewInMemoryProvider()

	_, err := provider.AuthProvider(context.Background(), "clerk@test.com", "x")
	require.NoError(t, err)

	user, err := provider.GetCurrentUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Doguhan Uluca", user.FullName())
	// The profile role mirrors the last issued token.
	assert.Equal(t, auth.RoleClerk, user.Role)
	assert.NoError(t, user.Validate())

	// Mutating the returned copy must not leak into the provider.
	user.Phones[0].Digits = "0000000000"
	again, err := provider.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5555550717", again.Phones[0].Digits)
}

func TestInMemoryProvider_TransformClaims(t *testing.T) {
	provider := auth.NewInMemoryProvider()

	status := provider.TransformClaims(&auth.TokenClaims{
		IsAuthenticated: true,
		UserRole:        auth.RoleCashier,
		UserID:          "u-1",
	})

	assert.Equal(t, auth.AuthStatus{
		IsAuthenticated: true,
		UserRole:        auth.RoleCashier,
		UserID:          "u-1",
	}, status)
}
