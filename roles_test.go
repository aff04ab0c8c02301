package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/lucasstarsz/lemon-mart"
)

func TestRoleIsValid(t *testing.T) {
	for _, role := range auth.AllRoles() {
		assert.True(t, role.IsValid(), string(role))
	}
	assert.False(t, auth.Role("janitor").IsValid())
	assert.False(t, auth.Role("").IsValid())
}

func TestParseRole(t *testing.T) {
	role, ok := auth.ParseRole("clerk")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleClerk, role)

	role, ok = auth.ParseRole("root")
	assert.False(t, ok)
	assert.Equal(t, auth.RoleNone, role)
}

func TestRoleIsAtLeast(t *testing.T) {
	tests := []struct {
		role     auth.Role
		minRole  auth.Role
		expected bool
	}{
		{auth.RoleManager, auth.RoleCashier, true},
		{auth.RoleManager, auth.RoleManager, true},
		{auth.RoleClerk, auth.RoleManager, false},
		{auth.RoleCashier, auth.RoleNone, true},
		{auth.RoleNone, auth.RoleCashier, false},
		{"unknown", auth.RoleNone, false},
		{auth.RoleNone, "unknown", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.role.IsAtLeast(tt.minRole),
			"%s at least %s", tt.role, tt.minRole)
	}
}
