package auth

// AuthStatus is the published authentication state. It is a value type:
// replaced wholesale on every transition, never mutated in place.
type AuthStatus struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	UserRole        Role   `json:"userRole"`
	UserID          string `json:"userId"`
}

// DefaultAuthStatus is the unauthenticated state.
func DefaultAuthStatus() AuthStatus {
	return AuthStatus{
		IsAuthenticated: false,
		UserRole:        RoleNone,
		UserID:          "",
	}
}
