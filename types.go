package auth

import (
	"context"
	"fmt"
	"net/url"
)

// Logger is the minimal logging surface the package needs.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// SessionProvider is the single extension point separating real backends
// from test backends. The session manager depends only on this interface,
// never a concrete variant.
type SessionProvider interface {
	// AuthProvider exchanges credentials for a signed bearer token.
	AuthProvider(ctx context.Context, email, password string) (string, error)
	// TransformClaims derives the published status from decoded claims.
	TransformClaims(claims *TokenClaims) AuthStatus
	// GetCurrentUser returns the profile for the current session.
	GetCurrentUser(ctx context.Context) (User, error)
}

// Notifier receives user-facing messages. Fire and forget.
type Notifier interface {
	ShowMessage(text string)
}

// Navigator receives navigation requests. Fire and forget.
type Navigator interface {
	NavigateTo(path string, params url.Values)
}

// SessionInvalidator is the slice of the session manager the outbound
// request guard needs to attach tokens and react to authorization failures.
type SessionInvalidator interface {
	Token() string
	Logout(clearToken bool)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(text string)

func (f NotifierFunc) ShowMessage(text string) {
	if f != nil {
		f(text)
	}
}

// NavigatorFunc adapts a function into a Navigator.
type NavigatorFunc func(path string, params url.Values)

func (f NavigatorFunc) NavigateTo(path string, params url.Values) {
	if f != nil {
		f(path, params)
	}
}
