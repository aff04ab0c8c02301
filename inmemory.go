package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	inMemoryDomain   = "@test.com"
	inMemoryTokenTTL = time.Hour
)

// inMemorySigningKey signs reference tokens. The session manager never
// verifies signatures, so the key only has to be stable within a process.
var inMemorySigningKey = []byte("inmemory-secret")

// InMemoryProvider is the reference SessionProvider used for development
// and tests. It accepts only the designated test-domain emails, derives the
// role from the local part, and issues a short-lived signed token whose
// payload encodes the resulting status. Do not use it in production.
type InMemoryProvider struct {
	mu     sync.Mutex
	user   User
	logger Logger
	now    func() time.Time
}

// NewInMemoryProvider seeds the provider with its fixed default user.
func NewInMemoryProvider() *InMemoryProvider {
	dob := time.Date(1980, time.February, 1, 0, 0, 0, 0, time.UTC)

	return &InMemoryProvider{
		logger: defLogger{},
		now:    time.Now,
		user: User{
			ID:          "5da01751da27cc462d265913",
			Email:       "duluca@gmail.com",
			Name:        Name{First: "Doguhan", Last: "Uluca"},
			Picture:     "https://secure.gravatar.com/avatar/7cbaa9afb5ca78d97f3c689f8ce6c985",
			Role:        RoleManager,
			Active:      true,
			DateOfBirth: &dob,
			Level:       2,
			Address: Address{
				Line1: "101 Sesame St",
				City:  "Bethesda",
				State: "Maryland",
				Zip:   "20810",
			},
			Phones: []Phone{
				{ID: 0, Type: PhoneTypeMobile, Digits: "5555550717"},
			},
		},
	}
}

// WithLogger overrides the provider logger.
func (p *InMemoryProvider) WithLogger(logger Logger) *InMemoryProvider {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithClock injects a custom clock (useful for tests).
func (p *InMemoryProvider) WithClock(clock func() time.Time) *InMemoryProvider {
	if clock != nil {
		p.now = clock
	}
	return p
}

// AuthProvider accepts test-domain credentials and returns a signed token.
func (p *InMemoryProvider) AuthProvider(_ context.Context, email, _ string) (string, error) {
	email = strings.ToLower(email)

	if !strings.HasSuffix(email, inMemoryDomain) {
		p.logger.Debug("rejecting login for %q: not a %s address", email, inMemoryDomain)
		return "", ErrInvalidCredentials
	}

	role := roleFromEmail(email)

	p.mu.Lock()
	p.user.Role = role
	userID := p.user.ID
	p.mu.Unlock()

	now := p.now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(inMemoryTokenTTL)),
		},
		IsAuthenticated: true,
		UserRole:        role,
		UserID:          userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(inMemorySigningKey)
	if err != nil {
		return "", TransformError(err)
	}

	return signed, nil
}

// TransformClaims echoes the status the token payload already carries.
func (p *InMemoryProvider) TransformClaims(claims *TokenClaims) AuthStatus {
	return claims.AuthStatus()
}

// GetCurrentUser returns a copy of the default user for the session.
func (p *InMemoryProvider) GetCurrentUser(_ context.Context) (User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	user := p.user
	user.Phones = append([]Phone(nil), p.user.Phones...)
	return user, nil
}

func roleFromEmail(email string) Role {
	local := strings.SplitN(email, "@", 2)[0]
	switch {
	case strings.Contains(local, "cashier"):
		return RoleCashier
	case strings.Contains(local, "clerk"):
		return RoleClerk
	case strings.Contains(local, "manager"):
		return RoleManager
	default:
		return RoleNone
	}
}

var _ SessionProvider = (*InMemoryProvider)(nil)
