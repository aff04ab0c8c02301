package auth

import (
	stderrors "errors"
	"strings"

	"github.com/goliatone/go-errors"
)

// UnknownError is the fallback message when a failure carries no usable text.
const UnknownError = "An unknown error has occurred."

// Text codes keep error identities stable across message rewording.
const (
	TextCodeInvalidCreds   = "INVALID_CREDENTIALS"
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	TextCodeTokenExpired   = "TOKEN_EXPIRED"
	TextCodeProfileFetch   = "PROFILE_FETCH_FAILED"
	TextCodeTokenStorage   = "TOKEN_STORAGE_FAILED"
)

// ErrInvalidCredentials is returned when the provider rejects a login.
var ErrInvalidCredentials = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a bearer token cannot be decoded.
var ErrTokenMalformed = errors.New("unable to decode authentication token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when decoded claims are past their expiry.
var ErrTokenExpired = errors.New("authentication token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrProfileFetch is returned when the user lookup fails after a session
// became authenticated.
var ErrProfileFetch = errors.New("unable to load the current user profile", errors.CategoryOperation).
	WithTextCode(TextCodeProfileFetch)

// ErrTokenStorage flags an unreadable persisted token. Reads treat it as
// "no token" (fail safe to unauthenticated), so it is non-fatal on the
// resume path.
var ErrTokenStorage = errors.New("unable to access the persisted token", errors.CategoryInternal).
	WithTextCode(TextCodeTokenStorage)

// TransformError normalizes any login-pipeline failure into a single
// structured shape carrying a human-readable message.
func TransformError(err error) error {
	if err == nil {
		return nil
	}

	var richErr *errors.Error
	if stderrors.As(err, &richErr) {
		return richErr
	}

	message := err.Error()
	if message == "" {
		message = UnknownError
	}

	return errors.Wrap(err, errors.CategoryAuth, message)
}

// ErrorMessage extracts the user-facing text from an error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var richErr *errors.Error
	if stderrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return UnknownError
}

// IsTokenExpiredError will check for expired tokens.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if stderrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedTokenError will check for undecodable tokens.
func IsMalformedTokenError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if stderrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed")
}
