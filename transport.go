package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// maxErrorBody bounds how much of a failed response body we inspect
	// for a user-facing message.
	maxErrorBody = 8 << 10

	defaultLoginPath = "/login"

	// RedirectParam carries the pre-failure location so a successful login
	// can return the user to where they were.
	RedirectParam = "redirectUrl"
)

// GuardTransport is the outbound request guard: an http.RoundTripper that
// attaches the bearer token to third-party requests and reacts to terminal
// failures.
//
// Requests to the configured own-backend origin pass through untouched so
// the token is never forwarded under a header contract that origin does not
// expect. Every other request is cloned with an Authorization header. After
// dispatch, failures are surfaced to the notifier, unauthorized failures
// invalidate the session and request navigation to the login view, and the
// original response or error is always handed back to the caller.
type GuardTransport struct {
	base      http.RoundTripper
	session   SessionInvalidator
	baseURL   string
	notifier  Notifier
	navigator Navigator
	logger    Logger
	loginPath string
}

// GuardOption customizes guard construction.
type GuardOption func(*GuardTransport)

// WithGuardBase overrides the underlying round tripper.
func WithGuardBase(base http.RoundTripper) GuardOption {
	return func(t *GuardTransport) {
		if base != nil {
			t.base = base
		}
	}
}

// WithGuardNotifier sets the UI notification sink.
func WithGuardNotifier(notifier Notifier) GuardOption {
	return func(t *GuardTransport) {
		if notifier != nil {
			t.notifier = notifier
		}
	}
}

// WithGuardNavigator sets the navigation sink.
func WithGuardNavigator(navigator Navigator) GuardOption {
	return func(t *GuardTransport) {
		if navigator != nil {
			t.navigator = navigator
		}
	}
}

// WithGuardLogger overrides the guard logger.
func WithGuardLogger(logger Logger) GuardOption {
	return func(t *GuardTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithGuardLoginPath overrides the path navigated to on unauthorized
// failures.
func WithGuardLoginPath(path string) GuardOption {
	return func(t *GuardTransport) {
		if path != "" {
			t.loginPath = path
		}
	}
}

// NewGuardTransport builds a guard around the session manager. baseURL is
// the own-backend origin that must never receive the bearer token through
// the third-party path.
func NewGuardTransport(session SessionInvalidator, baseURL string, opts ...GuardOption) *GuardTransport {
	t := &GuardTransport{
		base:      http.DefaultTransport,
		session:   session,
		baseURL:   baseURL,
		notifier:  NotifierFunc(nil),
		navigator: NavigatorFunc(nil),
		logger:    defLogger{},
		loginPath: defaultLoginPath,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

// RoundTrip implements http.RoundTripper.
func (t *GuardTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.ownBackend(req) {
		return t.base.RoundTrip(req)
	}

	out := req
	if token := t.session.Token(); token != "" {
		out = req.Clone(req.Context())
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		t.notifier.ShowMessage(ErrorMessage(err))
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.handleFailure(req, resp)
	}

	return resp, nil
}

func (t *GuardTransport) ownBackend(req *http.Request) bool {
	if t.baseURL == "" {
		return false
	}
	return strings.HasPrefix(req.URL.String(), t.baseURL)
}

func (t *GuardTransport) handleFailure(req *http.Request, resp *http.Response) {
	t.notifier.ShowMessage(t.extractMessage(resp))

	if resp.StatusCode != http.StatusUnauthorized {
		return
	}

	t.logger.Info("unauthorized response from %s, invalidating session", req.URL.Host)
	t.session.Logout(true)

	params := url.Values{}
	params.Set(RedirectParam, req.URL.RequestURI())
	t.navigator.NavigateTo(t.loginPath, params)
}

// extractMessage pulls a user-facing message out of an error response,
// restoring the body so the caller can still read it.
func (t *GuardTransport) extractMessage(resp *http.Response) string {
	var peeked []byte
	if resp.Body != nil {
		peeked, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		rest := resp.Body
		resp.Body = readCloser{
			Reader: io.MultiReader(bytes.NewReader(peeked), rest),
			Closer: rest,
		}
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(peeked, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	return fmt.Sprintf("Request failed with %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

type readCloser struct {
	io.Reader
	io.Closer
}

var _ http.RoundTripper = (*GuardTransport)(nil)
