// Package auth is the client-side authentication session core: it
// establishes, persists, refreshes, and broadcasts a user's authentication
// state from an opaque bearer token.
//
// Session lifecycle:
//   - NewSessionManager resumes any persisted session at construction: a
//     valid token publishes an authenticated status immediately and fetches
//     the user profile on the next tick; an absent or expired token is
//     purged and the default status stands.
//   - Login drives the provider exchange, persists the returned token, and
//     publishes status then profile synchronously chained. Logout resets to
//     the default state, broadcasting on the next tick so in-flight
//     observers never see a status flip mid-call-stack.
//
// Extension point:
//   - SessionProvider is the single seam between real and test backends.
//     InMemoryProvider is the reference implementation used in development.
//
// Outbound requests:
//   - GuardTransport wraps an http.RoundTripper, attaching the bearer token
//     to third-party requests (never to the configured own-backend origin)
//     and reacting to unauthorized responses by invalidating the session
//     and requesting navigation to the login view.
package auth
