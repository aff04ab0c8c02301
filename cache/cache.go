// Package cache provides durable key-value storage for opaque strings and
// JSON-serialized structures. Values survive process restarts when backed by
// a persistent store (FileStore, RedisStore).
//
// The same store can hold raw token strings and structured blobs: callers
// pick GetString or GetJSON depending on whether the stored value requires
// JSON parsing. A corrupted JSON entry is reported as ErrNotFound rather
// than a parse failure, so a bad entry never crashes a caller.
package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key is absent from the store.
var ErrNotFound = errors.New("cache: key not found")

// Store holds string values by key.
type Store interface {
	// GetString returns the raw stored value. ErrNotFound when absent.
	GetString(ctx context.Context, key string) (string, error)
	// GetJSON decodes the stored value into dest. Absent keys and
	// malformed entries both yield ErrNotFound.
	GetJSON(ctx context.Context, key string, dest any) error
	// Set stores value under key. Strings are stored verbatim, anything
	// else is JSON-marshaled.
	Set(ctx context.Context, key string, value any) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Clear deletes every entry owned by the store.
	Clear(ctx context.Context) error
}

// Logger is the minimal logging surface the stores need.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (defLogger) Error(format string, args ...any) { fmt.Printf("[ERR] CACHE "+format+"\n", args...) }
func (defLogger) Info(format string, args ...any)  { fmt.Printf("[INF] CACHE "+format+"\n", args...) }
func (defLogger) Debug(format string, args ...any) { fmt.Printf("[DBG] CACHE "+format+"\n", args...) }

// IsNotFound reports whether err signals an absent (or unreadable) entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
