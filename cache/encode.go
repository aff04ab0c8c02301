package cache

import (
	"encoding/json"
	"fmt"
)

// encodeValue turns a value into its stored representation. Strings pass
// through verbatim so opaque tokens are not JSON-wrapped.
func encodeValue(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("cache: marshal value: %w", err)
	}

	return string(data), nil
}

// decodeJSON parses a stored value into dest. Malformed entries are logged
// and collapsed into ErrNotFound so callers treat them as absent.
func decodeJSON(logger Logger, key, raw string, dest any) error {
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Error("discarding malformed entry %q: %v", key, err)
		return ErrNotFound
	}
	return nil
}
