package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached response.
type Key struct {
	// Endpoint is the request path relative to the API base, e.g. "/recipe/42".
	Endpoint string

	Query url.Values

	// UserID scopes personalised responses (liked flags). Empty for public reads.
	UserID string
}

// String builds a deterministic Redis key.
// Format: recipebook:endpoint:query1=val1:query2=val2:user=abc
func (k Key) String() string {
	parts := []string{"recipebook"}

	if endpoint := strings.Trim(k.Endpoint, "/"); endpoint != "" {
		parts = append(parts, endpoint)
	}

	if len(k.Query) > 0 {
		keys := make([]string, 0, len(k.Query))
		for key := range k.Query {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, strings.Join(k.Query[key], ",")))
		}
	}

	if k.UserID != "" {
		parts = append(parts, "user="+k.UserID)
	}

	return strings.Join(parts, ":")
}
