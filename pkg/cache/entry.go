// Package cache stores API responses in Redis so repeated detail and
// category reads skip the network.
package cache

import "time"

// Entry is a cached API response body.
type Entry struct {
	Data       []byte    `json:"data"`
	StatusCode int       `json:"status_code"`
	Expires    time.Time `json:"expires"`
	CachedAt   time.Time `json:"cached_at"`
}

func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration, or 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
