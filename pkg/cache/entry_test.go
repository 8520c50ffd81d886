package cache

import (
	"testing"
	"time"
)

func TestEntryExpiry(t *testing.T) {
	fresh := &Entry{Expires: time.Now().Add(time.Minute)}
	if fresh.IsExpired() {
		t.Error("fresh entry reported as expired")
	}
	if fresh.TTL() <= 0 {
		t.Errorf("fresh entry TTL = %v, want > 0", fresh.TTL())
	}

	stale := &Entry{Expires: time.Now().Add(-time.Minute)}
	if !stale.IsExpired() {
		t.Error("stale entry not reported as expired")
	}
	if stale.TTL() != 0 {
		t.Errorf("stale entry TTL = %v, want 0", stale.TTL())
	}
}
