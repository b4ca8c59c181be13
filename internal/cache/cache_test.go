package cache

import (
	"testing"
	"time"
)

func newTestCache() *Cache {
	// long cleanup interval so tests control eviction themselves
	return New(30*time.Second, time.Hour)
}

func TestSetThenGet(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("buses:all", []string{"BUS-001"}, time.Minute)
	got, ok := c.Get("buses:all")
	if !ok {
		t.Fatal("expected a hit immediately after Set")
	}
	buses, ok := got.([]string)
	if !ok || len(buses) != 1 || buses[0] != "BUS-001" {
		t.Errorf("got %v, want [BUS-001]", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	if _, ok := c.Get("nope"); ok {
		t.Error("expected a miss for an absent key")
	}
}

func TestExpiredEntryIsEvicted(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("trips:2025-01-01", 42, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("trips:2025-01-01"); ok {
		t.Fatal("expected a miss after TTL elapsed")
	}
	// lazy eviction removed the entry itself
	if c.Len() != 0 {
		t.Errorf("expected entry to be evicted, cache holds %d entries", c.Len())
	}
}

func TestZeroTTLUsesDefault(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("routes:all", "v", 0)
	if _, ok := c.Get("routes:all"); !ok {
		t.Error("expected default TTL to keep the entry alive")
	}
}

func TestDelete(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("drivers:all", "v", time.Minute)
	c.Delete("drivers:all")
	if _, ok := c.Get("drivers:all"); ok {
		t.Error("expected a miss after Delete")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("trips:2025-01-01::::::", 1, time.Minute)
	c.Set("trips:2025-01-02::::::", 2, time.Minute)
	c.Set("tripwire", 3, time.Minute)
	c.Set("routes:all", 4, time.Minute)

	if n := c.InvalidatePrefix("trips:"); n != 2 {
		t.Errorf("invalidated %d keys, want 2", n)
	}
	if _, ok := c.Get("trips:2025-01-01::::::"); ok {
		t.Error("prefixed key survived invalidation")
	}
	if _, ok := c.Get("tripwire"); !ok {
		t.Error("non-matching key was removed; prefix match must be literal")
	}
	if _, ok := c.Get("routes:all"); !ok {
		t.Error("unrelated key was removed")
	}
}

func TestClearAndLen(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestCleanupSweepRemovesExpired(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("stale", 1, 5*time.Millisecond)
	c.Set("fresh", 2, time.Minute)
	time.Sleep(10 * time.Millisecond)

	c.deleteExpired()

	if c.Len() != 1 {
		t.Errorf("Len after sweep = %d, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("sweep removed an unexpired entry")
	}
}

func TestOverwriteWins(t *testing.T) {
	c := newTestCache()
	defer c.Stop()

	c.Set("k", "old", time.Minute)
	c.Set("k", "new", time.Minute)
	got, _ := c.Get("k")
	if got != "new" {
		t.Errorf("got %v, want the newer value", got)
	}
}
