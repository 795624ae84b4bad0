package cache

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLRUCacheEvictsOldest(t *testing.T) {
	var evicted []string
	c := NewLRUCache[int](2, time.Minute, WithEvictHook(func(key string, _ int, reason EvictReason) {
		if reason == EvictCapacity {
			evicted = append(evicted, key)
		}
	}))

	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a present")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted as least recently used")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("unexpected evictions: %v", evicted)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUCacheSlidingTTL(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](10, 10*time.Minute, WithClock[string](clk.now))

	c.Set("s", "v")
	clk.advance(8 * time.Minute)
	if _, ok := c.Get("s"); !ok {
		t.Fatalf("expected hit before ttl")
	}
	clk.advance(8 * time.Minute)
	if _, ok := c.Get("s"); !ok {
		t.Fatalf("expected hit, Get should have extended the ttl")
	}
	clk.advance(11 * time.Minute)
	if _, ok := c.Get("s"); ok {
		t.Fatalf("expected miss after idle ttl")
	}
}

func TestManagerSweep(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}
	c := NewLRUCache[int](10, time.Minute, WithClock[int](clk.now))
	c.Set("a", 1)
	c.Set("b", 2)
	clk.advance(2 * time.Minute)
	c.Set("c", 3)

	m := NewManager(time.Hour, nil)
	m.Register(c)
	if n := m.Sweep(); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if c.Size() != 1 {
		t.Fatalf("expected 1 left, got %d", c.Size())
	}
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	m := NewManager(time.Millisecond, nil)
	m.Register(NewLRUCache[int](1, time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("manager did not stop")
	}
}
