package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRUCache[string](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for absent key")
	}

	c.Set("a", "one")
	got, ok := c.Get("a")
	if !ok || got != "one" {
		t.Fatalf("Get(a) = %q, %v; want %q, true", got, ok, "one")
	}

	c.Set("a", "two")
	got, _ = c.Get("a")
	if got != "two" {
		t.Fatalf("Get(a) after overwrite = %q, want %q", got, "two")
	}
	if c.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", c.Size())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCache[int](3, time.Minute)

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	// Touch k0 so k1 becomes the eviction candidate.
	c.Get("k0")
	c.Set("k3", 3)

	if c.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", c.Size())
	}
	if _, ok := c.Get("k1"); ok {
		t.Fatal("expected least recently used key k1 to be evicted")
	}
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("expected recently used key k0 to survive")
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRUCache[int](4, -time.Second)

	c.Set("k", 1)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestLRUDeletePrefix(t *testing.T) {
	c := NewLRUCache[int](16, time.Minute)

	c.Set("alice:summary", 1)
	c.Set("alice:chart:2024", 2)
	c.Set("bob:summary", 3)

	removed := c.DeletePrefix("alice:")
	if removed != 2 {
		t.Fatalf("DeletePrefix removed %d, want 2", removed)
	}
	if _, ok := c.Get("alice:summary"); ok {
		t.Fatal("expected alice entries gone")
	}
	if _, ok := c.Get("bob:summary"); !ok {
		t.Fatal("expected bob entry to survive")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](16, 10*time.Millisecond)
	c.Set("k1", 1)
	c.Set("k2", 2)

	time.Sleep(20 * time.Millisecond)
	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("CleanExpired removed %d, want 2", removed)
	}
	if c.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", c.Size())
	}
}

func TestManagerCleanup(t *testing.T) {
	c := NewLRUCache[int](16, time.Millisecond)
	c.Set("k", 1)

	m := NewManager()
	m.Register(c)
	m.StartCleanup(5 * time.Millisecond)

	deadline := time.After(time.Second)
	for c.Size() > 0 {
		select {
		case <-deadline:
			t.Fatal("manager never cleaned expired entry")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	m.Stop()
}
