package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "k", "v", 5*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := m.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("Get = %q, %v; want v, true", v, ok)
	}

	now = now.Add(6 * time.Second)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("expired entry still readable")
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "k", "v", time.Minute)
	_ = m.Delete(ctx, "k")
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("deleted entry still readable")
	}
	// Deleting a missing key is fine.
	if err := m.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing = %v", err)
	}
}

func TestMemoryPrunesWhenFull(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for i := 0; i < maxEntries; i++ {
		_ = m.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Minute)
	}
	if len(m.entries) != maxEntries {
		t.Fatalf("entries = %d, want %d", len(m.entries), maxEntries)
	}
	_ = m.Set(ctx, "overflow", "v", time.Minute)
	if len(m.entries) != 1 {
		t.Errorf("entries after overflow = %d, want 1", len(m.entries))
	}
	if v, ok, _ := m.Get(ctx, "overflow"); !ok || v != "v" {
		t.Error("overflow entry should survive the prune")
	}
}
