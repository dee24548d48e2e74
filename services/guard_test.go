package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-test TTL store with a controllable clock.
type fakeStore struct {
	mu      sync.Mutex
	now     time.Time
	values  map[string]string
	expires map[string]time.Time
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:     time.Unix(1000, 0),
		values:  map[string]string{},
		expires: map[string]time.Time{},
	}
}

func (f *fakeStore) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return "", false, errors.New("store down")
	}
	exp, ok := f.expires[key]
	if !ok || f.now.After(exp) {
		return "", false, nil
	}
	return f.values[key], true, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.expires[key] = f.now.Add(ttl)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	delete(f.expires, key)
	return nil
}

func TestDuplicateGuard(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	guard := NewDuplicateGuard(store)

	if _, dup := guard.Check(ctx, "a@example.com"); dup {
		t.Fatal("first check should not be a duplicate")
	}
	guard.Mark(ctx, "a@example.com", 41)

	if id, dup := guard.Check(ctx, "a@example.com"); !dup || id != 41 {
		t.Errorf("repeat within window = (%d, %v), want (41, true)", id, dup)
	}
	// Same address, different case and whitespace.
	if id, dup := guard.Check(ctx, "  A@Example.COM "); !dup || id != 41 {
		t.Errorf("normalized repeat = (%d, %v), want (41, true)", id, dup)
	}
	// A different customer is unaffected.
	if _, dup := guard.Check(ctx, "b@example.com"); dup {
		t.Error("other email flagged as duplicate")
	}

	store.advance(6 * time.Second)
	if _, dup := guard.Check(ctx, "a@example.com"); dup {
		t.Error("duplicate reported after the window passed")
	}

	// A later order replaces the remembered id.
	guard.Mark(ctx, "a@example.com", 52)
	if id, _ := guard.Check(ctx, "a@example.com"); id != 52 {
		t.Errorf("remembered id = %d, want 52", id)
	}
}

func TestDuplicateGuardStoreFailureOpen(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.failing = true
	guard := NewDuplicateGuard(store)

	guard.Mark(ctx, "a@example.com", 7)
	if _, dup := guard.Check(ctx, "a@example.com"); dup {
		t.Error("broken store should not block orders")
	}
}
