package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"catering-backend/cache"
)

// duplicateWindow is how long a second submission from the same email is
// treated as a repeat of the first.
const duplicateWindow = 5 * time.Second

// DuplicateGuard absorbs rapid repeat order submissions, which in practice
// come from double-clicked submit buttons. A hit yields the order id of the
// original submission so the caller can return it instead of creating a
// second order.
type DuplicateGuard struct {
	store cache.Store
}

func NewDuplicateGuard(store cache.Store) *DuplicateGuard {
	return &DuplicateGuard{store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func guardKey(email string) string {
	return "order_guard:" + normalizeEmail(email)
}

// Check reports whether an order from this email was accepted within the
// window, and if so which one. Guard store failures count as "no duplicate":
// a broken cache must not block ordering.
func (g *DuplicateGuard) Check(ctx context.Context, email string) (int64, bool) {
	val, found, err := g.store.Get(ctx, guardKey(email))
	if err != nil || !found {
		return 0, false
	}
	orderID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return orderID, true
}

// Mark records a successful submission for the email.
func (g *DuplicateGuard) Mark(ctx context.Context, email string, orderID int64) {
	_ = g.store.Set(ctx, guardKey(email), strconv.FormatInt(orderID, 10), duplicateWindow)
}
