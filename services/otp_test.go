package services

import (
	"context"
	"errors"
	"testing"
)

func TestOTPIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := NewOTPService(newFakeStore())

	code, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code length = %d, want 6", len(code))
	}

	if err := svc.Verify(ctx, "user@example.com", "000000"); !errors.Is(err, ErrOTPInvalid) {
		if code == "000000" {
			t.Skip("generated the guessed code")
		}
		t.Errorf("wrong code = %v, want ErrOTPInvalid", err)
	}
	if err := svc.Verify(ctx, "User@Example.com", code); err != nil {
		t.Errorf("correct code rejected: %v", err)
	}
	// Codes are single use.
	if err := svc.Verify(ctx, "user@example.com", code); !errors.Is(err, ErrOTPInvalid) {
		t.Errorf("reused code = %v, want ErrOTPInvalid", err)
	}
}

func TestOTPReissueReplaces(t *testing.T) {
	ctx := context.Background()
	svc := NewOTPService(newFakeStore())

	first, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first != second {
		if err := svc.Verify(ctx, "user@example.com", first); !errors.Is(err, ErrOTPInvalid) {
			t.Errorf("stale code = %v, want ErrOTPInvalid", err)
		}
	}
	if err := svc.Verify(ctx, "user@example.com", second); err != nil {
		t.Errorf("fresh code rejected: %v", err)
	}
}
