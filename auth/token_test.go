package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestCustomerTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 3600)

	token, err := m.GenerateCustomer(42, "c@example.com")
	if err != nil {
		t.Fatalf("GenerateCustomer: %v", err)
	}
	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.CustomerID != 42 || claims.Email != "c@example.com" || claims.Role != RoleCustomer {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAdminToken(t *testing.T) {
	m := NewManager("test-secret", 3600)
	token, err := m.GenerateAdmin("admin@example.com")
	if err != nil {
		t.Fatalf("GenerateAdmin: %v", err)
	}
	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Role != RoleAdmin || claims.CustomerID != 0 {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsBadTokens(t *testing.T) {
	m := NewManager("test-secret", 3600)
	token, _ := m.GenerateCustomer(1, "c@example.com")

	// Tampered payload.
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := m.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token = %v, want ErrInvalidToken", err)
	}

	// Wrong secret.
	other := NewManager("other-secret", 3600)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret = %v, want ErrInvalidToken", err)
	}

	// Expired.
	expired := NewManager("test-secret", -60)
	old, _ := expired.GenerateCustomer(1, "c@example.com")
	if _, err := expired.Validate(old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token = %v, want ErrInvalidToken", err)
	}

	if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token = %v, want ErrInvalidToken", err)
	}
}
