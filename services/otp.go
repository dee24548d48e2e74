package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"catering-backend/cache"
)

const (
	otpTTL    = 10 * time.Minute
	otpDigits = 6
)

// OTPService implements passwordless login: a short-lived code is emailed to
// the customer and exchanged for a token. Codes are single-use.
type OTPService struct {
	store cache.Store
}

func NewOTPService(store cache.Store) *OTPService {
	return &OTPService{store: store}
}

func otpKey(email string) string { return "otp:" + normalizeEmail(email) }

// Issue generates and stores a fresh code for the email, replacing any
// earlier one, and returns it for delivery.
func (s *OTPService) Issue(ctx context.Context, email string) (string, error) {
	code, err := randomCode(otpDigits)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	if err := s.store.Set(ctx, otpKey(email), code, otpTTL); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Check validates the code without consuming it, for the intermediate
// verification step before the password is actually reset.
func (s *OTPService) Check(ctx context.Context, email, code string) error {
	stored, found, err := s.store.Get(ctx, otpKey(email))
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	if !found || stored != code {
		return ErrOTPInvalid
	}
	return nil
}

// Verify consumes the code. Wrong or expired codes return ErrOTPInvalid; the
// stored code survives a wrong guess until its TTL runs out.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	stored, found, err := s.store.Get(ctx, otpKey(email))
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	if !found || stored != code {
		return ErrOTPInvalid
	}
	_ = s.store.Delete(ctx, otpKey(email))
	return nil
}

func randomCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
