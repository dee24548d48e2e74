package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"catering-backend/config"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Sender delivers transactional email through the Brevo HTTP API. A zero API
// key disables sending; Send then returns nil so flows that email as a side
// effect keep working in development.
type Sender struct {
	apiKey      string
	senderName  string
	senderEmail string
	httpClient  *http.Client
	endpoint    string
}

func NewSender(cfg config.BrevoConfig) *Sender {
	return &Sender{
		apiKey:      cfg.APIKey,
		senderName:  cfg.SenderName,
		senderEmail: cfg.SenderEmail,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		endpoint:    brevoEndpoint,
	}
}

type brevoRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func (s *Sender) Send(ctx context.Context, toName, toEmail, subject, htmlBody string) error {
	if s.apiKey == "" {
		return nil
	}
	payload := brevoRequest{
		Sender:      brevoAddress{Name: s.senderName, Email: s.senderEmail},
		To:          []brevoAddress{{Name: toName, Email: toEmail}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("brevo responded %d: %s", resp.StatusCode, detail)
	}
	return nil
}
