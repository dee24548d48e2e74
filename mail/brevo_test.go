package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catering-backend/config"
)

func TestSenderPostsToBrevo(t *testing.T) {
	var got brevoRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewSender(config.BrevoConfig{
		APIKey:      "key-123",
		SenderName:  "Catering Team",
		SenderEmail: "orders@example.com",
	})
	s.endpoint = srv.URL

	err := s.Send(context.Background(), "Meera", "meera@example.com", "Hello", "<p>hi</p>")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotKey != "key-123" {
		t.Errorf("api-key = %q", gotKey)
	}
	if got.Subject != "Hello" || got.HTMLContent != "<p>hi</p>" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if len(got.To) != 1 || got.To[0].Email != "meera@example.com" {
		t.Errorf("unexpected recipient: %+v", got.To)
	}
	if got.Sender.Email != "orders@example.com" {
		t.Errorf("unexpected sender: %+v", got.Sender)
	}
}

func TestSenderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewSender(config.BrevoConfig{APIKey: "bad", SenderEmail: "orders@example.com"})
	s.endpoint = srv.URL
	if err := s.Send(context.Background(), "", "x@example.com", "s", "b"); err == nil {
		t.Error("expected error for non-2xx response")
	}
}

func TestSenderDisabledWithoutKey(t *testing.T) {
	s := NewSender(config.BrevoConfig{})
	if err := s.Send(context.Background(), "", "x@example.com", "s", "b"); err != nil {
		t.Errorf("disabled sender should be a no-op, got %v", err)
	}
}
