package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"catering-backend/auth"
	"catering-backend/cache"
	"catering-backend/config"
	"catering-backend/mail"
	"catering-backend/notify"
	"catering-backend/realtime"
	"catering-backend/services"
	"catering-backend/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.HTTP.Port = "0"
	cfg.HTTP.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.HTTP.MaxUploadBytes = 1 << 20
	cfg.Admin.Username = "admin@example.com"
	cfg.Admin.Password = "s3cret"
	cfg.Admin.Email = "admin@example.com"
	cfg.Storage.LocalDir = t.TempDir()
	cfg.Storage.PublicURL = "/static/uploads"

	files, err := storage.NewLocal(cfg.Storage.LocalDir, cfg.Storage.PublicURL)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	store := cache.NewMemory()
	hub := realtime.NewHub()
	return NewServer(
		cfg,
		auth.NewManager("test-secret", 3600),
		hub,
		notify.New(hub, nil),
		mail.NewSender(cfg.Brevo),
		services.NewDuplicateGuard(store),
		services.NewOTPService(store),
		services.NewPaymentGateway("", ""),
		files,
	)
}

func TestAdminLogin(t *testing.T) {
	s := testServer(t)
	r := s.Router()

	do := func(username, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(gin.H{"username": username, "password": password})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do("admin@example.com", "s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("valid login = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("no token in response: %s", w.Body.String())
	}
	claims, err := s.tokens.Validate(resp.Token)
	if err != nil || claims.Role != auth.RoleAdmin {
		t.Errorf("token does not carry admin role: %+v, %v", claims, err)
	}

	if w := do("admin@example.com", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password = %d, want 401", w.Code)
	}
	if w := do("other@example.com", "s3cret"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong username = %d, want 401", w.Code)
	}
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	s := testServer(t)
	s.cfg.Admin.Password = ""
	r := s.Router()

	body, _ := json.Marshal(gin.H{"username": "admin@example.com", "password": ""})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code == http.StatusOK {
		t.Error("login succeeded with no admin password configured")
	}
}

func TestAuthRequired(t *testing.T) {
	s := testServer(t)
	r := s.Router()

	get := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/inquiries", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := get(""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", w.Code)
	}
	if w := get("garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token = %d, want 401", w.Code)
	}
	customerToken, _ := s.tokens.GenerateCustomer(1, "c@example.com")
	if w := get(customerToken); w.Code != http.StatusForbidden {
		t.Errorf("customer token on admin route = %d, want 403", w.Code)
	}
}

func TestUploadRejectsWrongType(t *testing.T) {
	s := testServer(t)
	r := s.Router()
	token, _ := s.tokens.GenerateAdmin("admin@example.com")

	var buf bytes.Buffer
	buf.WriteString("--boundary\r\n")
	buf.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"x.html\"\r\n")
	buf.WriteString("Content-Type: text/html\r\n\r\n")
	buf.WriteString("<html></html>\r\n--boundary--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/image", &buf)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=boundary")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("html upload = %d, want 400", w.Code)
	}
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	r := s.Router()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}
}
