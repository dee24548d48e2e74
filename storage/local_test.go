package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalSaveAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l, err := NewLocal(dir, "/static/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	url, err := l.Save(ctx, "dish.png", "image/png", strings.NewReader("fake-png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/static/uploads/dish.png" {
		t.Errorf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "dish.png"))
	if err != nil || string(data) != "fake-png" {
		t.Errorf("stored file = %q, %v", data, err)
	}

	if err := l.Delete(ctx, "dish.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dish.png")); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}
	// Deleting again is not an error.
	if err := l.Delete(ctx, "dish.png"); err != nil {
		t.Errorf("second delete = %v", err)
	}
}

func TestLocalSaveStripsPath(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	l, _ := NewLocal(dir, "/static/uploads")

	url, err := l.Save(ctx, "../../etc/passwd", "image/png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Errorf("url leaks traversal: %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "passwd")); err != nil {
		t.Errorf("file not stored under upload dir: %v", err)
	}
}

func TestAllowedImageType(t *testing.T) {
	allowed := []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	for _, ct := range allowed {
		if !AllowedImageType(ct) {
			t.Errorf("%s should be allowed", ct)
		}
	}
	for _, ct := range []string{"text/html", "application/pdf", "image/svg+xml", ""} {
		if AllowedImageType(ct) {
			t.Errorf("%s should be rejected", ct)
		}
	}
}
