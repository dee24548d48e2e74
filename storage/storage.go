package storage

import (
	"context"
	"errors"
	"io"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Store saves uploaded images and returns a public URL for them.
type Store interface {
	// Save writes the file under name and returns the URL clients use to
	// fetch it.
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
	// Delete removes a previously saved file. Missing files are not an error.
	Delete(ctx context.Context, name string) error
}

// AllowedImageType reports whether the content type may be uploaded.
func AllowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}
