// Package storage is the boundary to object storage for media blobs.
package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotConfigured = errors.New("media storage is not configured")

type DeleteResult struct {
	Deleted int
	Failed  []string
}

func (r DeleteResult) FailedCount() int {
	return len(r.Failed)
}

// PresignedUpload lets a client upload a large file directly. Fields are
// form fields for POST-style uploads; Headers must be sent with PUT-style
// uploads.
type PresignedUpload struct {
	Method    string            `json:"method"`
	URL       string            `json:"url"`
	Fields    map[string]string `json:"fields,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	PublicURL string            `json:"public_url"`
	ExpiresAt time.Time         `json:"expires_at"`
}

type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete accepts public URLs or raw keys and never stops at the first
	// failure.
	Delete(ctx context.Context, urlsOrKeys []string) DeleteResult
	PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error)
}

type disabled struct{}

// Disabled is used when no media driver is configured.
func Disabled() Storage { return disabled{} }

func (disabled) Upload(context.Context, string, []byte, string) (string, error) {
	return "", ErrNotConfigured
}

func (disabled) Delete(_ context.Context, urlsOrKeys []string) DeleteResult {
	return DeleteResult{Failed: append([]string{}, urlsOrKeys...)}
}

func (disabled) PresignUpload(context.Context, string, string) (*PresignedUpload, error) {
	return nil, ErrNotConfigured
}
