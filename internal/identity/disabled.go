package identity

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("identity provider not configured")

type disabled struct{}

// Disabled is used when no identity project is configured, typically with
// AUTH_SKIP in local development.
func Disabled() interface {
	Provider
	Verifier
} {
	return disabled{}
}

func (disabled) CreateIdentity(context.Context, string, string, string, string) (*Record, error) {
	return nil, ErrNotConfigured
}

func (disabled) UpdateProfile(context.Context, string, string) error { return ErrNotConfigured }

func (disabled) SetClaims(context.Context, string, map[string]any) error { return ErrNotConfigured }

func (disabled) DisableIdentity(context.Context, string, bool) error { return ErrNotConfigured }

func (disabled) DeleteIdentity(context.Context, string) error { return ErrNotConfigured }

func (disabled) LookupByEmail(context.Context, string) (*Record, error) {
	return nil, ErrNotConfigured
}

func (disabled) VerifyToken(context.Context, string) (*Token, error) {
	return nil, ErrNotConfigured
}
