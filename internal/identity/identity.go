// Package identity is the boundary to the external user-identity service.
package identity

import (
	"context"
	"errors"
)

var ErrIdentityNotFound = errors.New("identity not found")

type Record struct {
	UID         string
	Email       string
	DisplayName string
	Disabled    bool
	Claims      map[string]any
}

// Token is a verified caller identity.
type Token struct {
	UID    string
	Email  string
	Name   string
	Claims map[string]any
}

type Provider interface {
	CreateIdentity(ctx context.Context, id, email, secret, displayName string) (*Record, error)
	UpdateProfile(ctx context.Context, id, displayName string) error
	SetClaims(ctx context.Context, id string, claims map[string]any) error
	DisableIdentity(ctx context.Context, id string, disabled bool) error
	DeleteIdentity(ctx context.Context, id string) error
	LookupByEmail(ctx context.Context, email string) (*Record, error)
}

type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Token, error)
}
