package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studio-admin/internal/config"
	"studio-admin/internal/identity"
	"studio-admin/pkg/logger"
)

type fakeVerifier struct {
	tokens map[string]*identity.Token
}

func (v fakeVerifier) VerifyToken(ctx context.Context, token string) (*identity.Token, error) {
	verified, ok := v.tokens[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return verified, nil
}

func newTestAuth(skip bool) *IdentityAuth {
	verifier := fakeVerifier{tokens: map[string]*identity.Token{
		"admin-token":    {UID: "u-1", Email: "a@studio.test", Claims: map[string]any{"role": "admin"}},
		"customer-token": {UID: "u-2", Claims: map[string]any{}},
	}}
	return NewIdentityAuth(config.AuthConfig{
		AdminClaim:   "role",
		SkipAuth:     skip,
		MockUserID:   "mock",
		MockUserRole: "owner",
	}, verifier, logger.Nop())
}

func serve(auth *IdentityAuth, authorization string) (*httptest.ResponseRecorder, User) {
	var seen User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/classes", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	auth.Middleware(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestIdentityAuth(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
		userID string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, ""},
		{"no admin claim", "Bearer customer-token", http.StatusForbidden, ""},
		{"admin", "Bearer admin-token", http.StatusNoContent, "u-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, user := serve(newTestAuth(false), tc.header)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if user.ID != tc.userID {
				t.Fatalf("user = %q, want %q", user.ID, tc.userID)
			}
		})
	}
}

func TestIdentityAuthSkipUsesMockUser(t *testing.T) {
	rec, user := serve(newTestAuth(true), "")
	if rec.Code != http.StatusNoContent || user.ID != "mock" || user.Role != "owner" {
		t.Fatalf("unexpected result: %d %+v", rec.Code, user)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("owner")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/admins", nil)
	req = req.WithContext(WithUser(req.Context(), User{ID: "u", Role: "staff"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %d", rec.Code)
	}

	req = req.WithContext(WithUser(req.Context(), User{ID: "u", Role: "owner"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass, got %d", rec.Code)
	}
}
