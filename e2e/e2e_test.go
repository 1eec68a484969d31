//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"gorm.io/gorm"
	"studio-admin/internal/config"
	"studio-admin/internal/db"
	classesdomain "studio-admin/internal/domain/classes"
	instructorsdomain "studio-admin/internal/domain/instructors"
	membershipsdomain "studio-admin/internal/domain/memberships"
	packsdomain "studio-admin/internal/domain/packs"
	"studio-admin/internal/identity"
	"studio-admin/internal/repository/inmemory"
	classesrepo "studio-admin/internal/repository/postgres/classes"
	instructorsrepo "studio-admin/internal/repository/postgres/instructors"
	membershipsrepo "studio-admin/internal/repository/postgres/memberships"
	packsrepo "studio-admin/internal/repository/postgres/packs"
	"studio-admin/internal/transport/httpserver"
	"studio-admin/internal/transport/httpserver/handler"
	"studio-admin/internal/transport/httpserver/middleware"
	"studio-admin/pkg/logger"
)

const ownerToken = "owner-token"

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	client *http.Client
}

type tokenVerifier struct{}

func (tokenVerifier) VerifyToken(ctx context.Context, token string) (*identity.Token, error) {
	if token != ownerToken {
		return nil, errors.New("unknown token")
	}
	return &identity.Token{UID: "owner-1", Email: "owner@studio.test", Claims: map[string]any{"role": "owner"}}, nil
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.Nop()
	cfg := config.Config{
		DB:          config.DBConfig{DSN: dsn},
		Auth:        config.AuthConfig{AdminClaim: "role"},
		CORSOrigins: []string{"*"},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(context.Background(), dbConn, "", log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	handlers := handler.New(handler.Services{
		Classes: classesdomain.NewServiceWithOptions(classesrepo.NewPostgres(dbConn), classesdomain.Options{
			Catalog: inmemory.NewCatalogCache(),
			Log:     log,
		}),
		Packs:       packsdomain.NewService(packsrepo.NewPostgres(dbConn)),
		Memberships: membershipsdomain.NewService(membershipsrepo.NewPostgres(dbConn)),
		Instructors: instructorsdomain.NewService(instructorsrepo.NewPostgres(dbConn)),
	}, log)

	auth := middleware.NewIdentityAuth(cfg.Auth, tokenVerifier{}, log)
	server := httptest.NewServer(httpserver.NewRouter(cfg, handlers, auth))

	return &testEnv{server: server, db: dbConn, client: &http.Client{Timeout: 5 * time.Second}}
}

func (e *testEnv) Close() {
	e.server.Close()
	_ = db.Close(e.db)
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE class_memberships, class_pack_classes, instructor_classes, class_packs, classes, memberships, instructors, promotions RESTART IDENTITY CASCADE",
	).Error
}

func (e *testEnv) request(t *testing.T, method, path, token string, payload interface{}) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, respBody
}

func (e *testEnv) mustJSON(t *testing.T, method, path string, payload interface{}, wantStatus int, dst interface{}) {
	t.Helper()
	status, body := e.request(t, method, path, ownerToken, payload)
	if status != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, wantStatus, status, string(body))
	}
	if dst != nil {
		if err := json.Unmarshal(body, dst); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}

type errorEnvelope struct {
	Error struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"error"`
}

type idResponse struct {
	ID string `json:"id"`
}

type draftResponse struct {
	ID         string `json:"id"`
	ResumeStep int    `json:"resume_step"`
	NextStep   string `json:"next_step"`
	Class      struct {
		InstructorName string   `json:"instructor_name"`
		MembershipIDs  []string `json:"membership_ids"`
		Status         string   `json:"status"`
	} `json:"class"`
}

type catalogResponse struct {
	Items []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
	Total int64 `json:"total"`
}

type packResponse struct {
	ID       string   `json:"id"`
	Price    float64  `json:"price"`
	ClassIDs []string `json:"class_ids"`
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	status, body := env.request(t, http.MethodGet, "/api/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, string(body))
	}

	status, body = env.request(t, http.MethodGet, "/api/classes", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, string(body))
	}
	var errResp errorEnvelope
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	status, body = env.request(t, http.MethodGet, "/api/catalog/classes", "", nil)
	if status != http.StatusOK {
		t.Fatalf("catalog must be public, got %d: %s", status, string(body))
	}
}

func TestE2EClassWizardFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	var instructor idResponse
	env.mustJSON(t, http.MethodPost, "/api/instructors", map[string]interface{}{
		"name":      "Ana Ruiz",
		"email":     "ana@studio.test",
		"styles":    []string{"salsa"},
		"is_active": true,
	}, http.StatusCreated, &instructor)

	var membership idResponse
	env.mustJSON(t, http.MethodPost, "/api/memberships", map[string]interface{}{
		"name":          "Monthly",
		"price":         60,
		"duration_days": 30,
		"is_active":     true,
	}, http.StatusCreated, &membership)

	status, body := env.request(t, http.MethodPost, "/api/classes/drafts/media", ownerToken, map[string]interface{}{
		"image_url": "https://cdn.studio.test/salsa.jpg",
		"video_url": "https://cdn.studio.test/salsa.mp4",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("media step without id must be rejected, got %d: %s", status, string(body))
	}

	var draft draftResponse
	env.mustJSON(t, http.MethodPost, "/api/classes/drafts/details", map[string]interface{}{
		"name":          "Salsa Basics",
		"description":   "Footwork and timing",
		"instructor_id": instructor.ID,
	}, http.StatusCreated, &draft)
	if draft.ResumeStep != 1 || draft.NextStep != "media" || draft.Class.InstructorName != "Ana Ruiz" {
		t.Fatalf("unexpected draft %+v", draft)
	}

	status, body = env.request(t, http.MethodPost, "/api/classes/"+draft.ID+"/activate", ownerToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("incomplete draft must not activate, got %d: %s", status, string(body))
	}

	env.mustJSON(t, http.MethodPost, "/api/classes/drafts/media", map[string]interface{}{
		"id":        draft.ID,
		"image_url": "https://cdn.studio.test/salsa.jpg",
		"video_url": "https://cdn.studio.test/salsa.mp4",
	}, http.StatusOK, &draft)
	env.mustJSON(t, http.MethodPost, "/api/classes/drafts/schedule", map[string]interface{}{
		"id": draft.ID,
		"schedule": []map[string]interface{}{
			{"weekday": 2, "start": "19:00", "duration_minutes": 60, "room": "A"},
		},
	}, http.StatusOK, &draft)
	env.mustJSON(t, http.MethodPost, "/api/classes/drafts/pricing", map[string]interface{}{
		"id":             draft.ID,
		"price":          25,
		"membership_ids": []string{membership.ID},
	}, http.StatusOK, &draft)
	if draft.ResumeStep != 4 || len(draft.Class.MembershipIDs) != 1 {
		t.Fatalf("expected completed draft with one membership, got %+v", draft)
	}

	var activated struct {
		IsActive bool `json:"is_active"`
	}
	env.mustJSON(t, http.MethodPost, "/api/classes/"+draft.ID+"/activate", nil, http.StatusOK, &activated)
	if !activated.IsActive {
		t.Fatalf("expected active class")
	}

	var catalog catalogResponse
	env.mustJSON(t, http.MethodGet, "/api/catalog/classes", nil, http.StatusOK, &catalog)
	if catalog.Total != 1 || catalog.Items[0].Name != "Salsa Basics" {
		t.Fatalf("unexpected catalog %+v", catalog)
	}

	status, body = env.request(t, http.MethodDelete, "/api/classes/"+draft.ID, ownerToken, nil)
	if status != http.StatusConflict {
		t.Fatalf("active class must not be deleted, got %d: %s", status, string(body))
	}

	var changed struct {
		Changed bool `json:"changed"`
	}
	env.mustJSON(t, http.MethodPut, "/api/classes/"+draft.ID+"/memberships", map[string]interface{}{
		"membership_ids": []string{membership.ID},
	}, http.StatusOK, &changed)
	if changed.Changed {
		t.Fatalf("same membership set must not report a change")
	}

	status, body = env.request(t, http.MethodPut, "/api/classes/"+draft.ID+"/memberships", ownerToken, map[string]interface{}{
		"membership_ids": []string{membership.ID, "00000000-0000-0000-0000-000000000099"},
	})
	var errResp errorEnvelope
	_ = json.Unmarshal(body, &errResp)
	if status != http.StatusBadRequest || errResp.Error.Field != "membership_ids" {
		t.Fatalf("unknown membership must be rejected, got %d: %s", status, string(body))
	}
}

func TestE2EPackPricing(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	var instructor idResponse
	env.mustJSON(t, http.MethodPost, "/api/instructors", map[string]interface{}{
		"name":  "Leo Park",
		"email": "leo@studio.test",
	}, http.StatusCreated, &instructor)

	classIDs := make([]string, 0, 2)
	for _, spec := range []struct {
		name  string
		price float64
	}{{"Tango", 10}, {"Bachata", 20}} {
		var draft draftResponse
		env.mustJSON(t, http.MethodPost, "/api/classes/drafts/details", map[string]interface{}{
			"name":          spec.name,
			"description":   spec.name + " class",
			"instructor_id": instructor.ID,
		}, http.StatusCreated, &draft)
		env.mustJSON(t, http.MethodPost, "/api/classes/drafts/pricing", map[string]interface{}{
			"id":    draft.ID,
			"price": spec.price,
		}, http.StatusOK, &draft)
		classIDs = append(classIDs, draft.ID)
	}

	var pack packResponse
	env.mustJSON(t, http.MethodPost, "/api/class-packs", map[string]interface{}{
		"name":             "Duo",
		"discount_enabled": true,
		"discount_percent": 25,
		"class_ids":        classIDs,
	}, http.StatusCreated, &pack)
	if pack.Price != 22.5 || len(pack.ClassIDs) != 2 {
		t.Fatalf("unexpected pack %+v", pack)
	}

	env.mustJSON(t, http.MethodPut, "/api/class-packs/"+pack.ID, map[string]interface{}{
		"name":             "Duo",
		"discount_enabled": true,
		"discount_percent": 50,
		"class_ids":        []string{classIDs[1], classIDs[0]},
	}, http.StatusOK, &pack)
	if pack.Price != 22.5 {
		t.Fatalf("unchanged class set must keep the stored price, got %.2f", pack.Price)
	}

	env.mustJSON(t, http.MethodPut, "/api/class-packs/"+pack.ID, map[string]interface{}{
		"name":             "Solo",
		"discount_enabled": true,
		"discount_percent": 50,
		"class_ids":        []string{classIDs[1]},
	}, http.StatusOK, &pack)
	if pack.Price != 10 {
		t.Fatalf("changed class set must recompute the price, got %.2f", pack.Price)
	}

	var preview struct {
		Price float64 `json:"price"`
	}
	env.mustJSON(t, http.MethodPost, "/api/class-packs/price-preview", map[string]interface{}{
		"unit_prices":      []interface{}{19.99, nil, 5.01},
		"discount_enabled": true,
		"discount_percent": 10,
	}, http.StatusOK, &preview)
	if preview.Price != 22.5 {
		t.Fatalf("unexpected preview %.2f", preview.Price)
	}

	status, _ := env.request(t, http.MethodDelete, "/api/class-packs/"+pack.ID, ownerToken, nil)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", status)
	}
	status, _ = env.request(t, http.MethodGet, "/api/class-packs/"+pack.ID, ownerToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
}
