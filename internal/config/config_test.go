package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"studio-admin/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_SKIP", "true")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPPort != "8080" || cfg.Media.Driver != "s3" || cfg.Auth.AdminClaim != "role" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Redis.CatalogTTL != time.Minute || cfg.Jobs.MediaCleanupSchedule != "@every 10m" {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Redis, cfg.Jobs)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	t.Setenv("AUTH_SKIP", "false")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error without firebase project")
	}

	t.Setenv("AUTH_SKIP", "true")
	t.Setenv("MEDIA_DRIVER", "ftp")
	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error for unsupported media driver")
	}
}

func TestConfigFileIsFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.yaml")
	contents := "http_port: 9090\nMEDIA_DRIVER: cloudinary\nREDIS_ENABLED: true\nMEDIA_MAX_IMAGE_SIDE: 800\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Cleanup(func() { setFileValues(nil) })

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("AUTH_SKIP", "true")
	t.Setenv("MEDIA_DRIVER", "none")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPPort != "9090" || !cfg.Redis.Enabled || cfg.Media.MaxImageSide != 800 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Media.Driver != "none" {
		t.Fatalf("env must win over the file, got %q", cfg.Media.Driver)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.test, ,https://b.test ")
	got := getEnvList("CORS_ORIGINS", nil)
	if want := []string{"https://a.test", "https://b.test"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyEnvKeepsExisting(t *testing.T) {
	t.Setenv("STUDIO_TEST_EXISTING", "env")
	t.Cleanup(func() { _ = os.Unsetenv("STUDIO_TEST_NEW") })

	loaded, skipped, err := applyEnv(map[string]string{
		"STUDIO_TEST_EXISTING": "dotenv",
		"STUDIO_TEST_NEW":      "dotenv",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if loaded != 1 || skipped != 1 {
		t.Fatalf("loaded=%d skipped=%d", loaded, skipped)
	}
	if os.Getenv("STUDIO_TEST_EXISTING") != "env" || os.Getenv("STUDIO_TEST_NEW") != "dotenv" {
		t.Fatalf("unexpected env values")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "studio", SSLMode: "disable", TimeZone: "UTC"}
	want := "host=db user=u password=p dbname=studio port=5432 sslmode=disable TimeZone=UTC"
	if got := cfg.GetDSN(); got != want {
		t.Fatalf("got %q", got)
	}
	cfg.DSN = "postgres://x"
	if cfg.GetDSN() != "postgres://x" {
		t.Fatalf("explicit dsn should win")
	}
}
