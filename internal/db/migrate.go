package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gorm.io/gorm"
	"studio-admin/pkg/logger"
)

const (
	migrationsDirName = "migrations"
	// migrationLockKey serializes migrations across replicas starting at once.
	migrationLockKey = 72_410_001
)

// Migrate applies every *.sql file in dir that is not yet recorded in
// schema_migrations, in lexical order, one transaction per file. An empty dir
// is looked up by walking up from the working directory.
func Migrate(ctx context.Context, gormDB *gorm.DB, dir string, log logger.Logger) error {
	if dir == "" {
		found, ok := findMigrationsDir(migrationsDirName)
		if !ok {
			log.Warn("db: migrations directory not found, skipping")
			return nil
		}
		dir = found
	}

	files, err := migrationFiles(dir)
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrationLockKey).Error; err != nil {
			return fmt.Errorf("migration lock: %w", err)
		}
		defer conn.Exec("SELECT pg_advisory_unlock(?)", migrationLockKey)

		if err := conn.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`).Error; err != nil {
			return fmt.Errorf("schema_migrations: %w", err)
		}

		var applied []string
		if err := conn.Raw("SELECT filename FROM schema_migrations").Scan(&applied).Error; err != nil {
			return fmt.Errorf("list applied migrations: %w", err)
		}

		pending := 0
		for _, name := range files {
			if slices.Contains(applied, name) {
				continue
			}
			if err := applyMigration(conn, filepath.Join(dir, name), name); err != nil {
				return err
			}
			pending++
			log.Info("db: migration applied", "file", name)
		}
		log.Info("db: schema up to date", "applied", pending, "total", len(files))
		return nil
	})
}

func applyMigration(conn *gorm.DB, path, name string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sql := strings.TrimSpace(string(contents))

	return conn.Transaction(func(tx *gorm.DB) error {
		if sql != "" {
			if err := tx.Exec(sql).Error; err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}
		return tx.Exec("INSERT INTO schema_migrations (filename) VALUES (?)", name).Error
	})
}

func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

func findMigrationsDir(dirName string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, dirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
