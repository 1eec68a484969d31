package media

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/media"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: gormDB}
}

func (r *PostgresRepository) EnqueueCleanup(ctx context.Context, items []domain.Cleanup) error {
	if len(items) == 0 {
		return nil
	}
	return db.StoreError(r.db.WithContext(ctx).Create(&items).Error, nil, nil)
}

func (r *PostgresRepository) DueCleanups(ctx context.Context, limit, maxAttempts int) ([]domain.Cleanup, error) {
	var items []domain.Cleanup
	err := r.db.WithContext(ctx).
		Where("attempts < ?", maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, db.StoreError(err, nil, nil)
	}
	return items, nil
}

func (r *PostgresRepository) DeleteCleanups(ctx context.Context, ids []string) error {
	ids = db.UUIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Cleanup{}).Error
	return db.StoreError(err, nil, nil)
}

func (r *PostgresRepository) RecordCleanupFailure(ctx context.Context, id, lastError string) error {
	if !db.IsUUID(id) {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Cleanup{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": lastError,
		}).Error
	return db.StoreError(err, nil, nil)
}

func (r *PostgresRepository) DropExhausted(ctx context.Context, maxAttempts int) (int64, error) {
	result := r.db.WithContext(ctx).Where("attempts >= ?", maxAttempts).Delete(&domain.Cleanup{})
	return result.RowsAffected, db.StoreError(result.Error, nil, nil)
}
