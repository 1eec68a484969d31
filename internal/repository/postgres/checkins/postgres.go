package checkins

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/checkins"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: gormDB}
}

func (r *PostgresRepository) ListCheckIns(ctx context.Context, filter domain.ListFilter) ([]domain.CheckIn, int64, error) {
	if filter.ClassID != "" && !db.IsUUID(filter.ClassID) {
		return []domain.CheckIn{}, 0, nil
	}

	query := r.db.WithContext(ctx).Model(&domain.CheckIn{})
	if filter.ClassID != "" {
		query = query.Where("class_id = ?", filter.ClassID)
	}
	if filter.From != nil {
		query = query.Where("checked_in_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("checked_in_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.CheckIn
	if err := db.Page(query.Order("checked_in_at DESC"), filter.Limit, filter.Offset).Find(&items).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) CreateCheckIn(ctx context.Context, checkIn *domain.CheckIn) error {
	return db.StoreError(r.db.WithContext(ctx).Create(checkIn).Error, nil, nil)
}

func (r *PostgresRepository) DeleteCheckIn(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.CheckIn{})
	return result.RowsAffected > 0, db.StoreError(result.Error, nil, nil)
}

func (r *PostgresRepository) ActiveClassName(ctx context.Context, classID string) (string, bool, error) {
	if !db.IsUUID(classID) {
		return "", false, nil
	}
	var row struct {
		Name string
	}
	err := r.db.WithContext(ctx).
		Table("classes").
		Select("name").
		Where("id = ? AND is_active = ?", classID, true).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, db.StoreError(err, nil, nil)
	}
	return row.Name, true, nil
}
