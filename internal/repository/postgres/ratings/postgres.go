package ratings

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/ratings"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: gormDB}
}

func (r *PostgresRepository) ListRatings(ctx context.Context, filter domain.ListFilter) ([]domain.Rating, int64, error) {
	if filter.ClassID != "" && !db.IsUUID(filter.ClassID) {
		return []domain.Rating{}, 0, nil
	}

	query := r.db.WithContext(ctx).Model(&domain.Rating{})
	if filter.ClassID != "" {
		query = query.Where("class_id = ?", filter.ClassID)
	}
	if filter.MaxScore > 0 {
		query = query.Where("score <= ?", filter.MaxScore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.Rating
	if err := db.Page(query.Order("created_at DESC"), filter.Limit, filter.Offset).Find(&items).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) ScoreTotals(ctx context.Context, classID string) ([]domain.ScoreTotals, error) {
	if classID != "" && !db.IsUUID(classID) {
		return []domain.ScoreTotals{}, nil
	}

	query := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.class_id AS class_id, classes.name AS class_name, COUNT(*) AS count, COALESCE(SUM(ratings.score), 0) AS sum").
		Joins("JOIN classes ON classes.id = ratings.class_id").
		Group("ratings.class_id, classes.name").
		Order("classes.name ASC")
	if classID != "" {
		query = query.Where("ratings.class_id = ?", classID)
	}

	var rows []domain.ScoreTotals
	if err := query.Scan(&rows).Error; err != nil {
		return nil, db.StoreError(err, nil, nil)
	}
	return rows, nil
}

func (r *PostgresRepository) DeleteRating(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Rating{})
	return result.RowsAffected > 0, db.StoreError(result.Error, nil, nil)
}
