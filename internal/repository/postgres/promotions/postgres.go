package promotions

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/promotions"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: gormDB}
}

func (r *PostgresRepository) ListPromotions(ctx context.Context, filter domain.ListFilter) ([]domain.Promotion, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Promotion{})
	if filter.RunningAt != nil {
		query = query.Where("is_active = ? AND starts_at <= ? AND ends_at > ?", true, *filter.RunningAt, *filter.RunningAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.Promotion
	if err := db.Page(query.Order("starts_at DESC"), filter.Limit, filter.Offset).Find(&items).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) GetPromotion(ctx context.Context, id string) (*domain.Promotion, error) {
	if !db.IsUUID(id) {
		return nil, domain.ErrPromotionNotFound
	}
	var promotion domain.Promotion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&promotion).Error; err != nil {
		return nil, db.StoreError(err, domain.ErrPromotionNotFound, nil)
	}
	return &promotion, nil
}

func (r *PostgresRepository) CreatePromotion(ctx context.Context, promotion *domain.Promotion) error {
	err := r.db.WithContext(ctx).Create(promotion).Error
	return db.StoreError(err, nil, domain.ErrCodeTaken)
}

func (r *PostgresRepository) UpdatePromotion(ctx context.Context, promotion *domain.Promotion) (bool, error) {
	if !db.IsUUID(promotion.ID) {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Promotion{}).
		Where("id = ?", promotion.ID).
		Updates(map[string]interface{}{
			"title":            promotion.Title,
			"description":      promotion.Description,
			"code":             promotion.Code,
			"discount_percent": promotion.DiscountPercent,
			"starts_at":        promotion.StartsAt,
			"ends_at":          promotion.EndsAt,
			"image_url":        promotion.ImageURL,
			"is_active":        promotion.IsActive,
			"updated_at":       promotion.UpdatedAt,
		})
	if result.Error != nil {
		return false, db.StoreError(result.Error, nil, domain.ErrCodeTaken)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) DeletePromotion(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Promotion{})
	return result.RowsAffected > 0, db.StoreError(result.Error, nil, nil)
}
