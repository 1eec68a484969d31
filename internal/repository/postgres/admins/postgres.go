package admins

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/admins"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: gormDB}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListAdmins(ctx context.Context, filter domain.ListFilter) ([]domain.AdminUser, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.AdminUser{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := db.Like(filter.Search)
		query = query.Where("email ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.AdminUser
	if err := db.Page(query.Order("email ASC"), filter.Limit, filter.Offset).Find(&items).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) GetAdmin(ctx context.Context, id string) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, db.StoreError(err, domain.ErrAdminNotFound, nil)
	}
	return &admin, nil
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.AdminUser{}).
		Where("lower(email) = lower(?)", email).
		Count(&count).Error
	if err != nil {
		return false, db.StoreError(err, nil, nil)
	}
	return count > 0, nil
}

func (r *PostgresRepository) CreateAdmin(ctx context.Context, admin *domain.AdminUser) error {
	err := r.db.WithContext(ctx).Create(admin).Error
	return db.StoreError(err, nil, domain.ErrEmailTaken)
}

func (r *PostgresRepository) UpdateAdmin(ctx context.Context, admin *domain.AdminUser) error {
	result := r.db.WithContext(ctx).
		Model(&domain.AdminUser{}).
		Where("id = ?", admin.ID).
		Updates(map[string]interface{}{
			"display_name": admin.DisplayName,
			"role":         admin.Role,
			"disabled":     admin.Disabled,
			"updated_at":   admin.UpdatedAt,
		})
	if result.Error != nil {
		return db.StoreError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAdmin(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.AdminUser{})
	return result.RowsAffected > 0, db.StoreError(result.Error, nil, nil)
}

func (r *PostgresRepository) CountActiveOwners(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.AdminUser{}).
		Where("role = ? AND disabled = ?", domain.RoleOwner, false).
		Count(&count).Error
	if err != nil {
		return 0, db.StoreError(err, nil, nil)
	}
	return count, nil
}
