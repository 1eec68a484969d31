package memberships

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/memberships"
	"studio-admin/internal/repository/postgres/links"
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

func (r *PostgresRepository) ListMemberships(ctx context.Context, filter domain.ListFilter) ([]domain.Membership, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Membership{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", db.Like(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.Membership
	if err := db.Page(query.Order("name ASC"), filter.Limit, filter.Offset).Find(&items).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) GetMembership(ctx context.Context, id string) (*domain.Membership, error) {
	if !db.IsUUID(id) {
		return nil, domain.ErrMembershipNotFound
	}
	var membership domain.Membership
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&membership).Error; err != nil {
		return nil, db.StoreError(err, domain.ErrMembershipNotFound, nil)
	}
	return &membership, nil
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, membership *domain.Membership) error {
	return db.StoreError(r.db.WithContext(ctx).Create(membership).Error, nil, nil)
}

func (r *PostgresRepository) UpdateMembership(ctx context.Context, membership *domain.Membership) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Membership{}).
		Where("id = ?", membership.ID).
		Updates(map[string]interface{}{
			"name":          membership.Name,
			"description":   membership.Description,
			"price":         membership.Price,
			"duration_days": membership.DurationDays,
			"class_limit":   membership.ClassLimit,
			"is_active":     membership.IsActive,
			"updated_at":    membership.UpdatedAt,
		})
	if result.Error != nil {
		return db.StoreError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMembership(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Membership{})
	return result.RowsAffected > 0, db.StoreError(result.Error, nil, nil)
}

func (r *PostgresRepository) RenameInLinks(ctx context.Context, membershipID, name string) error {
	return links.NewStore(r.db, links.ClassMemberships).RenameChild(ctx, membershipID, name)
}
