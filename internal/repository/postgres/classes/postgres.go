package classes

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/classes"
	"studio-admin/internal/domain/relations"
	"studio-admin/internal/repository/postgres/links"
)

type PostgresRepository struct {
	db          *gorm.DB
	memberships *links.Store
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{
		db:          gormDB,
		memberships: links.NewStore(gormDB, links.ClassMemberships),
	}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(NewPostgres(tx))
	})
}

func (r *PostgresRepository) CreateClass(ctx context.Context, class *domain.Class) error {
	err := r.db.WithContext(ctx).Create(class).Error
	return db.StoreError(err, nil, nil)
}

func (r *PostgresRepository) GetClass(ctx context.Context, id string) (*domain.Class, error) {
	if !db.IsUUID(id) {
		return nil, domain.ErrClassNotFound
	}
	var class domain.Class
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error
	if err != nil {
		return nil, db.StoreError(err, domain.ErrClassNotFound, nil)
	}
	return &class, nil
}

func (r *PostgresRepository) UpdateDraft(ctx context.Context, id string, columns []string, class *domain.Class) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Class{}).
		Where("id = ? AND is_active = ?", id, false).
		Select(columns).
		Updates(class)
	if result.Error != nil {
		return false, db.StoreError(result.Error, nil, nil)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	updates := map[string]interface{}{"is_active": active}
	if active {
		updates["is_completed"] = true
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Class{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return false, db.StoreError(result.Error, nil, nil)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) DeleteDraft(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, false).
		Delete(&domain.Class{})
	if result.Error != nil {
		return false, db.StoreError(result.Error, nil, nil)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ListClasses(ctx context.Context, filter domain.ListFilter) ([]domain.Class, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Class{})
	switch filter.Status {
	case domain.StatusDraft:
		query = query.Where("is_completed = ? AND is_active = ?", false, false)
	case domain.StatusActive:
		query = query.Where("is_active = ?", true)
	case domain.StatusInactive:
		query = query.Where("is_completed = ? AND is_active = ?", true, false)
	}
	if filter.Search != "" {
		pattern := db.Like(filter.Search)
		query = query.Where("name ILIKE ? OR instructor_name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.Class
	err := db.Page(query.Order("created_at DESC"), filter.Limit, filter.Offset).Find(&items).Error
	if err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]domain.Class, error) {
	var items []domain.Class
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, db.StoreError(err, nil, nil)
	}
	return items, nil
}

// RenameInLinks copies a class name into every join table that stores it.
func (r *PostgresRepository) RenameInLinks(ctx context.Context, classID, name string) error {
	if err := r.memberships.RenameParent(ctx, classID, name); err != nil {
		return err
	}
	if err := links.NewStore(r.db, links.PackClasses).RenameChild(ctx, classID, name); err != nil {
		return err
	}
	return links.NewStore(r.db, links.InstructorClasses).RenameChild(ctx, classID, name)
}

func (r *PostgresRepository) InstructorNames(ctx context.Context, ids []string) (map[string]string, error) {
	return links.Names(ctx, r.db, "instructors", "name", ids)
}

func (r *PostgresRepository) PromotionExists(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Table("promotions").Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, db.StoreError(err, nil, nil)
	}
	return count > 0, nil
}

func (r *PostgresRepository) MembershipNames(ctx context.Context, ids []string) (map[string]string, error) {
	return links.Names(ctx, r.db, "memberships", "name", ids)
}

func (r *PostgresRepository) MembershipLinks() relations.Store {
	return r.memberships
}

func (r *PostgresRepository) MembershipIDsByClassIDs(ctx context.Context, classIDs []string) (map[string][]string, error) {
	return r.memberships.ChildIDsByParents(ctx, classIDs)
}
