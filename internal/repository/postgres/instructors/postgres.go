package instructors

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/instructors"
	"studio-admin/internal/domain/relations"
	"studio-admin/internal/repository/postgres/links"
)

type PostgresRepository struct {
	db      *gorm.DB
	classes *links.Store
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      gormDB,
		classes: links.NewStore(gormDB, links.InstructorClasses),
	}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(NewPostgres(tx))
	})
}

func (r *PostgresRepository) ListInstructors(ctx context.Context, filter domain.ListFilter) ([]domain.Instructor, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Instructor{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Style != "" {
		query = query.Where("? = ANY(styles)", filter.Style)
	}
	if filter.Search != "" {
		pattern := db.Like(filter.Search)
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.Instructor
	if err := db.Page(query.Order("name ASC"), filter.Limit, filter.Offset).Find(&items).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) GetInstructor(ctx context.Context, id string) (*domain.Instructor, error) {
	if !db.IsUUID(id) {
		return nil, domain.ErrInstructorNotFound
	}
	var instructor domain.Instructor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&instructor).Error; err != nil {
		return nil, db.StoreError(err, domain.ErrInstructorNotFound, nil)
	}
	return &instructor, nil
}

func (r *PostgresRepository) CreateInstructor(ctx context.Context, instructor *domain.Instructor) error {
	err := r.db.WithContext(ctx).Create(instructor).Error
	return db.StoreError(err, nil, domain.ErrEmailTaken)
}

func (r *PostgresRepository) UpdateInstructor(ctx context.Context, instructor *domain.Instructor) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Instructor{}).
		Where("id = ?", instructor.ID).
		Updates(map[string]interface{}{
			"name":       instructor.Name,
			"email":      instructor.Email,
			"bio":        instructor.Bio,
			"photo_url":  instructor.PhotoURL,
			"styles":     instructor.Styles,
			"is_active":  instructor.IsActive,
			"updated_at": instructor.UpdatedAt,
		})
	if result.Error != nil {
		return db.StoreError(result.Error, nil, domain.ErrEmailTaken)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInstructorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteInstructor(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Instructor{})
	return result.RowsAffected > 0, db.StoreError(result.Error, nil, nil)
}

func (r *PostgresRepository) RenameEverywhere(ctx context.Context, instructorID, name string) error {
	err := r.db.WithContext(ctx).
		Table("classes").
		Where("instructor_id = ?", instructorID).
		Updates(map[string]interface{}{"instructor_name": name}).Error
	if err != nil {
		return db.StoreError(err, nil, nil)
	}
	return r.classes.RenameParent(ctx, instructorID, name)
}

func (r *PostgresRepository) ClassNames(ctx context.Context, ids []string) (map[string]string, error) {
	return links.Names(ctx, r.db, "classes", "name", ids)
}

func (r *PostgresRepository) ClassLinks() relations.Store {
	return r.classes
}
