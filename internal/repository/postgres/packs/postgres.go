package packs

import (
	"context"

	"gorm.io/gorm"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/packs"
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
		classes: links.NewStore(gormDB, links.PackClasses),
	}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		return fn(NewPostgres(tx))
	})
}

func (r *PostgresRepository) ListPacks(ctx context.Context, filter domain.ListFilter) ([]domain.ClassPack, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.ClassPack{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.ClassPack
	if err := db.Page(query.Order("name ASC"), filter.Limit, filter.Offset).Find(&items).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) GetPack(ctx context.Context, id string) (*domain.ClassPack, error) {
	if !db.IsUUID(id) {
		return nil, domain.ErrPackNotFound
	}
	var pack domain.ClassPack
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pack).Error; err != nil {
		return nil, db.StoreError(err, domain.ErrPackNotFound, nil)
	}
	return &pack, nil
}

func (r *PostgresRepository) CreatePack(ctx context.Context, pack *domain.ClassPack) error {
	return db.StoreError(r.db.WithContext(ctx).Create(pack).Error, nil, nil)
}

// UpdatePack writes only the listed columns.
func (r *PostgresRepository) UpdatePack(ctx context.Context, pack *domain.ClassPack, columns []string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.ClassPack{}).
		Where("id = ?", pack.ID).
		Select(columns).
		Updates(pack)
	if result.Error != nil {
		return db.StoreError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPackNotFound
	}
	return nil
}

func (r *PostgresRepository) DeletePack(ctx context.Context, id string) (bool, error) {
	if !db.IsUUID(id) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ClassPack{})
	return result.RowsAffected > 0, db.StoreError(result.Error, nil, nil)
}

func (r *PostgresRepository) ClassNames(ctx context.Context, ids []string) (map[string]string, error) {
	return links.Names(ctx, r.db, "classes", "name", ids)
}

func (r *PostgresRepository) ClassPrices(ctx context.Context, ids []string) (map[string]float64, error) {
	result := make(map[string]float64, len(ids))
	ids = db.UUIDs(ids)
	if len(ids) == 0 {
		return result, nil
	}

	var rows []struct {
		ID    string
		Price float64
	}
	err := r.db.WithContext(ctx).
		Table("classes").
		Select("id, price").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, db.StoreError(err, nil, nil)
	}
	for _, row := range rows {
		result[row.ID] = row.Price
	}
	return result, nil
}

func (r *PostgresRepository) ClassLinks() relations.Store {
	return r.classes
}

func (r *PostgresRepository) ClassIDsByPackIDs(ctx context.Context, packIDs []string) (map[string][]string, error) {
	return r.classes.ChildIDsByParents(ctx, packIDs)
}
