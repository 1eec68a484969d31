package news

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"studio-admin/internal/db"
	domain "studio-admin/internal/domain/news"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(gormDB *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: gormDB}
}

func (r *PostgresRepository) ListPosts(ctx context.Context, filter domain.ListFilter) ([]domain.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Post{})
	if filter.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}

	var items []domain.Post
	err := db.Page(query.Order("published_at DESC NULLS LAST").Order("created_at DESC"), filter.Limit, filter.Offset).Find(&items).Error
	if err != nil {
		return nil, 0, db.StoreError(err, nil, nil)
	}
	return items, total, nil
}

func (r *PostgresRepository) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if !db.IsUUID(id) {
		return nil, domain.ErrPostNotFound
	}
	var post domain.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, db.StoreError(err, domain.ErrPostNotFound, nil)
	}
	return &post, nil
}

func (r *PostgresRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	return db.StoreError(r.db.WithContext(ctx).Create(post).Error, nil, nil)
}

func (r *PostgresRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":        post.Title,
			"body":         post.Body,
			"image_url":    post.ImageURL,
			"is_published": post.IsPublished,
			"published_at": post.PublishedAt,
			"updated_at":   post.UpdatedAt,
		})
	if result.Error != nil {
		return db.StoreError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// DeletePost removes the post and returns the deleted row so the caller can
// discard its image.
func (r *PostgresRepository) DeletePost(ctx context.Context, id string) (*domain.Post, error) {
	if !db.IsUUID(id) {
		return nil, domain.ErrPostNotFound
	}
	var deleted []domain.Post
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&deleted)
	if result.Error != nil {
		return nil, db.StoreError(result.Error, nil, nil)
	}
	if len(deleted) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return &deleted[0], nil
}
