package news

import "context"

type Repository interface {
	ListPosts(ctx context.Context, filter ListFilter) ([]Post, int64, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	CreatePost(ctx context.Context, post *Post) error
	UpdatePost(ctx context.Context, post *Post) error
	DeletePost(ctx context.Context, id string) (*Post, error)
}
