package news

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Post, int64, error) {
	return s.repo.ListPosts(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetPost(ctx, id)
}

func (s *Service) Create(ctx context.Context, input Input) (*Post, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}
	post := Post{
		ID:       uuid.NewString(),
		Title:    input.Title,
		Body:     input.Body,
		ImageURL: input.ImageURL,
	}
	if err := s.repo.CreatePost(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Service) Update(ctx context.Context, id string, input Input) (*Post, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Title = input.Title
	post.Body = input.Body
	post.ImageURL = input.ImageURL
	post.UpdatedAt = s.now()
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// SetPublished toggles visibility. published_at records the first
// publication and is kept when a post is unpublished and published again.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*Post, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.IsPublished = published
	if published && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
	post.UpdatedAt = s.now()
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete returns the removed post so the caller can discard its image.
func (s *Service) Delete(ctx context.Context, id string) (*Post, error) {
	return s.repo.DeletePost(ctx, id)
}

func normalize(input Input) (Input, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if input.Title == "" {
		return input, ErrTitleRequired
	}
	return input, nil
}
