package media

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"studio-admin/internal/storage"
	"studio-admin/pkg/logger"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	allowedFolders      = map[string]struct{}{
		"classes":     {},
		"instructors": {},
		"promotions":  {},
		"news":        {},
	}
)

type Config struct {
	RootFolder     string
	MaxImageSide   int
	MaxUploadBytes int64
}

type Service struct {
	repo    Repository
	storage storage.Storage
	cfg     Config
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, store storage.Storage, cfg Config, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		storage: store,
		cfg:     cfg,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// MaxUploadBytes reports the largest accepted upload, or 0 for no limit.
func (s *Service) MaxUploadBytes() int64 {
	return s.cfg.MaxUploadBytes
}

func (s *Service) Upload(ctx context.Context, input UploadInput) (*Uploaded, error) {
	if len(input.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(input.Data)) > s.cfg.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	key, err := s.key(input.Folder, input.Filename)
	if err != nil {
		return nil, err
	}

	contentType := detectContentType(input.Data, input.ContentType)
	if !isMedia(contentType) {
		return nil, ErrUnsupportedType
	}
	data, err := downscale(input.Data, contentType, s.cfg.MaxImageSide)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	s.log.Info("media: uploaded", "key", key, "bytes", len(data), "content_type", contentType)

	return &Uploaded{URL: url, Key: key, ContentType: contentType, Size: len(data)}, nil
}

// Presign issues a direct-upload target for files too large to proxy,
// typically videos.
func (s *Service) Presign(ctx context.Context, folder, filename, contentType string) (*storage.PresignedUpload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !isMedia(contentType) {
		return nil, ErrUnsupportedType
	}
	key, err := s.key(folder, filename)
	if err != nil {
		return nil, err
	}
	return s.storage.PresignUpload(ctx, key, contentType)
}

// Discard deletes blobs that are no longer referenced. Failures are queued
// for the cleanup job and returned; they never fail the caller.
func (s *Service) Discard(ctx context.Context, urls []string) []string {
	urls = compact(urls)
	if len(urls) == 0 {
		return []string{}
	}

	ctx = context.WithoutCancel(ctx)
	result := s.storage.Delete(ctx, urls)
	if result.FailedCount() == 0 {
		return []string{}
	}

	s.log.Warn("media: delete incomplete", "deleted", result.Deleted, "failed", result.FailedCount())
	items := make([]Cleanup, 0, len(result.Failed))
	for _, url := range result.Failed {
		items = append(items, Cleanup{ID: uuid.NewString(), URL: url, Attempts: 1, LastError: "delete failed"})
	}
	if err := s.repo.EnqueueCleanup(ctx, items); err != nil {
		s.log.InternalError("media: enqueue cleanup failed", err, "count", len(items))
	}
	return result.Failed
}

// Delete removes blobs on explicit request and reports the counts.
func (s *Service) Delete(ctx context.Context, urls []string) (storage.DeleteResult, error) {
	urls = compact(urls)
	if len(urls) == 0 {
		return storage.DeleteResult{}, ErrNoURLs
	}
	return s.storage.Delete(ctx, urls), nil
}

// RetryCleanups works through the cleanup queue once.
func (s *Service) RetryCleanups(ctx context.Context, batch, maxAttempts int) (RetryResult, error) {
	var result RetryResult

	dropped, err := s.repo.DropExhausted(ctx, maxAttempts)
	if err != nil {
		return result, err
	}
	result.Dropped = int(dropped)

	items, err := s.repo.DueCleanups(ctx, batch, maxAttempts)
	if err != nil {
		return result, err
	}
	if len(items) == 0 {
		return result, nil
	}

	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.URL)
	}
	deleteResult := s.storage.Delete(ctx, urls)

	failed := make(map[string]struct{}, len(deleteResult.Failed))
	for _, url := range deleteResult.Failed {
		failed[url] = struct{}{}
	}

	done := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := failed[item.URL]; ok {
			result.Failed++
			if err := s.repo.RecordCleanupFailure(ctx, item.ID, "delete failed"); err != nil {
				return result, err
			}
			continue
		}
		done = append(done, item.ID)
	}
	result.Deleted = len(done)
	if err := s.repo.DeleteCleanups(ctx, done); err != nil {
		return result, err
	}
	return result, nil
}

// key builds <root>/<folder>/<yyyymmdd>-<uuid>-<safe name>.
func (s *Service) key(folder, filename string) (string, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if _, ok := allowedFolders[folder]; !ok {
		return "", ErrFolderInvalid
	}
	name := unsafeFilenameChars.ReplaceAllString(path.Base(strings.TrimSpace(filename)), "_")
	if name == "" || name == "." || name == "_" {
		name = "file"
	}
	key := fmt.Sprintf("%s/%s-%s-%s", folder, s.now().Format("20060102"), uuid.NewString(), name)
	if root := strings.Trim(s.cfg.RootFolder, "/"); root != "" {
		key = root + "/" + key
	}
	return key, nil
}

func compact(urls []string) []string {
	result := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		result = append(result, url)
	}
	return result
}
