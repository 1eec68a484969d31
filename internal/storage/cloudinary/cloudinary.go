// Package cloudinary stores media on Cloudinary.
package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"studio-admin/internal/storage"
	"studio-admin/pkg/logger"
)

const (
	uploadEndpoint = "https://api.cloudinary.com/v1_1/%s/%s/upload"
	deliveryHost   = "res.cloudinary.com"
)

type Storage struct {
	cld        *cloudinary.Cloudinary
	secret     string
	presignTTL time.Duration
	log        logger.Logger
}

func New(cloudinaryURL string, presignTTL time.Duration, log logger.Logger) (*Storage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	parsed, err := url.Parse(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: parse url: %w", err)
	}
	secret, _ := parsed.User.Password()
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &Storage{cld: cld, secret: secret, presignTTL: presignTTL, log: log}, nil
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID(key),
		ResourceType: resourceType(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary: upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: upload: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

func (s *Storage) Delete(ctx context.Context, urlsOrKeys []string) storage.DeleteResult {
	result := storage.DeleteResult{Failed: []string{}}
	for _, value := range urlsOrKeys {
		id, kind := parseAsset(value, s.cld.Config.Cloud.CloudName)
		if id == "" {
			result.Failed = append(result.Failed, value)
			continue
		}
		res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id, ResourceType: kind})
		if err != nil || res.Error.Message != "" {
			s.log.Warn("cloudinary: destroy failed", "public_id", id)
			result.Failed = append(result.Failed, value)
			continue
		}
		// "not found" means the asset is already gone
		if res.Result != "ok" && res.Result != "not found" {
			result.Failed = append(result.Failed, value)
			continue
		}
		result.Deleted++
	}
	return result
}

// PresignUpload returns signed form fields for a direct browser upload.
func (s *Storage) PresignUpload(ctx context.Context, key, contentType string) (*storage.PresignedUpload, error) {
	id := publicID(key)
	params, err := api.StructToParams(uploader.UploadParams{PublicID: id})
	if err != nil {
		return nil, fmt.Errorf("cloudinary: sign params: %w", err)
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params.Set("timestamp", timestamp)

	signature, err := api.SignParameters(params, s.secret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: sign: %w", err)
	}

	kind := resourceType(contentType)
	cloud := s.cld.Config.Cloud
	return &storage.PresignedUpload{
		Method: "POST",
		URL:    fmt.Sprintf(uploadEndpoint, cloud.CloudName, kind),
		Fields: map[string]string{
			"api_key":   cloud.APIKey,
			"public_id": id,
			"timestamp": timestamp,
			"signature": signature,
		},
		PublicURL: fmt.Sprintf("https://%s/%s/%s/upload/%s", deliveryHost, cloud.CloudName, kind, id),
		ExpiresAt: time.Now().UTC().Add(s.presignTTL),
	}, nil
}

func publicID(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}

func resourceType(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return "video"
	}
	return "image"
}

// parseAsset extracts the public id and resource type from a delivery URL
// such as https://res.cloudinary.com/demo/image/upload/v1712/studio/a.jpg.
// Plain keys are treated as image public ids. URLs outside the given cloud
// yield an empty id.
func parseAsset(value, cloudName string) (id, kind string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ""
	}
	if !strings.Contains(value, "://") {
		return publicID(strings.TrimPrefix(value, "/")), "image"
	}

	parsed, err := url.Parse(value)
	if err != nil || !strings.EqualFold(parsed.Host, deliveryHost) {
		return "", ""
	}
	var segments []string
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	// cloud / kind / upload / [version] / public id...
	if len(segments) < 4 || segments[0] != cloudName || segments[2] != "upload" {
		return "", ""
	}
	rest := segments[3:]
	if isVersion(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", ""
	}
	return publicID(strings.Join(rest, "/")), segments[1]
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	_, err := strconv.ParseInt(segment[1:], 10, 64)
	return err == nil
}
