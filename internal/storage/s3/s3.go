// Package s3 stores media in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"studio-admin/internal/storage"
	"studio-admin/pkg/logger"
)

type Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	PresignTTL    time.Duration
}

type Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	cfg       Config
	log       logger.Logger
}

func New(ctx context.Context, cfg Config, log logger.Logger) (*Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	cfg.PublicBaseURL = publicBaseURL(cfg)

	return &Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
		log:       log,
	}, nil
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3: put object: %w", err)
	}
	return s.cfg.PublicBaseURL + "/" + key, nil
}

func (s *Storage) Delete(ctx context.Context, urlsOrKeys []string) storage.DeleteResult {
	result := storage.DeleteResult{Failed: []string{}}
	for _, value := range urlsOrKeys {
		key := keyFromURL(value, s.cfg)
		if key == "" {
			result.Failed = append(result.Failed, value)
			continue
		}
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			s.log.Warn("s3: delete object failed", "key", key, "error", err.Error())
			result.Failed = append(result.Failed, value)
			continue
		}
		result.Deleted++
	}
	return result
}

func (s *Storage) PresignUpload(ctx context.Context, key, contentType string) (*storage.PresignedUpload, error) {
	request, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return nil, fmt.Errorf("s3: presign: %w", err)
	}

	headers := map[string]string{}
	for name, values := range request.SignedHeader {
		if strings.EqualFold(name, "host") || len(values) == 0 {
			continue
		}
		headers[http.CanonicalHeaderKey(name)] = values[0]
	}
	headers["Content-Type"] = contentType

	return &storage.PresignedUpload{
		Method:    request.Method,
		URL:       request.URL,
		Headers:   headers,
		PublicURL: s.cfg.PublicBaseURL + "/" + key,
		ExpiresAt: time.Now().UTC().Add(s.cfg.PresignTTL),
	}, nil
}

func publicBaseURL(cfg Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// keyFromURL maps a public URL back to its object key. Values that are not
// URLs are taken as keys. URLs on any host other than the public base, the
// bucket's virtual host or the configured endpoint yield "".
func keyFromURL(value string, cfg Config) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	base := publicBaseURL(cfg) + "/"
	if strings.HasPrefix(value, base) {
		return strings.TrimPrefix(value, base)
	}
	if !strings.Contains(value, "://") {
		return strings.TrimPrefix(value, "/")
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return ""
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	host := strings.ToLower(parsed.Host)

	if host == virtualHost(cfg) || host == cfg.Bucket+".s3.amazonaws.com" {
		return key
	}
	if cfg.Endpoint != "" {
		endpoint, err := url.Parse(cfg.Endpoint)
		if err == nil && strings.EqualFold(endpoint.Host, parsed.Host) && strings.HasPrefix(key, cfg.Bucket+"/") {
			return strings.TrimPrefix(key, cfg.Bucket+"/")
		}
	}
	return ""
}

func virtualHost(cfg Config) string {
	return strings.ToLower(fmt.Sprintf("%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region))
}
