package minio

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"discord-backend/internal/config"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const tmpPrefix = "tmp/"

var (
	ErrUnsupportedType = errors.New("only images and PDF files are allowed")
	ErrFileTooLarge    = errors.New("file too large")
	ErrForeignURL      = errors.New("file url does not belong to this storage")
)

// Storage is the attachment store used by uploads and message creation.
type Storage interface {
	UploadTmp(ctx context.Context, file *multipart.FileHeader) (*UploadedFile, error)
	ConfirmURL(ctx context.Context, fileURL string) (string, error)
	DeleteTmpFilesOlderThan(ctx context.Context, maxAge time.Duration) error
	Ping(ctx context.Context) error
}

type MinioProvider struct {
	client    *minio.Client
	bucket    string
	maxSize   int64
	logger    *zap.Logger
	publicURL string
}

func NewMinioProvider(cfg *config.Config, logger *zap.Logger) (*MinioProvider, error) {
	endpoint := cfg.MinioURL
	secure := false
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	logger.Info("Initializing MinIO", zap.String("endpoint", endpoint), zap.Bool("secure", secure))

	tr := &http.Transport{
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}
	tr.MaxIdleConnsPerHost = 256

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.MinioUser, cfg.MinioPassword, ""),
		Secure:    secure,
		Transport: tr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	publicURL := strings.TrimSuffix(cfg.MinioPublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("http://%s/%s", endpoint, cfg.MinioBucket)
	}

	provider := &MinioProvider{
		client:    client,
		bucket:    cfg.MinioBucket,
		maxSize:   cfg.MaxFileSize,
		logger:    logger,
		publicURL: publicURL,
	}

	if err := provider.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	return provider, nil
}

func (m *MinioProvider) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		m.logger.Info("Created MinIO bucket", zap.String("bucket", m.bucket))
	}

	if err := m.setBucketPolicy(ctx); err != nil {
		m.logger.Warn("Failed to set bucket policy", zap.Error(err))
	}

	return nil
}

func (m *MinioProvider) setBucketPolicy(ctx context.Context) error {
	policy := `{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Sid": "PublicReadGetObject",
				"Effect": "Allow",
				"Principal": "*",
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::` + m.bucket + `/*"]
			}
		]
	}`
	return m.client.SetBucketPolicy(ctx, m.bucket, policy)
}

func (m *MinioProvider) Ping(ctx context.Context) error {
	_, err := m.client.BucketExists(ctx, m.bucket)
	return err
}

// UploadTmp stores an image or PDF under tmp/. It becomes permanent once ConfirmURL is called.
func (m *MinioProvider) UploadTmp(ctx context.Context, file *multipart.FileHeader) (*UploadedFile, error) {
	if err := CheckSize(file.Size, m.maxSize); err != nil {
		return nil, err
	}

	contentType, ok := DetectContentType(filepath.Ext(file.Filename))
	if !ok {
		return nil, ErrUnsupportedType
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	objectName := tmpPrefix + GenerateObjectName(file.Filename)

	_, err = m.client.PutObject(ctx, m.bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	m.logger.Info("File uploaded to tmp",
		zap.String("filename", file.Filename),
		zap.String("object_name", objectName),
		zap.String("size", humanize.IBytes(uint64(file.Size))),
	)

	return &UploadedFile{
		Name:        file.Filename,
		URL:         m.publicURL + "/" + objectName,
		Size:        file.Size,
		ContentType: contentType,
		ObjectName:  objectName,
	}, nil
}

// ConfirmURL moves a tmp object referenced by fileURL to its permanent key and
// returns the permanent URL. URLs already pointing at permanent objects are returned unchanged.
func (m *MinioProvider) ConfirmURL(ctx context.Context, fileURL string) (string, error) {
	objectName, ok := m.objectNameFromURL(fileURL)
	if !ok {
		return "", ErrForeignURL
	}
	if !strings.HasPrefix(objectName, tmpPrefix) {
		return fileURL, nil
	}

	permanent, err := m.confirmTmpObject(ctx, objectName)
	if err != nil {
		return "", err
	}
	return m.publicURL + "/" + permanent, nil
}

func (m *MinioProvider) objectNameFromURL(fileURL string) (string, bool) {
	prefix := m.publicURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(fileURL, prefix)
	return name, name != "" && !strings.Contains(name, "..")
}

func (m *MinioProvider) confirmTmpObject(ctx context.Context, tmpObjectName string) (string, error) {
	permanentObjectName := strings.TrimPrefix(tmpObjectName, tmpPrefix)

	dest := minio.CopyDestOptions{
		Bucket: m.bucket,
		Object: permanentObjectName,
	}
	srcOpts := minio.CopySrcOptions{
		Bucket: m.bucket,
		Object: tmpObjectName,
	}

	if _, err := m.client.CopyObject(ctx, dest, srcOpts); err != nil {
		return "", fmt.Errorf("failed to copy object: %w", err)
	}

	if err := m.deleteFile(ctx, tmpObjectName); err != nil {
		m.logger.Warn("Failed to delete tmp file", zap.Error(err))
	}

	m.logger.Info("Confirmed tmp file",
		zap.String("tmp_object", tmpObjectName),
		zap.String("permanent_object", permanentObjectName),
	)

	return permanentObjectName, nil
}

func (m *MinioProvider) DeleteTmpFilesOlderThan(ctx context.Context, maxAge time.Duration) error {
	objectsCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    tmpPrefix,
		Recursive: true,
	})

	removed := 0
	for object := range objectsCh {
		if object.Err != nil {
			return object.Err
		}

		if time.Since(object.LastModified) <= maxAge {
			continue
		}
		if err := m.deleteFile(ctx, object.Key); err != nil {
			m.logger.Warn("Failed to delete old tmp file", zap.String("object", object.Key), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		m.logger.Info("Removed stale tmp uploads", zap.Int("count", removed))
	}
	return nil
}

func (m *MinioProvider) deleteFile(ctx context.Context, objectName string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// CheckSize rejects files above max with a human readable limit.
func CheckSize(size, max int64) error {
	if max > 0 && size > max {
		return fmt.Errorf("%w: %s exceeds the %s limit", ErrFileTooLarge,
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(max)))
	}
	return nil
}

func GenerateObjectName(filename string) string {
	timestamp := time.Now().Format("2006/01/02")
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", timestamp, uuid.New().String(), ext)
}

// DetectContentType accepts image and PDF extensions only.
func DetectContentType(ext string) (string, bool) {
	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".pdf":  "application/pdf",
	}

	ct, ok := contentTypes[strings.ToLower(ext)]
	return ct, ok
}

type UploadedFile struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	ObjectName  string `json:"object_name"`
}
