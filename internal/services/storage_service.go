// internal/services/storage_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/autosalvage/storefront/internal/config"
	"github.com/autosalvage/storefront/internal/metrics"
	"github.com/autosalvage/storefront/internal/utils"
)

const maxNameLength = 100

// FileStore persists uploaded bytes and hands back the path clients fetch them from.
type FileStore interface {
	Put(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error)
	// Delete removes a file previously returned by Put. Paths the store does
	// not own are ignored.
	Delete(ctx context.Context, publicPath string) error
}

// StoredFile describes one persisted upload, ready to be recorded as an image row.
type StoredFile struct {
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Path     string `json:"file_path"`
}

type StorageService struct {
	store    FileStore
	maxFiles int
	now      func() time.Time
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.Storage.Driver != "s3" {
		return NewStorageServiceWithStore(
			NewLocalFileStore(cfg.Storage.UploadDir, cfg.Storage.UploadRoute),
			cfg.Storage.MaxFiles,
		), nil
	}

	store, err := NewS3FileStore(cfg.AWS)
	if err != nil {
		return nil, err
	}
	return NewStorageServiceWithStore(store, cfg.Storage.MaxFiles), nil
}

func NewStorageServiceWithStore(store FileStore, maxFiles int) *StorageService {
	return &StorageService{
		store:    store,
		maxFiles: maxFiles,
		now:      time.Now,
	}
}

func (s *StorageService) MaxFiles() int {
	return s.maxFiles
}

// SaveAll stores every file in order. On failure, files already written by
// this call are removed before the error is returned.
func (s *StorageService) SaveAll(ctx context.Context, files []*multipart.FileHeader) ([]StoredFile, error) {
	if len(files) > s.maxFiles {
		return nil, &TooManyFilesError{Count: len(files), Limit: s.maxFiles}
	}

	stored := make([]StoredFile, 0, len(files))
	for _, header := range files {
		file, err := s.save(ctx, header)
		if err != nil {
			s.Discard(ctx, pathsOf(stored))
			return nil, err
		}
		stored = append(stored, file)
	}
	metrics.UploadedFiles.Add(float64(len(stored)))

	return stored, nil
}

func (s *StorageService) save(ctx context.Context, header *multipart.FileHeader) (StoredFile, error) {
	src, err := header.Open()
	if err != nil {
		return StoredFile{}, fmt.Errorf("%w: open %q: %w", ErrUploadFailed, header.Filename, err)
	}
	defer src.Close()

	name, err := s.generateFileName(header.Filename)
	if err != nil {
		return StoredFile{}, err
	}

	mimetype := header.Header.Get("Content-Type")
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	publicPath, err := s.store.Put(ctx, name, src, mimetype)
	if err != nil {
		return StoredFile{}, fmt.Errorf("%w: store %q: %w", ErrUploadFailed, header.Filename, err)
	}

	return StoredFile{
		Filename: header.Filename,
		Mimetype: mimetype,
		Path:     publicPath,
	}, nil
}

// Discard removes stored files on a best-effort basis.
func (s *StorageService) Discard(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil {
			logrus.WithError(err).WithField("path", p).Warn("Failed to remove stored file")
		}
	}
}

// generateFileName builds "<unix millis>-<9 random digits>-<original name>".
// Only the base name survives, restricted to a safe character set.
func (s *StorageService) generateFileName(original string) (string, error) {
	suffix, err := utils.RandomDigits(9)
	if err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	return fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), suffix, sanitizeFileName(original)), nil
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	safe := strings.TrimLeft(b.String(), ".")
	if safe == "" {
		safe = "upload"
	}
	if len(safe) > maxNameLength {
		safe = safe[len(safe)-maxNameLength:]
	}
	return safe
}

func pathsOf(files []StoredFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

// LocalFileStore keeps uploads in a flat directory served under route.
type LocalFileStore struct {
	root  string
	route string
}

func NewLocalFileStore(root, route string) *LocalFileStore {
	return &LocalFileStore{
		root:  root,
		route: strings.TrimSuffix(route, "/"),
	}
}

func (l *LocalFileStore) Put(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error) {
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	dst, err := os.OpenFile(filepath.Join(l.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, body); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return l.route + "/" + name, nil
}

func (l *LocalFileStore) Delete(ctx context.Context, publicPath string) error {
	prefix := l.route + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}

	name := path.Base(strings.TrimPrefix(publicPath, prefix))
	err := os.Remove(filepath.Join(l.root, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// S3FileStore uploads to a bucket; public paths are CloudFront or bucket URLs.
type S3FileStore struct {
	client  *s3.S3
	bucket  string
	baseURL string
}

func NewS3FileStore(cfg config.AWSConfig) (*S3FileStore, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.CloudFrontURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.Region)
	}

	return &S3FileStore{
		client:  s3.New(sess),
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *S3FileStore) Put(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

func (s *S3FileStore) Delete(ctx context.Context, publicPath string) error {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(strings.TrimPrefix(publicPath, prefix)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
