// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/utils"
)

type StorageService struct {
	s3Client  s3iface.S3API
	aws       config.AWSConfig
	publicURL string
	uploadDir string
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type UploadOptions struct {
	Folder   string
	MaxSize  int64 // in bytes
	IsPublic bool
}

var (
	ProductImageUpload = UploadOptions{Folder: "products", MaxSize: 10 * 1024 * 1024, IsPublic: true}
	AvatarUpload       = UploadOptions{Folder: "avatars", MaxSize: 2 * 1024 * 1024, IsPublic: true}
)

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{
		aws:       cfg.AWS,
		publicURL: cfg.Server.PublicURL,
		uploadDir: cfg.Server.UploadDir,
	}
	if !cfg.AWS.Enabled() {
		// Files go to the local upload directory
		return s, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	s.s3Client = s3.New(sess)
	return s, nil
}

// NewS3StorageService wires an existing S3 client.
func NewS3StorageService(client s3iface.S3API, awsCfg config.AWSConfig) *StorageService {
	return &StorageService{s3Client: client, aws: awsCfg}
}

// UploadImage validates an image upload (JPEG, PNG or GIF within the size
// limit) and stores it.
func (s *StorageService) UploadImage(ctx context.Context, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, utils.InvalidArgument(i18n.KeyFileTooLarge, strconv.FormatInt(options.MaxSize/(1024*1024), 10))
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if options.MaxSize > 0 && int64(len(fileBytes)) > options.MaxSize {
		return nil, utils.InvalidArgument(i18n.KeyFileTooLarge, strconv.FormatInt(options.MaxSize/(1024*1024), 10))
	}
	format, ok := detectImage(fileBytes)
	if !ok {
		return nil, utils.InvalidArgument(i18n.KeyFileInvalidType)
	}

	contentType := format.contentType
	key := generateFileName(format.ext, options.Folder)

	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if isPublic {
		params.ACL = aws.String("public-read")
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("%s/uploads/%s", s.publicURL, key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		if err := os.Remove(filepath.Join(s.uploadDir, filepath.FromSlash(key))); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.aws.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// KeyFromURL returns the storage key of a URL produced by UploadImage. It
// reports false for URLs that point elsewhere.
func (s *StorageService) KeyFromURL(url string) (string, bool) {
	prefix := s.publicURL + "/uploads/"
	if s.s3Client != nil {
		prefix = s.getS3URL("")
	}
	if prefix == "" || !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// generateFileName never reuses the client's file name, so the stored
// extension always matches the sniffed format.
func generateFileName(ext, folder string) string {
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.New().String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}
	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.aws.S3Bucket, s.aws.Region, key)
}

type imageFormat struct {
	magic       []byte
	contentType string
	ext         string
}

var imageFormats = []imageFormat{
	{[]byte{0xFF, 0xD8, 0xFF}, "image/jpeg", ".jpg"},
	{[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, "image/png", ".png"},
	{[]byte("GIF87a"), "image/gif", ".gif"},
	{[]byte("GIF89a"), "image/gif", ".gif"},
}

func detectImage(buffer []byte) (imageFormat, bool) {
	for _, f := range imageFormats {
		if bytes.HasPrefix(buffer, f.magic) {
			return f, true
		}
	}
	return imageFormat{}, false
}
