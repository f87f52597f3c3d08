package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStorage 상품 이미지 저장소. 테스트에서는 메모리 구현으로 대체한다.
type ImageStorage interface {
	UploadProductImage(ctx context.Context, productID, filename, contentType string, body io.Reader) (string, error)
	ValidateContentType(contentType string) error
	ValidateFileSize(size int64) error
}

const maxImageSize = 10 << 20 // 10MB

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// 자격 증명이 주어지면 그대로 사용하고, 없으면 기본 체인
	// (환경 변수, ~/.aws/credentials, IAM role)을 따른다.
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// UploadProductImage 이미지를 products/<product_id>.<ext> 키로 업로드하고
// 최종 파일 URL을 반환한다. 상품당 이미지는 한 장이므로 키가 고정되고,
// 재업로드는 기존 객체를 덮어쓴다.
func (s *S3Storage) UploadProductImage(ctx context.Context, productID, filename, contentType string, body io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = extensionForContentType(contentType)
	}
	key := fmt.Sprintf("products/%s%s", productID, ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload product image: %w", err)
	}

	return s.fileURL(key), nil
}

func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.baseURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

func (s *S3Storage) ValidateContentType(contentType string) error {
	for _, allowed := range allowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}

func (s *S3Storage) ValidateFileSize(size int64) error {
	if size > maxImageSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", int64(maxImageSize))
	}
	return nil
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
