package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"billsmith/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// StorageProvider 账单原始文件的存储
// Save 返回的 location 即写入 bills.file_path 的值
type StorageProvider interface {
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	Remove(ctx context.Context, location string) error
	Location(key string) string
}

// NewStorage 配置了 S3 bucket 时使用 S3，否则（或 S3 不可用时）使用本地目录
func NewStorage(ctx context.Context, cfg config.StorageConfig) StorageProvider {
	if !cfg.S3.Enabled() {
		zap.L().Info("使用本地文件存储", zap.String("root", cfg.Root))
		return NewLocalStorage(cfg.Root)
	}

	s3Storage, err := NewS3Storage(ctx, cfg.S3)
	if err != nil {
		zap.L().Warn("初始化 S3 存储失败，回退到本地存储", zap.Error(err))
		return NewLocalStorage(cfg.Root)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := s3Storage.client.HeadBucket(checkCtx, &s3.HeadBucketInput{Bucket: aws.String(cfg.S3.Bucket)}); err != nil {
		zap.L().Warn("S3 bucket 连接测试失败，回退到本地存储", zap.String("bucket", cfg.S3.Bucket), zap.Error(err))
		return NewLocalStorage(cfg.Root)
	}

	zap.L().Info("使用 S3 文件存储", zap.String("bucket", cfg.S3.Bucket))
	return s3Storage
}

// LocalStorage 本地文件系统存储
type LocalStorage struct {
	root string
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Location 本地存储的 location 就是文件路径
func (l *LocalStorage) Location(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

// Save 写入文件，自动创建目录
func (l *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	path := l.Location(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path, nil
}

// Open 打开文件
func (l *LocalStorage) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Remove 删除文件，文件不存在时返回 ErrFileNotFound
func (l *LocalStorage) Remove(ctx context.Context, location string) error {
	err := os.Remove(location)
	if errors.Is(err, os.ErrNotExist) {
		return ErrFileNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// S3Storage S3 兼容对象存储（AWS、R2、MinIO）
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage 创建 S3 存储，Endpoint 为空时使用 AWS 默认地址
func NewS3Storage(ctx context.Context, cfg config.S3Config) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, bucket: cfg.Bucket}, nil
}

// Location 形如 s3://bucket/temp/xxx.pdf
func (s *S3Storage) Location(key string) string {
	return "s3://" + s.bucket + "/" + strings.TrimPrefix(key, "/")
}

func (s *S3Storage) key(location string) string {
	return strings.TrimPrefix(location, "s3://"+s.bucket+"/")
}

// Save 上传对象
func (s *S3Storage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.Location(key), nil
}

// Open 下载对象
func (s *S3Storage) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(location)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	return out.Body, nil
}

// Remove 删除对象；S3 删除不存在的 key 也会成功
func (s *S3Storage) Remove(ctx context.Context, location string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(location)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// ContentTypeFor 按扩展名推断下载时的 Content-Type
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
