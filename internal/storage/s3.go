package storage

import (
	"context"
	"fmt"
	"io"

	"choicefiction/internal/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// s3API - часть *s3.Client, которой пользуется хранилище.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ interfaces.ImageStore = (*S3Store)(nil)

// S3Store кладет файлы в бакет S3.
type S3Store struct {
	client s3API
	bucket string
	region string
	logger *zap.Logger
}

// S3Config - параметры подключения к S3.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Store создает хранилище. Без ключей используется стандартная цепочка AWS credentials.
func NewS3Store(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return newS3Store(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Region, logger), nil
}

func newS3Store(client s3API, bucket, region string, logger *zap.Logger) *S3Store {
	return &S3Store{client: client, bucket: bucket, region: region, logger: logger.Named("S3Store")}
}

// Put загружает объект и возвращает его публичный URL.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.logger.Error("Failed to put object", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.logger.Info("Object uploaded", zap.String("key", key), zap.Int64("size", size))
	return url, nil
}
