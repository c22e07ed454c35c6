package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Sampler/config"
	"Sampler/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrMinioDisabled is returned when no endpoint is configured.
var ErrMinioDisabled = errors.New("MinIO endpoint not configured")

// NewMinioClient 初始化 MinIO 客户端 and checks that the server answers.
func NewMinioClient(cfg *config.Config) (*minio.Client, error) {
	if cfg.MinioEndpoint == "" {
		return nil, ErrMinioDisabled
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	buckets, err := client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("MinIO 连接测试失败: %w", err)
	}

	logger.Info("MinIO client ready",
		logger.String("endpoint", cfg.MinioEndpoint),
		logger.Int("buckets", len(buckets)))
	return client, nil
}
