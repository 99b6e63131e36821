package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/asakaze/photo-vault/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type minioStorage struct {
	client             *minio.Client
	bucketName         string
	presignedURLExpiry time.Duration
}

// NewMinioStorage 创建 MinIO/S3 存储提供者
func NewMinioStorage(cfg *config.Config) (Storage, error) {
	client, err := minio.New(cfg.StorageMinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageMinioAccessKey, cfg.StorageMinioSecretKey, ""),
		Secure: cfg.StorageMinioUseSSL,
		Region: cfg.StorageMinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.StorageMinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket '%s' exists: %w", cfg.StorageMinioBucket, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.StorageMinioBucket, minio.MakeBucketOptions{Region: cfg.StorageMinioRegion})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.StorageMinioBucket, err)
		}
		log.Printf("Successfully created bucket: %s", cfg.StorageMinioBucket)
	}

	return &minioStorage{
		client:             client,
		bucketName:         cfg.StorageMinioBucket,
		presignedURLExpiry: 5 * time.Minute,
	}, nil
}

// Save 将文件上传到 MinIO
func (s *minioStorage) Save(ctx context.Context, key string, file io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucketName, key, file, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload object '%s' to minio: %w", key, err)
	}
	return nil
}

// Delete 从 MinIO 删除对象，对象不存在时视为成功
func (s *minioStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			log.Printf("Object '%s' already absent, ignoring", key)
			return nil
		}
		return fmt.Errorf("failed to delete object '%s' from minio: %w", key, err)
	}
	return nil
}

// PresignPut 生成客户端直传用的预签名 PUT URL
func (s *minioStorage) PresignPut(ctx context.Context, key string) (string, string, error) {
	presigned, err := s.client.PresignedPutObject(ctx, s.bucketName, key, s.presignedURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned URL for '%s': %w", key, err)
	}

	publicURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucketName, key)
	return presigned.String(), publicURL, nil
}
