package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/asakaze/photo-vault/config"
)

// Storage 对象存储接口。
//
// Delete must treat a missing object as success: the store is only
// eventually consistent with the database, and a previous partial failure
// may have removed the object already. Any other error is returned for the
// caller to collect and report.
type Storage interface {
	Save(ctx context.Context, key string, file io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}

// Presigner is implemented by backends that can hand upload targets
// directly to clients.
type Presigner interface {
	PresignPut(ctx context.Context, key string) (uploadURL string, publicURL string, err error)
}

// NewStorage 根据配置创建存储提供者
func NewStorage(cfg *config.Config) (Storage, error) {
	storageType := cfg.StorageType

	log.Printf("Initializing storage, type: %s", storageType)

	switch storageType {
	case "local":
		return NewLocalStorage(cfg.StorageLocalPath)
	case "minio", "s3":
		return NewMinioStorage(cfg)
	case "webdav":
		return NewWebDAVStorage(WebDAVConfig{
			URL:      cfg.StorageWebDAVURL,
			Username: cfg.StorageWebDAVUsername,
			Password: cfg.StorageWebDAVPassword,
			RootPath: cfg.StorageWebDAVRoot,
		})
	default:
		return nil, fmt.Errorf("invalid storage type specified in config: %s", storageType)
	}
}
