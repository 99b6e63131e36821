package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"
)

// WebDAVConfig WebDAV 配置结构
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	RootPath string
}

// webdavStorage WebDAV 存储实现
type webdavStorage struct {
	client   *gowebdav.Client
	rootPath string
}

// NewWebDAVStorage 创建 WebDAV 存储提供者
func NewWebDAVStorage(cfg WebDAVConfig) (Storage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.RootPath, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)

	// 验证连接
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testWebDAVConnection(ctx, client, rootPath); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	return &webdavStorage{
		client:   client,
		rootPath: rootPath,
	}, nil
}

// testWebDAVConnection 测试 WebDAV 连接
func testWebDAVConnection(ctx context.Context, client *gowebdav.Client, rootPath string) error {
	done := make(chan error, 1)
	go func() {
		// 尝试读取根目录验证连接
		_, err := client.ReadDir(rootPath)
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// fullPath 生成完整的 WebDAV 路径
func (s *webdavStorage) fullPath(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.rootPath != "" {
		return s.rootPath + "/" + key
	}
	return "/" + key
}

// Save 保存文件到 WebDAV
func (s *webdavStorage) Save(ctx context.Context, key string, file io.Reader, size int64) error {
	fullPath := s.fullPath(key)

	if dir := path.Dir(fullPath); dir != "/" && dir != "." {
		if err := s.client.MkdirAll(dir, os.FileMode(0755)); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := s.client.WriteStream(fullPath, file, os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to write object '%s' to webdav: %w", key, err)
	}
	return nil
}

// Delete 从 WebDAV 删除对象，对象不存在时视为成功
func (s *webdavStorage) Delete(ctx context.Context, key string) error {
	err := s.client.Remove(s.fullPath(key))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete object '%s' from webdav: %w", key, err)
	}
	return nil
}
