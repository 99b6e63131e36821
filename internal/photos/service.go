// Package photos implements photo registration, queries, bulk moves and the
// cross-store delete protocol (DB rows + blob objects + relation rows).
package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asakaze/photo-vault/database/models"
	repoFolders "github.com/asakaze/photo-vault/database/repo/folders"
	repoPhotos "github.com/asakaze/photo-vault/database/repo/photos"
	repoTags "github.com/asakaze/photo-vault/database/repo/tags"
	"github.com/asakaze/photo-vault/internal/apperrors"
	"github.com/asakaze/photo-vault/internal/tags"
	"github.com/asakaze/photo-vault/storage"
	"gorm.io/gorm"
)

// PhotoResponse 照片响应，tags 永远存在（可为空列表）
type PhotoResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	FolderID    *uint              `json:"folder_id"`
	ImagePath   string             `json:"image_path"`
	UploadedAt  time.Time          `json:"uploaded_at"`
	SizeInBytes int64              `json:"size_in_bytes"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Tags        []tags.TagResponse `json:"tags"`
}

// CreatePhotoInput 注册照片的输入
type CreatePhotoInput struct {
	Name        string
	Description string
	FolderID    *uint
	ImagePath   string
	SizeInBytes int64
	Width       int
	Height      int
}

// Service 照片服务
type Service struct {
	db         *gorm.DB
	photoRepo  *repoPhotos.Repository
	folderRepo *repoFolders.Repository
	tagRepo    *repoTags.Repository
	store      storage.Storage
}

// NewService 创建照片服务
func NewService(db *gorm.DB, photoRepo *repoPhotos.Repository, folderRepo *repoFolders.Repository, tagRepo *repoTags.Repository, store storage.Storage) *Service {
	return &Service{
		db:         db,
		photoRepo:  photoRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		store:      store,
	}
}

// Register 保存照片元数据行，图片字节已由客户端直传到对象存储
func (s *Service) Register(ctx context.Context, userID uint, input CreatePhotoInput) (*models.Photo, error) {
	if input.ImagePath == "" {
		return nil, apperrors.Validationf("image_path must not be empty")
	}

	if input.FolderID != nil {
		if _, err := s.folderRepo.WithContext(ctx).GetByIDAndUser(*input.FolderID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFoundf("folder %d", *input.FolderID)
			}
			return nil, fmt.Errorf("failed to fetch folder: %w", err)
		}
	}

	photo := &models.Photo{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		FolderID:    input.FolderID,
		ImagePath:   input.ImagePath,
		UploadedAt:  time.Now(),
		SizeInBytes: input.SizeInBytes,
		Width:       input.Width,
		Height:      input.Height,
	}
	if err := s.photoRepo.WithContext(ctx).CreatePhoto(photo); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}
	return photo, nil
}

// Update 更新照片名称与描述
func (s *Service) Update(ctx context.Context, userID, photoID uint, name, description *string) (*PhotoResponse, error) {
	repo := s.photoRepo.WithContext(ctx)

	photo, err := repo.GetByIDAndUser(photoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("photo %d", photoID)
		}
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}

	if name != nil {
		photo.Name = *name
	}
	if description != nil {
		photo.Description = *description
	}
	if err := repo.UpdatePhoto(photo); err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}

	responses, err := s.BuildResponses(ctx, []*models.Photo{photo})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// List 获取用户全部照片
func (s *Service) List(ctx context.Context, userID uint) ([]PhotoResponse, error) {
	rows, err := s.photoRepo.WithContext(ctx).ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return s.BuildResponses(ctx, rows)
}

// Search 按逗号分隔的标签串搜索照片，任一标签命中即返回
//
// An empty tag string yields zero labels and therefore zero results.
func (s *Service) Search(ctx context.Context, userID uint, tagQuery string) ([]PhotoResponse, error) {
	labels := splitTagQuery(tagQuery)
	if len(labels) == 0 {
		return []PhotoResponse{}, nil
	}

	rows, err := s.photoRepo.WithContext(ctx).SearchByTagLabels(labels, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to search photos: %w", err)
	}
	return s.BuildResponses(ctx, rows)
}

// Move 批量移动照片到目标文件夹
//
// The destination must belong to the caller; a move into a foreign or
// missing folder id is rejected with NotFound and changes nothing.
func (s *Service) Move(ctx context.Context, userID uint, photoIDs []uint, destFolderID uint) error {
	if len(photoIDs) == 0 {
		return apperrors.Validationf("photo id list must not be empty")
	}

	if _, err := s.folderRepo.WithContext(ctx).GetByIDAndUser(destFolderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("destination folder %d", destFolderID)
		}
		return fmt.Errorf("failed to fetch destination folder: %w", err)
	}

	rows, err := s.photoRepo.WithContext(ctx).MoveToFolder(photoIDs, destFolderID, userID)
	if err != nil {
		return fmt.Errorf("failed to move photos: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFoundf("no photos matched the caller's ownership")
	}
	return nil
}

// BuildResponses 批量组装照片响应，标签一次查询后按照片分组
func (s *Service) BuildResponses(ctx context.Context, rows []*models.Photo) ([]PhotoResponse, error) {
	photoIDs := make([]uint, len(rows))
	for i, row := range rows {
		photoIDs[i] = row.ID
	}

	grouped, err := s.tagRepo.WithContext(ctx).TagsForPhotoIDs(photoIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photo tags: %w", err)
	}

	responses := make([]PhotoResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toResponse(row, grouped[row.ID]))
	}
	return responses, nil
}

func toResponse(photo *models.Photo, tagRows []*models.Tag) PhotoResponse {
	tagResponses := make([]tags.TagResponse, 0, len(tagRows))
	for _, row := range tagRows {
		tagResponses = append(tagResponses, tags.TagResponse{ID: row.ID, Tag: row.Label})
	}
	return PhotoResponse{
		ID:          photo.ID,
		Name:        photo.Name,
		Description: photo.Description,
		FolderID:    photo.FolderID,
		ImagePath:   photo.ImagePath,
		UploadedAt:  photo.UploadedAt,
		SizeInBytes: photo.SizeInBytes,
		Width:       photo.Width,
		Height:      photo.Height,
		Tags:        tagResponses,
	}
}

// splitTagQuery 拆分逗号分隔的标签串并去除空白
func splitTagQuery(tagQuery string) []string {
	parts := strings.Split(tagQuery, ",")
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}
