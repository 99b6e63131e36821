// Package folders implements the folder tree engine: contents with
// breadcrumbs and per-subtree aggregates, plus the cascading transactional
// delete spanning database rows and blob objects.
package folders

import (
	"context"
	"errors"
	"fmt"

	"github.com/asakaze/photo-vault/database/models"
	repoFolders "github.com/asakaze/photo-vault/database/repo/folders"
	repoPhotos "github.com/asakaze/photo-vault/database/repo/photos"
	repoTags "github.com/asakaze/photo-vault/database/repo/tags"
	"github.com/asakaze/photo-vault/internal/apperrors"
	"github.com/asakaze/photo-vault/internal/photos"
	"github.com/asakaze/photo-vault/storage"
	"gorm.io/gorm"
)

// ChildFolder 子文件夹及其整个子树的照片统计
type ChildFolder struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ParentID         *uint  `json:"parent_id"`
	PhotoCount       int64  `json:"photo_count"`
	TotalSizeInBytes int64  `json:"total_size_in_bytes"`
}

// FolderView 文件夹本体的响应形态
type FolderView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *uint  `json:"parent_id"`
}

// Contents GET /files/{folderId} 的响应
type Contents struct {
	Folder       FolderView               `json:"folder"`
	Photos       []photos.PhotoResponse   `json:"photos"`
	ChildFolders []ChildFolder            `json:"child_folders"`
	Breadcrumbs  []repoFolders.Breadcrumb `json:"breadcrumbs"`
}

// Service 文件夹服务
type Service struct {
	db         *gorm.DB
	folderRepo *repoFolders.Repository
	photoRepo  *repoPhotos.Repository
	tagRepo    *repoTags.Repository
	store      storage.Storage
	photoSvc   *photos.Service
}

// NewService 创建文件夹服务
func NewService(db *gorm.DB, folderRepo *repoFolders.Repository, photoRepo *repoPhotos.Repository, tagRepo *repoTags.Repository, store storage.Storage, photoSvc *photos.Service) *Service {
	return &Service{
		db:         db,
		folderRepo: folderRepo,
		photoRepo:  photoRepo,
		tagRepo:    tagRepo,
		store:      store,
		photoSvc:   photoSvc,
	}
}

// Create 创建文件夹
func (s *Service) Create(ctx context.Context, userID uint, name, description string, parentID *uint) (*models.Folder, error) {
	if parentID != nil {
		if _, err := s.folderRepo.WithContext(ctx).GetByIDAndUser(*parentID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFoundf("parent folder %d", *parentID)
			}
			return nil, fmt.Errorf("failed to fetch parent folder: %w", err)
		}
	}

	folder := &models.Folder{
		UserID:      userID,
		Name:        name,
		Description: description,
		ParentID:    parentID,
	}
	if err := s.folderRepo.WithContext(ctx).CreateFolder(folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// Update 更新文件夹名称与描述
func (s *Service) Update(ctx context.Context, userID, folderID uint, name string, description *string) (*models.Folder, error) {
	repo := s.folderRepo.WithContext(ctx)

	folder, err := repo.GetByIDAndUser(folderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("folder %d", folderID)
		}
		return nil, fmt.Errorf("failed to fetch folder: %w", err)
	}

	folder.Name = name
	if description != nil {
		folder.Description = *description
	}
	if err := repo.UpdateFolder(folder); err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return folder, nil
}

// GetContents 获取文件夹内容：本体、直接照片（含标签）、
// 子文件夹（含子树聚合）与面包屑
//
// A folder that is missing or owned by someone else yields NotFound either
// way, so the response never reveals whether a foreign id exists.
func (s *Service) GetContents(ctx context.Context, userID, folderID uint) (*Contents, error) {
	folderRepo := s.folderRepo.WithContext(ctx)
	photoRepo := s.photoRepo.WithContext(ctx)

	folder, err := folderRepo.GetByIDAndUser(folderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("folder %d", folderID)
		}
		return nil, fmt.Errorf("failed to fetch folder: %w", err)
	}

	children, err := folderRepo.GetChildren(folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch child folders: %w", err)
	}

	childIDs := make([]uint, len(children))
	for i, child := range children {
		childIDs[i] = child.ID
	}
	closures, err := folderRepo.DescendantIDsBatch(childIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute descendant closures: %w", err)
	}

	childFolders := make([]ChildFolder, 0, len(children))
	for _, child := range children {
		agg, err := photoRepo.AggregateByFolderIDs(closures[child.ID])
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate photos for folder %d: %w", child.ID, err)
		}
		childFolders = append(childFolders, ChildFolder{
			ID:               child.ID,
			Name:             child.Name,
			Description:      child.Description,
			ParentID:         child.ParentID,
			PhotoCount:       agg.PhotoCount,
			TotalSizeInBytes: agg.TotalBytes,
		})
	}

	photoRows, err := photoRepo.GetByFolder(folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photos: %w", err)
	}
	photoResponses, err := s.photoSvc.BuildResponses(ctx, photoRows)
	if err != nil {
		return nil, err
	}

	crumbs, err := folderRepo.Breadcrumbs(folderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build breadcrumbs: %w", err)
	}

	return &Contents{
		Folder: FolderView{
			ID:          folder.ID,
			Name:        folder.Name,
			Description: folder.Description,
			ParentID:    folder.ParentID,
		},
		Photos:       photoResponses,
		ChildFolders: childFolders,
		Breadcrumbs:  crumbs,
	}, nil
}
