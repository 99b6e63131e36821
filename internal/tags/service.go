// Package tags implements tag management: insert-or-reuse creation,
// idempotent photo-tag binding and full-replace assignment.
package tags

import (
	"context"
	"errors"
	"fmt"

	"github.com/asakaze/photo-vault/database"
	"github.com/asakaze/photo-vault/database/models"
	repoPhotos "github.com/asakaze/photo-vault/database/repo/photos"
	repoTags "github.com/asakaze/photo-vault/database/repo/tags"
	"github.com/asakaze/photo-vault/internal/apperrors"
	"gorm.io/gorm"
)

// TagResponse 标签响应
type TagResponse struct {
	ID  uint   `json:"id"`
	Tag string `json:"tag"`
}

// UpdatedPhoto 标签替换后单张照片的标签集
type UpdatedPhoto struct {
	ID   uint          `json:"id"`
	Tags []TagResponse `json:"tags"`
}

// Service 标签服务
type Service struct {
	db        *gorm.DB
	tagRepo   *repoTags.Repository
	photoRepo *repoPhotos.Repository
}

// NewService 创建标签服务
func NewService(db *gorm.DB, tagRepo *repoTags.Repository, photoRepo *repoPhotos.Repository) *Service {
	return &Service{db: db, tagRepo: tagRepo, photoRepo: photoRepo}
}

// List 获取用户全部标签
func (s *Service) List(ctx context.Context, userID uint) ([]TagResponse, error) {
	rows, err := s.tagRepo.WithContext(ctx).ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return toResponses(rows), nil
}

// AddTagToPhoto 为照片打标签，标签不存在时创建，存在时复用
//
// One transaction: insert-or-reuse the tag row, then an idempotent relation
// insert. Calling it twice with the same label returns the same tag id and
// leaves exactly one tag row.
func (s *Service) AddTagToPhoto(ctx context.Context, userID, photoID uint, label string) (*TagResponse, error) {
	if label == "" {
		return nil, apperrors.Validationf("tag label must not be empty")
	}

	if _, err := s.photoRepo.WithContext(ctx).GetByIDAndUser(photoID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("photo %d", photoID)
		}
		return nil, fmt.Errorf("failed to fetch photo: %w", err)
	}

	var tag *models.Tag
	err := database.TransactionWithContext(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		tag, err = s.tagRepo.WithTx(tx).FindOrCreate(label, userID)
		if err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
		if err := s.tagRepo.WithTx(tx).AddRelation(photoID, tag.ID); err != nil {
			return fmt.Errorf("failed to insert photo-tag relation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &TagResponse{ID: tag.ID, Tag: tag.Label}, nil
}

// SetTagsForPhotos 以全量替换语义为一批照片设置标签
//
// All-or-nothing: every tag id and every photo id must belong to the caller
// or the whole operation aborts with Forbidden before anything is written.
func (s *Service) SetTagsForPhotos(ctx context.Context, userID uint, photoIDs, tagIDs []uint) ([]UpdatedPhoto, error) {
	if len(photoIDs) == 0 {
		return nil, apperrors.Validationf("photo id list must not be empty")
	}
	photoIDs = dedupe(photoIDs)
	tagIDs = dedupe(tagIDs)

	var updated []UpdatedPhoto
	err := database.TransactionWithContext(ctx, s.db, func(tx *gorm.DB) error {
		tagRepo := s.tagRepo.WithTx(tx)
		photoRepo := s.photoRepo.WithTx(tx)

		// 所有权双重校验：任一外部ID即整体拒绝
		if err := assertAllOwned(tagIDs, userID, tagRepo.CountOwned, "tag"); err != nil {
			return err
		}
		if err := assertAllOwned(photoIDs, userID, photoRepo.CountOwned, "photo"); err != nil {
			return err
		}

		if err := tagRepo.ReplaceForPhotos(photoIDs, tagIDs); err != nil {
			return fmt.Errorf("failed to replace photo-tag relations: %w", err)
		}

		grouped, err := tagRepo.TagsForPhotoIDs(photoIDs)
		if err != nil {
			return fmt.Errorf("failed to re-read photo tags: %w", err)
		}

		updated = make([]UpdatedPhoto, 0, len(photoIDs))
		for _, photoID := range photoIDs {
			updated = append(updated, UpdatedPhoto{
				ID:   photoID,
				Tags: toResponses(grouped[photoID]),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// assertAllOwned 校验一组ID是否全部属于指定用户
func assertAllOwned(ids []uint, userID uint, countOwned func([]uint, uint) (int64, error), kind string) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := countOwned(ids, userID)
	if err != nil {
		return fmt.Errorf("failed to check %s ownership: %w", kind, err)
	}
	if count != int64(len(ids)) {
		return apperrors.Forbiddenf("one or more %s ids do not belong to the caller", kind)
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toResponses(rows []*models.Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, TagResponse{ID: row.ID, Tag: row.Label})
	}
	return responses
}
