package photos

import (
	"context"
	"fmt"
	"log"

	"github.com/asakaze/photo-vault/database"
	"github.com/asakaze/photo-vault/internal/apperrors"
	"gorm.io/gorm"
)

// Delete 批量删除照片：关联行、对象存储中的图片与数据库行作为一个单元处理
//
// One transaction: fetch the owned rows, drop their relation rows, delete
// each blob object (a missing object counts as deleted; other errors are
// collected, not failed fast), then delete the photo rows and commit.
//
// Blob deletions have no compensating undo, so when a blob error is
// collected the DB commit still stands and the aggregate error is returned
// afterwards: callers must read it as "some objects may be orphaned in the
// blob store", never as "nothing happened".
func (s *Service) Delete(ctx context.Context, userID uint, photoIDs []uint) error {
	if len(photoIDs) == 0 {
		return apperrors.Validationf("photo id list must not be empty")
	}

	upstream := &apperrors.UpstreamError{}

	err := database.TransactionWithContext(ctx, s.db, func(tx *gorm.DB) error {
		photoRepo := s.photoRepo.WithTx(tx)
		tagRepo := s.tagRepo.WithTx(tx)

		rows, err := photoRepo.GetByIDsAndUser(photoIDs, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch photos: %w", err)
		}
		if len(rows) == 0 {
			return apperrors.NotFoundf("no photos matched the caller's ownership")
		}

		ownedIDs := make([]uint, len(rows))
		for i, row := range rows {
			ownedIDs[i] = row.ID
		}

		if err := tagRepo.DeleteRelationsByPhotoIDs(ownedIDs); err != nil {
			return fmt.Errorf("failed to delete photo-tag relations: %w", err)
		}

		for _, row := range rows {
			if err := s.store.Delete(ctx, row.ImagePath); err != nil {
				log.Printf("Failed to delete blob object '%s' for photo %d: %v", row.ImagePath, row.ID, err)
				upstream.Add(row.ImagePath, err)
			}
		}

		affected, err := photoRepo.DeleteByIDsAndUser(ownedIDs, userID)
		if err != nil {
			return fmt.Errorf("failed to delete photo rows: %w", err)
		}
		if affected == 0 {
			return apperrors.NotFoundf("no photos matched the caller's ownership")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 数据库事务已提交，但对象存储的失败仍需如实上报
	return upstream.OrNil()
}
