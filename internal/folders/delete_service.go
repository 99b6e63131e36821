package folders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/asakaze/photo-vault/database"
	"github.com/asakaze/photo-vault/internal/apperrors"
	"gorm.io/gorm"
)

// Delete 级联删除一批文件夹及其整个子树
//
// One transaction across all requested ids, no per-id commits. For each id
// the full descendant closure is removed: relation rows, blob objects,
// photo rows, then the folder rows. A missing or foreign id aborts the
// whole batch with NotFound so partial deletion across the batch never
// happens.
//
// Blob deletions performed before a later failure are not rolled back (the
// blob store has no compensating undo); that at-least-once-delete semantic
// is accepted and the DB transaction still rolls back as a unit.
func (s *Service) Delete(ctx context.Context, userID uint, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return apperrors.Validationf("folder id list must not be empty")
	}

	return database.TransactionWithContext(ctx, s.db, func(tx *gorm.DB) error {
		folderRepo := s.folderRepo.WithTx(tx)
		photoRepo := s.photoRepo.WithTx(tx)
		tagRepo := s.tagRepo.WithTx(tx)

		// 同一批次里父文件夹的级联可能已覆盖后续的ID
		removed := make(map[uint]bool)

		for _, folderID := range folderIDs {
			if removed[folderID] {
				continue
			}

			if _, err := folderRepo.GetByIDAndUser(folderID, userID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFoundf("folder %d", folderID)
				}
				return fmt.Errorf("failed to fetch folder %d: %w", folderID, err)
			}

			closure, err := folderRepo.DescendantIDs(folderID, userID)
			if err != nil {
				return fmt.Errorf("failed to compute descendant closure of folder %d: %w", folderID, err)
			}

			photoRows, err := photoRepo.GetByFolderIDs(closure, userID)
			if err != nil {
				return fmt.Errorf("failed to fetch photos of folder %d: %w", folderID, err)
			}

			photoIDs := make([]uint, len(photoRows))
			for i, row := range photoRows {
				photoIDs[i] = row.ID
			}

			if err := tagRepo.DeleteRelationsByPhotoIDs(photoIDs); err != nil {
				return fmt.Errorf("failed to delete photo-tag relations: %w", err)
			}

			// 对象存储删除失败（“已不存在”除外）会让整批回滚
			for _, row := range photoRows {
				if err := s.store.Delete(ctx, row.ImagePath); err != nil {
					log.Printf("Failed to delete blob object '%s' for photo %d: %v", row.ImagePath, row.ID, err)
					return fmt.Errorf("%w: object '%s'", apperrors.ErrUpstream, row.ImagePath)
				}
			}

			if len(photoIDs) > 0 {
				if _, err := photoRepo.DeleteByIDsAndUser(photoIDs, userID); err != nil {
					return fmt.Errorf("failed to delete photo rows: %w", err)
				}
			}

			if err := folderRepo.DeleteFolderRows(closure); err != nil {
				return fmt.Errorf("failed to delete folder rows: %w", err)
			}
			for _, id := range closure {
				removed[id] = true
			}
		}
		return nil
	})
}
