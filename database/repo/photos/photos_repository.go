package photos

import (
	"context"

	"github.com/asakaze/photo-vault/database/models"
	"gorm.io/gorm"
)

// Repository 照片仓库 - 封装所有照片相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的照片仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FolderAggregate 某个文件夹闭包内照片的聚合统计
type FolderAggregate struct {
	PhotoCount int64
	TotalBytes int64
}

// CreatePhoto 保存照片
func (r *Repository) CreatePhoto(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

// UpdatePhoto 更新照片
func (r *Repository) UpdatePhoto(photo *models.Photo) error {
	return r.db.Save(photo).Error
}

// GetByIDAndUser 通过ID和用户ID获取照片
func (r *Repository) GetByIDAndUser(id, userID uint) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&photo).Error
	return &photo, err
}

// GetByIDsAndUser 批量通过ID和用户ID获取照片（IN 查询，避免 N+1）
func (r *Repository) GetByIDsAndUser(ids []uint, userID uint) ([]*models.Photo, error) {
	if len(ids) == 0 {
		return []*models.Photo{}, nil
	}
	var photos []*models.Photo
	err := r.db.Where("id IN ? AND user_id = ?", ids, userID).Find(&photos).Error
	return photos, err
}

// GetByFolder 获取文件夹内的直接照片
func (r *Repository) GetByFolder(folderID, userID uint) ([]*models.Photo, error) {
	var photos []*models.Photo
	err := r.db.Where("folder_id = ? AND user_id = ?", folderID, userID).
		Order("created_at asc").Find(&photos).Error
	return photos, err
}

// GetByFolderIDs 获取一组文件夹内的直接照片
func (r *Repository) GetByFolderIDs(folderIDs []uint, userID uint) ([]*models.Photo, error) {
	if len(folderIDs) == 0 {
		return []*models.Photo{}, nil
	}
	var photos []*models.Photo
	err := r.db.Where("folder_id IN ? AND user_id = ?", folderIDs, userID).Find(&photos).Error
	return photos, err
}

// ListByUser 获取用户全部照片
func (r *Repository) ListByUser(userID uint) ([]*models.Photo, error) {
	var photos []*models.Photo
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&photos).Error
	return photos, err
}

// SearchByTagLabels 按标签搜索照片，任一标签命中即返回（OR 语义）
//
// An empty label list joins against nothing and therefore yields no rows;
// callers rely on that boundary.
func (r *Repository) SearchByTagLabels(labels []string, userID uint) ([]*models.Photo, error) {
	var photos []*models.Photo
	err := r.db.Distinct("photos.*").
		Joins("JOIN photo_tag_relations ptr ON ptr.photo_id = photos.id").
		Joins("JOIN tags ON tags.id = ptr.tag_id").
		Where("photos.user_id = ? AND tags.label IN ?", userID, labels).
		Find(&photos).Error
	return photos, err
}

// CountOwned 统计属于指定用户的照片ID数量，用于所有权校验
func (r *Repository) CountOwned(ids []uint, userID uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Photo{}).
		Where("id IN ? AND user_id = ?", ids, userID).Count(&count).Error
	return count, err
}

// MoveToFolder 批量移动照片到目标文件夹，返回受影响的行数
func (r *Repository) MoveToFolder(ids []uint, folderID, userID uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Photo{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("folder_id", folderID)
	return result.RowsAffected, result.Error
}

// DeleteByIDsAndUser 批量删除照片行，返回受影响的行数
func (r *Repository) DeleteByIDsAndUser(ids []uint, userID uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Unscoped().
		Where("id IN ? AND user_id = ?", ids, userID).Delete(&models.Photo{})
	return result.RowsAffected, result.Error
}

// AggregateByFolderIDs 统计闭包内照片数量与总字节数
func (r *Repository) AggregateByFolderIDs(folderIDs []uint) (*FolderAggregate, error) {
	agg := &FolderAggregate{}
	if len(folderIDs) == 0 {
		return agg, nil
	}

	row := struct {
		PhotoCount int64
		TotalBytes int64
	}{}
	err := r.db.Model(&models.Photo{}).
		Select("COUNT(*) as photo_count, COALESCE(SUM(size_in_bytes), 0) as total_bytes").
		Where("folder_id IN ?", folderIDs).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	agg.PhotoCount = row.PhotoCount
	agg.TotalBytes = row.TotalBytes
	return agg, nil
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// WithTx 返回绑定到事务的仓库
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}
