package tags

import (
	"context"

	"github.com/asakaze/photo-vault/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 标签仓库 - 封装标签与照片标签关联的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的标签仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser 获取用户全部标签
func (r *Repository) ListByUser(userID uint) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Where("user_id = ?", userID).Order("label asc").Find(&tags).Error
	return tags, err
}

// FindOrCreate 插入标签，(user_id, label) 已存在时复用现有行
//
// Insert with ON CONFLICT DO NOTHING, then fall back to a read. Safe under
// concurrent identical requests: one insert wins, the other lands on the
// fallback read. Run inside a transaction by callers that need atomicity
// with follow-up writes.
func (r *Repository) FindOrCreate(label string, userID uint) (*models.Tag, error) {
	tag := models.Tag{Label: label, UserID: userID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "label"}},
		DoNothing: true,
	}).Create(&tag).Error
	if err != nil {
		return nil, err
	}

	if tag.ID != 0 {
		return &tag, nil
	}

	// 冲突时读取现有行
	var existing models.Tag
	err = r.db.Where("label = ? AND user_id = ?", label, userID).First(&existing).Error
	return &existing, err
}

// CountOwned 统计属于指定用户的标签ID数量，用于所有权校验
func (r *Repository) CountOwned(ids []uint, userID uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Tag{}).
		Where("id IN ? AND user_id = ?", ids, userID).Count(&count).Error
	return count, err
}

// AddRelation 幂等插入照片标签关联
func (r *Repository) AddRelation(photoID, tagID uint) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PhotoTagRelation{PhotoID: photoID, TagID: tagID}).Error
}

// DeleteRelationsByPhotoIDs 删除指定照片的全部关联行
func (r *Repository) DeleteRelationsByPhotoIDs(photoIDs []uint) error {
	if len(photoIDs) == 0 {
		return nil
	}
	return r.db.Where("photo_id IN ?", photoIDs).
		Delete(&models.PhotoTagRelation{}).Error
}

// ReplaceForPhotos 以全量替换语义重建关联：先删后插，重复插入忽略
func (r *Repository) ReplaceForPhotos(photoIDs, tagIDs []uint) error {
	if err := r.DeleteRelationsByPhotoIDs(photoIDs); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	relations := make([]models.PhotoTagRelation, 0, len(photoIDs)*len(tagIDs))
	for _, photoID := range photoIDs {
		for _, tagID := range tagIDs {
			relations = append(relations, models.PhotoTagRelation{PhotoID: photoID, TagID: tagID})
		}
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&relations).Error
}

// TagsForPhotoIDs 批量获取照片的标签，按照片ID分组
func (r *Repository) TagsForPhotoIDs(photoIDs []uint) (map[uint][]*models.Tag, error) {
	grouped := make(map[uint][]*models.Tag, len(photoIDs))
	for _, id := range photoIDs {
		grouped[id] = []*models.Tag{}
	}
	if len(photoIDs) == 0 {
		return grouped, nil
	}

	var rows []struct {
		models.Tag
		PhotoID uint
	}
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, ptr.photo_id").
		Joins("JOIN photo_tag_relations ptr ON ptr.tag_id = tags.id").
		Where("ptr.photo_id IN ?", photoIDs).
		Order("tags.label asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		tag := rows[i].Tag
		grouped[rows[i].PhotoID] = append(grouped[rows[i].PhotoID], &tag)
	}
	return grouped, nil
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// WithTx 返回绑定到事务的仓库
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}
