package users

import (
	"context"

	"github.com/asakaze/photo-vault/database/models"
	"gorm.io/gorm"
)

// Repository 用户仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的用户仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser 创建用户
func (r *Repository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByEmail 通过邮箱获取用户
func (r *Repository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

// SetRootFolder 绑定用户的根文件夹
func (r *Repository) SetRootFolder(userID, folderID uint) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).Update("root_folder_id", folderID).Error
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// WithTx 返回绑定到事务的仓库
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}
