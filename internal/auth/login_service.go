package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/asakaze/photo-vault/database"
	"github.com/asakaze/photo-vault/database/models"
	repoFolders "github.com/asakaze/photo-vault/database/repo/folders"
	repoUsers "github.com/asakaze/photo-vault/database/repo/users"
	"github.com/asakaze/photo-vault/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 登录凭证无效；对外不区分“用户不存在”和“密码错误”
var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginService 注册与登录
type LoginService struct {
	db         *gorm.DB
	userRepo   *repoUsers.Repository
	folderRepo *repoFolders.Repository
	jwtService *JWTService
}

// NewLoginService 创建登录服务
func NewLoginService(db *gorm.DB, userRepo *repoUsers.Repository, folderRepo *repoFolders.Repository, jwtService *JWTService) *LoginService {
	return &LoginService{
		db:         db,
		userRepo:   userRepo,
		folderRepo: folderRepo,
		jwtService: jwtService,
	}
}

// Signup 注册用户并创建其个人根文件夹
func (s *LoginService) Signup(ctx context.Context, name, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return database.TransactionWithContext(ctx, s.db, func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		folderRepo := s.folderRepo.WithTx(tx)

		user := &models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hashed),
		}
		if err := userRepo.CreateUser(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		root := &models.Folder{
			UserID: user.ID,
			Name:   name,
		}
		if err := folderRepo.CreateFolder(root); err != nil {
			return fmt.Errorf("failed to create root folder: %w", err)
		}
		return userRepo.SetRootFolder(user.ID, root.ID)
	})
}

// Signin 校验凭证并签发访问令牌
func (s *LoginService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.WithContext(ctx).GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Printf("Failed login attempt for %s", utils.SanitizeLogUsername(email))
		return "", ErrInvalidCredentials
	}

	var rootFolderID uint
	if user.RootFolderID != nil {
		rootFolderID = *user.RootFolderID
	}
	return s.jwtService.GenerateToken(user.ID, rootFolderID)
}
