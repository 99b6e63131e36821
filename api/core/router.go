package core

import (
	handlerFolders "github.com/asakaze/photo-vault/api/handler/folders"
	handlerPhotos "github.com/asakaze/photo-vault/api/handler/photos"
	handlerTags "github.com/asakaze/photo-vault/api/handler/tags"
	handlerUploads "github.com/asakaze/photo-vault/api/handler/uploads"
	handlerUsers "github.com/asakaze/photo-vault/api/handler/users"
	"github.com/asakaze/photo-vault/api/middleware"
	repoFolders "github.com/asakaze/photo-vault/database/repo/folders"
	repoPhotos "github.com/asakaze/photo-vault/database/repo/photos"
	repoTags "github.com/asakaze/photo-vault/database/repo/tags"
	"github.com/asakaze/photo-vault/internal/auth"
	svcFolders "github.com/asakaze/photo-vault/internal/folders"
	svcPhotos "github.com/asakaze/photo-vault/internal/photos"
	svcTags "github.com/asakaze/photo-vault/internal/tags"
	"github.com/asakaze/photo-vault/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	DB              *gorm.DB
	Store           storage.Storage
	JWTService      *auth.JWTService
	LoginService    *auth.LoginService
	AuthRateLimiter *middleware.IPRateLimiter
}

// RegisterRoutes 注册所有路由
//
// The verbs and paths mirror the public API contract; everything except
// signup/signin sits behind the JWT middleware.
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	folderRepo := repoFolders.NewRepository(deps.DB)
	photoRepo := repoPhotos.NewRepository(deps.DB)
	tagRepo := repoTags.NewRepository(deps.DB)

	photoService := svcPhotos.NewService(deps.DB, photoRepo, folderRepo, tagRepo, deps.Store)
	folderService := svcFolders.NewService(deps.DB, folderRepo, photoRepo, tagRepo, deps.Store, photoService)
	tagService := svcTags.NewService(deps.DB, tagRepo, photoRepo)

	userHandler := handlerUsers.NewHandler(deps.LoginService)
	folderHandler := handlerFolders.NewHandler(folderService)
	photoHandler := handlerPhotos.NewHandler(photoService)
	tagHandler := handlerTags.NewHandler(tagService)
	uploadHandler := handlerUploads.NewHandler(deps.Store)

	healthHandler := NewHealthHandler(deps.DB)
	router.GET("/health", healthHandler.Handle)

	// 认证接口走独立限流
	authGroup := router.Group("/")
	if deps.AuthRateLimiter != nil {
		authGroup.Use(deps.AuthRateLimiter.Middleware())
	}
	{
		authGroup.POST("/signup", userHandler.SignupHandler)
		authGroup.POST("/signin", userHandler.SigninHandler)
	}

	protected := router.Group("/")
	protected.Use(middleware.AuthRequired(deps.JWTService))
	{
		protected.GET("/files/:folder_id", folderHandler.ContentsHandler)

		protected.POST("/folders", folderHandler.CreateHandler)
		protected.PUT("/folders", folderHandler.UpdateHandler)
		protected.DELETE("/folders", folderHandler.DeleteHandler)

		protected.GET("/photos", photoHandler.ListHandler)
		protected.GET("/photos/search", photoHandler.SearchHandler)
		protected.POST("/photos", photoHandler.CreateHandler)
		protected.PUT("/photos", photoHandler.UpdateHandler)
		protected.PUT("/photos/move", photoHandler.MoveHandler)
		protected.DELETE("/photos", photoHandler.DeleteHandler)

		protected.GET("/tags", tagHandler.ListHandler)
		protected.POST("/tags", tagHandler.AddHandler)
		protected.POST("/photos/tags", tagHandler.AssignHandler)

		protected.POST("/generate-presigned-url", uploadHandler.PresignHandler)
	}
}
