package core

import (
	"net/http"
	"time"

	"github.com/asakaze/photo-vault/api/middleware"
	"github.com/asakaze/photo-vault/config"
	repoFolders "github.com/asakaze/photo-vault/database/repo/folders"
	repoUsers "github.com/asakaze/photo-vault/database/repo/users"
	"github.com/asakaze/photo-vault/internal/auth"
	"github.com/asakaze/photo-vault/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ServerDependencies 服务器依赖项
type ServerDependencies struct {
	DB    *gorm.DB
	Store storage.Storage
}

// 启动gin
func setupRouter(deps *ServerDependencies) (*gin.Engine, func(), error) {
	cfg := config.Get()
	router := gin.New()

	// 全局中间件
	// 仅在开发版本时启用 gin 日志
	if config.IsDevelopment() {
		router.Use(gin.Logger())
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 速率限制：认证接口单独限流
	authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		authRateLimiter.Stop()
	}

	jwtService, err := auth.NewJWTService(cfg.AuthJWTSecret, cfg.AuthTokenExpires)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	userRepo := repoUsers.NewRepository(deps.DB)
	folderRepo := repoFolders.NewRepository(deps.DB)
	loginService := auth.NewLoginService(deps.DB, userRepo, folderRepo, jwtService)

	RegisterRoutes(router, &RouterDependencies{
		DB:              deps.DB,
		Store:           deps.Store,
		JWTService:      jwtService,
		LoginService:    loginService,
		AuthRateLimiter: authRateLimiter,
	})

	return router, cleanup, nil
}

// StartServer 创建 http.Server
func StartServer(deps *ServerDependencies) (*http.Server, func(), error) {
	cfg := config.Get()
	router, clean, err := setupRouter(deps)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean, nil
}
