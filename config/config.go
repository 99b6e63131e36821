package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config is the flat process configuration, loaded once at startup from
// .env / environment variables.
type Config struct {
	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerDomain       string        `mapstructure:"server_domain"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// 数据库配置
	DBType            string `mapstructure:"db_type"`
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBFilePath        string `mapstructure:"db_file_path"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// 认证配置
	AuthJWTSecret    string        `mapstructure:"auth_jwt_secret"`
	AuthTokenExpires time.Duration `mapstructure:"auth_token_expires"`

	// 存储配置
	StorageType string `mapstructure:"storage_type"`

	StorageLocalPath string `mapstructure:"storage_local_path"`

	StorageMinioEndpoint  string `mapstructure:"storage_minio_endpoint"`
	StorageMinioAccessKey string `mapstructure:"storage_minio_access_key"`
	StorageMinioSecretKey string `mapstructure:"storage_minio_secret_key"`
	StorageMinioBucket    string `mapstructure:"storage_minio_bucket"`
	StorageMinioUseSSL    bool   `mapstructure:"storage_minio_use_ssl"`
	StorageMinioRegion    string `mapstructure:"storage_minio_region"`

	StorageWebDAVURL      string `mapstructure:"storage_webdav_url"`
	StorageWebDAVUsername string `mapstructure:"storage_webdav_username"`
	StorageWebDAVPassword string `mapstructure:"storage_webdav_password"`
	StorageWebDAVRoot     string `mapstructure:"storage_webdav_root"`

	// 限流配置
	RateLimitAuthRPS    float64       `mapstructure:"rate_limit_auth_rps"`
	RateLimitAuthBurst  int           `mapstructure:"rate_limit_auth_burst"`
	RateLimitExpireTime time.Duration `mapstructure:"rate_limit_expire_time"`
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}
}

// setDefaults 设置默认值
func setDefaults() {
	// 服务器配置默认值
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_domain", "")
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")

	// 数据库配置默认值
	viper.SetDefault("db_type", "sqlite")
	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "photo-vault")
	viper.SetDefault("db_file_path", "")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	// 认证配置默认值（密钥没有默认值，必须注入）
	viper.SetDefault("auth_jwt_secret", "")
	viper.SetDefault("auth_token_expires", "24h")

	// 存储配置默认值
	viper.SetDefault("storage_type", "local")
	viper.SetDefault("storage_local_path", "./data/photos")
	viper.SetDefault("storage_minio_endpoint", "")
	viper.SetDefault("storage_minio_access_key", "")
	viper.SetDefault("storage_minio_secret_key", "")
	viper.SetDefault("storage_minio_bucket", "photo-vault")
	viper.SetDefault("storage_minio_use_ssl", false)
	viper.SetDefault("storage_minio_region", "us-west-2")
	viper.SetDefault("storage_webdav_url", "")
	viper.SetDefault("storage_webdav_username", "")
	viper.SetDefault("storage_webdav_password", "")
	viper.SetDefault("storage_webdav_root", "")

	// 限流配置默认值
	viper.SetDefault("rate_limit_auth_rps", 0.5)
	viper.SetDefault("rate_limit_auth_burst", 5)
	viper.SetDefault("rate_limit_expire_time", "10m")
}

// Addr 返回监听地址，格式为 "host:port"
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}
