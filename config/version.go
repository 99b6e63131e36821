package config

var (
	Version    string = "dev"
	CommitHash string = ""
)

// IsDevelopment 判断是否为开发环境
func IsDevelopment() bool {
	return Version == "dev"
}
