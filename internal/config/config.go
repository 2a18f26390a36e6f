// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// データベース設定
	MongoURI      string // MongoDB接続文字列
	MongoDatabase string // 使用するデータベース名

	// 認証設定
	JWTSecret     string // セッショントークン署名用の秘密鍵
	TokenTTLHours int    // セッショントークンの有効期間（時間）
	BcryptCost    int    // bcryptのコストパラメータ

	// キャッシュ設定（任意）
	RedisURL            string // ユーザービューキャッシュ用Redis接続URL（空なら無効）
	UserCacheTTLSeconds int    // キャッシュエントリの有効期間（秒）
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		// データベース設定
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "mail-sentry"),

		// 認証設定
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTLHours: getEnvAsInt("TOKEN_TTL_HOURS", 168), // 7日
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 10),

		// キャッシュ設定
		RedisURL:            getEnv("REDIS_URL", ""),
		UserCacheTTLSeconds: getEnvAsInt("USER_CACHE_TTL_SECONDS", 60),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// JWT_SECRET と MONGODB_URI はモードに関わらず必須です（欠けたまま起動させない）。
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if c.RedisURL != "" && c.UserCacheTTLSeconds <= 0 {
		return fmt.Errorf("USER_CACHE_TTL_SECONDS must be positive when REDIS_URL is set")
	}
	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
