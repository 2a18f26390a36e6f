// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yourusername/mail-sentry/internal/auth"
	"github.com/yourusername/mail-sentry/internal/config"
	"github.com/yourusername/mail-sentry/internal/password"
	"github.com/yourusername/mail-sentry/internal/token"
	"github.com/yourusername/mail-sentry/internal/user"
)

const requestIDHeader = "X-Request-ID"

func main() {
	// 設定の読み込み（JWT_SECRET / MONGODB_URI が無ければここで起動失敗）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// MongoDBへの接続
	client, err := connectMongo(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	// メールアドレスの一意インデックスは登録競合の最終防波堤なので起動時に必ず張る
	users := user.NewMongoRepository(client.Database(cfg.MongoDatabase))
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := users.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to ensure user indexes: %v", err)
		}
	}

	// トークンサービスの初期化（秘密鍵は空を許さない）
	tokens, err := token.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// ユーザービューキャッシュ（REDIS_URL 未設定なら無効）
	cache := setupViewCache(cfg)

	authManager := auth.NewManager(
		users,
		password.NewHasher(cfg.BcryptCost),
		tokens,
		cache,
		cfg.GinMode == gin.ReleaseMode,
	)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()
	router.Use(requestID())

	// CORSミドルウェアの設定（クッキー認証のため AllowCredentials が必須）
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
		requestIDHeader,
	}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	router.Use(cors.New(corsConfig))

	// ルーティングの設定
	setupRoutes(router, authManager, client)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// connectMongo はMongoDBに接続し、疎通を確認してからクライアントを返します。
func connectMongo(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	return client, nil
}

// setupRoutes は API グループと認証周りの配線を行います。
func setupRoutes(router *gin.Engine, authManager *auth.Manager, client *mongo.Client) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", healthHandler(client))

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authManager.Register)
			authRoutes.POST("/login", authManager.Login)
			authRoutes.POST("/logout", authManager.Logout)
			authRoutes.GET("/me", authManager.RequireAuth(), authManager.Me)
		}

		// 分析系のAPIを追加する場合はここにぶら下げる
		protected := api.Group("")
		protected.Use(authManager.RequireAuth())
		{
		}
	}
}

// healthHandler はヘルスチェックエンドポイントのハンドラーを返します。
// データベースへの疎通も合わせて報告します。
func healthHandler(client *mongo.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		database := "up"
		status := http.StatusOK
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			database = "down"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":   "ok",
			"service":  "mail-sentry-api",
			"version":  "0.1.0",
			"database": database,
		})
	}
}

// requestID はリクエスト相関用のIDを付与するミドルウェアです。
// クライアントが X-Request-ID を送ってきた場合はそれを引き継ぎます。
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
