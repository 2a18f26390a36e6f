// Package auth は認証エンドポイントとセッショントークンの受け渡しを提供します。
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/mail-sentry/internal/password"
	"github.com/yourusername/mail-sentry/internal/token"
	"github.com/yourusername/mail-sentry/internal/user"
	"github.com/yourusername/mail-sentry/internal/validation"
)

// CookieName はセッショントークンを格納するクッキーの名前です。
const CookieName = "auth-token"

// dbTimeout は1リクエスト内のストア呼び出しに対する上限時間です。
const dbTimeout = 5 * time.Second

// Manager は認証エンドポイントのハンドラー群と依存コンポーネントをまとめた構造体です。
// リクエスト間で保持する可変状態は持ちません。
type Manager struct {
	users  user.Repository
	hasher *password.Hasher
	tokens *token.Service
	cache  *user.ViewCache // nil の場合はキャッシュ無効

	secureCookies bool
}

// NewManager は認証マネージャーを作成します。
// cache は任意で、nil を渡すと /api/auth/me は常にストアを参照します。
func NewManager(users user.Repository, hasher *password.Hasher, tokens *token.Service, cache *user.ViewCache, secureCookies bool) *Manager {
	return &Manager{
		users:         users,
		hasher:        hasher,
		tokens:        tokens,
		cache:         cache,
		secureCookies: secureCookies,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register は POST /api/auth/register のハンドラーです。
func (m *Manager) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: "All fields are required"})
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: "All fields are required"})
		return
	}
	if !validation.ValidateName(req.Name) {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: "Name must be between 1 and 50 characters"})
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if !validation.ValidateEmail(email) {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: "Please enter a valid email address"})
		return
	}

	if result := validation.ValidatePassword(req.Password); !result.IsValid {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: result.Message})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	// 事前チェック。同時登録の競合はストアの一意インデックスが最終的に防ぎ、
	// Create の ErrDuplicateEmail として同じ 409 に変換されます。
	if _, err := m.users.FindByEmail(ctx, email); err == nil {
		respondWithError(c, user.ErrDuplicateEmail)
		return
	} else if !errors.Is(err, user.ErrNotFound) {
		respondWithError(c, err)
		return
	}

	hash, err := m.hasher.Hash(req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := m.users.Create(ctx, strings.TrimSpace(req.Name), email, hash)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokenString, err := m.tokens.Issue(created.ID.Hex())
	if err != nil {
		respondWithError(c, err)
		return
	}

	m.setAuthCookie(c, tokenString)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    created.View(),
		"token":   tokenString,
	})
}

// Login は POST /api/auth/login のハンドラーです。
// 「メールアドレスが未登録」と「パスワードが不一致」は区別せず、同じ 401 を返します
// （アカウント列挙を防ぐための仕様であり、メッセージを詳細化してはいけません）。
func (m *Manager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: "Email and password are required"})
		return
	}

	if req.Email == "" || req.Password == "" {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: "Email and password are required"})
		return
	}

	email := validation.NormalizeEmail(req.Email)
	if !validation.ValidateEmail(email) {
		respondWithError(c, &Error{Code: "INVALID_INPUT", Message: "Please enter a valid email address"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	found, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondWithError(c, errInvalidCredentials())
			return
		}
		respondWithError(c, err)
		return
	}

	if !m.hasher.Verify(req.Password, found.PasswordHash) {
		respondWithError(c, errInvalidCredentials())
		return
	}

	tokenString, err := m.tokens.Issue(found.ID.Hex())
	if err != nil {
		respondWithError(c, err)
		return
	}

	m.setAuthCookie(c, tokenString)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    found.View(),
		"token":   tokenString,
	})
}

// Me は GET /api/auth/me のハンドラーです。RequireAuth の後段で動作します。
// トークンが有効でもユーザーが見つからない場合は 404 を返します
// （トークン発行後にアカウントが削除されたケース）。
func (m *Manager) Me(c *gin.Context) {
	userID := c.GetString(ContextUserIDKey)
	if userID == "" {
		respondWithError(c, &Error{Code: "UNAUTHORIZED", Message: "No authentication token found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if view := m.cachedView(ctx, userID); view != nil {
		c.JSON(http.StatusOK, gin.H{"user": view})
		return
	}

	found, err := m.users.FindByID(ctx, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view := found.View()
	m.storeView(ctx, userID, view)
	c.JSON(http.StatusOK, gin.H{"user": view})
}

// Logout は POST /api/auth/logout のハンドラーです。
// トークンはサーバー側に保存されないため、クッキーを破棄するだけです。
func (m *Manager) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (m *Manager) setAuthCookie(c *gin.Context, tokenString string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, tokenString, int(m.tokens.TTL().Seconds()), "/", "", m.secureCookies, true)
}

// cachedView はキャッシュからビューを取得します。
// キャッシュの障害でリクエストを失敗させないため、エラーはログに残してミス扱いにします。
func (m *Manager) cachedView(ctx context.Context, userID string) *user.View {
	if m.cache == nil {
		return nil
	}
	view, err := m.cache.Get(ctx, userID)
	if err != nil {
		log.Printf("auth: user view cache get failed: %v", err)
		return nil
	}
	return view
}

func (m *Manager) storeView(ctx context.Context, userID string, view *user.View) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Set(ctx, userID, view); err != nil {
		log.Printf("auth: user view cache set failed: %v", err)
	}
}

func errInvalidCredentials() *Error {
	return &Error{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), dbTimeout)
}
