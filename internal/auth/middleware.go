package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey は、ハンドラー間で認証済みユーザーIDを共有するためのキーです。
const ContextUserIDKey = "auth.userID"

// RequireAuth はクッキーのセッショントークンを検証するミドルウェアを返します。
// クッキーが無い・署名が不正・期限切れの場合はすべて 401 で打ち切ります。
func (m *Manager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "No authentication token found",
			})
			return
		}

		claims := m.tokens.Verify(tokenString)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
