package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/mail-sentry/internal/user"
)

// Error はハンドラー境界で HTTP ステータスに変換される分類済みエラーです。
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// エラーコードとステータスコードの対応。ここに無いコードは 400 になります。
var statusByCode = map[string]int{
	"INVALID_INPUT":       http.StatusBadRequest,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"EMAIL_TAKEN":         http.StatusConflict,
	"USER_NOT_FOUND":      http.StatusNotFound,
}

// respondWithError はエラーを分類してJSONレスポンスに変換します。
// 既知の種別以外はすべて 500 に落とし、詳細はサーバーログにのみ残します。
func respondWithError(c *gin.Context, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		status, ok := statusByCode[apiErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		})
	case errors.Is(err, user.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{
			"code":    "EMAIL_TAKEN",
			"message": "User with this email already exists",
		})
	case errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "USER_NOT_FOUND",
			"message": "User not found",
		})
	default:
		log.Printf("auth: internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Internal server error",
		})
	}
}
