// Package token はセッショントークン（JWT）の発行と検証を提供します。
// トークンはサーバー側に保存されず、失効は有効期限切れのみです。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL はセッショントークンの既定の有効期間です。
const DefaultTTL = 7 * 24 * time.Hour

// Claims はトークンに埋め込む情報です。標準クレームに加えてユーザーIDを持ちます。
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Service はプロセス全体で共有する署名鍵と有効期間を保持します。
// 起動後は読み取り専用であり、並行利用しても安全です。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService はトークンサービスを作成します。
// 署名鍵が空の場合はエラーを返します（起動時に致命的エラーとして扱う想定）。
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue はユーザーIDと有効期限を埋め込んだ署名付きトークンを発行します。
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify はトークンの署名と有効期限を検証し、有効な場合のみクレームを返します。
// 改ざん・期限切れ・形式不正はすべて nil を返します。呼び出し側は nil を
// 「未認証」として扱い、エラーとして伝播させません。
func (s *Service) Verify(tokenString string) *Claims {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil
	}

	return claims
}

// TTL はトークンの有効期間を返します。クッキーの MaxAge に利用します。
func (s *Service) TTL() time.Duration {
	return s.ttl
}
