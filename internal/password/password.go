// Package password はパスワードの一方向ハッシュ化と検証を提供します。
package password

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidInput は空または空白のみのパスワードをハッシュ化しようとした場合に返されます。
var ErrInvalidInput = errors.New("password must not be empty")

// Hasher は bcrypt によるハッシュ生成と照合を行います。
// コストは起動時に設定し、以降は変更しません。
type Hasher struct {
	cost int
}

// NewHasher は指定されたコストの Hasher を作成します。
// コストが bcrypt の許容範囲外の場合はデフォルトコストに丸めます。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文パスワードから bcrypt ハッシュを生成します。
// ソルトはハッシュに埋め込まれるため、呼び出し側での管理は不要です。
func (h *Hasher) Hash(plaintext string) (string, error) {
	if strings.TrimSpace(plaintext) == "" {
		return "", ErrInvalidInput
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify は平文パスワードが保存済みハッシュと一致するかを返します。
// 照合は bcrypt 内部の定数時間比較に委ねます。
// 保存済みハッシュが壊れている場合もエラーにはせず false を返します（fail closed）。
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
