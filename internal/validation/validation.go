// Package validation は登録・ログイン入力の形式チェックを提供します。
// 副作用のない純粋関数のみで構成され、永続層のスキーマ制約に依存しません。
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// emailPattern はローカル部とドメイン部を英数字＋限定的な記号で構成し、
// 末尾ラベルを2〜3文字以上の英字に限定するメールアドレスの形式です。
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

const (
	minPasswordLength = 6
	maxNameLength     = 50
)

// PasswordResult はパスワード強度チェックの結果です。
// IsValid が false の場合、Message に満たしていない規則の説明が入ります。
type PasswordResult struct {
	IsValid bool
	Message string
}

// ValidateEmail は文字列がメールアドレスの形式に一致するかを返します。
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePassword はパスワード強度の規則（6文字以上・大文字・小文字・数字を各1つ以上）を検証します。
func ValidatePassword(s string) PasswordResult {
	if len(s) < minPasswordLength {
		return PasswordResult{Message: "Password must be at least 6 characters long"}
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return PasswordResult{Message: "Password must contain at least one uppercase letter"}
	case !hasLower:
		return PasswordResult{Message: "Password must contain at least one lowercase letter"}
	case !hasDigit:
		return PasswordResult{Message: "Password must contain at least one number"}
	}

	return PasswordResult{IsValid: true}
}

// ValidateName は表示名が空白除去後に1〜50文字であるかを返します。
func ValidateName(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && len(trimmed) <= maxNameLength
}

// NormalizeEmail はメールアドレスを保存・照合用に正規化します（空白除去＋小文字化）。
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
