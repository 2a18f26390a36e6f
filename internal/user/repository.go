package user

import (
	"context"
	"errors"
)

var (
	// ErrNotFound は該当するユーザーが存在しない場合に返されます。
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail は同じメールアドレスのユーザーが既に存在する場合に返されます。
	// 事前チェックをすり抜けた並行登録でも、ストアの一意インデックス違反を
	// この条件に変換します。
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository はユーザーレコードの永続化操作を定義します。
// メールアドレスは呼び出し側で正規化（小文字化）済みであることを前提とします。
type Repository interface {
	// Create は新しいユーザーを作成します。カウンターは0、IsVerified は false、
	// JoinDate は作成時刻で初期化されます。メール重複時は ErrDuplicateEmail を返します。
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)

	// FindByEmail は正規化済みメールアドレスでユーザーを検索します。
	// 見つからない場合は ErrNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID はIDでユーザーを検索します。パスワードハッシュは取得対象から
	// 除外されます（返り値の PasswordHash は常に空）。
	// 見つからない場合・IDの形式が不正な場合は ErrNotFound を返します。
	FindByID(ctx context.Context, id string) (*User, error)
}
