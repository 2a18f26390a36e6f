// Package user はユーザーレコードのドメインモデルと永続化を提供します。
package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User は永続化されるユーザーレコードです。
// Email は保存前に小文字化されており、コレクション上で一意です。
// PasswordHash は API レスポンスに含めてはいけません。
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password"`
	JoinDate      time.Time          `bson:"joinDate"`
	TotalAnalyses int                `bson:"totalAnalyses"`
	ScamsDetected int                `bson:"scamsDetected"`
	SafeMails     int                `bson:"safeMails"`
	Streak        int                `bson:"streak"`
	IsVerified    bool               `bson:"isVerified"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// View はクライアントへ返して良いユーザー情報のサブセットです。
// パスワードハッシュは型として持たないため、誤って直列化される余地がありません。
type View struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	JoinDate      time.Time `json:"joinDate"`
	TotalAnalyses int       `json:"totalAnalyses"`
	ScamsDetected int       `json:"scamsDetected"`
	SafeMails     int       `json:"safeMails"`
	Streak        int       `json:"streak"`
	IsVerified    bool      `json:"isVerified"`
}

// View はレコードからクライアント向けビューを作成します。
func (u *User) View() *View {
	return &View{
		ID:            u.ID.Hex(),
		Name:          u.Name,
		Email:         u.Email,
		JoinDate:      u.JoinDate,
		TotalAnalyses: u.TotalAnalyses,
		ScamsDetected: u.ScamsDetected,
		SafeMails:     u.SafeMails,
		Streak:        u.Streak,
		IsVerified:    u.IsVerified,
	}
}
