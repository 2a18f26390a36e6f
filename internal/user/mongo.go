package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "users"

// MongoRepository は MongoDB を使った Repository の実装です。
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository は MongoRepository を作成します。
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

// EnsureIndexes はメールアドレスの一意インデックスを作成します。
// チェック後INSERTの競合に対する最終的な防波堤はこのインデックスです。
// 起動時に一度呼び出します（既存のインデックスがあれば何もしません）。
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create は新しいユーザーを挿入します。
func (r *MongoRepository) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		JoinDate:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return u, nil
}

// FindByEmail は正規化済みメールアドレスでユーザーを検索します。
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを検索します。
// パスワードハッシュは射影で除外し、アプリケーション側に取り込みません。
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var u User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
