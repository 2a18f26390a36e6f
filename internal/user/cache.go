package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "userview:"

// ViewCache はクライアント向けユーザービューを Redis に一時保存します。
// このスライスではユーザーは作成後に変更されないため、明示的な無効化は行わず
// TTL のみで鮮度を管理します。キャッシュはあくまで最適化であり、
// 障害時は呼び出し側がストアへフォールバックします。
type ViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewViewCache は ViewCache を作成します。
func NewViewCache(rdb *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get はキャッシュ済みビューを取得します。未登録の場合は (nil, nil) を返します。
func (c *ViewCache) Get(ctx context.Context, id string) (*View, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	data, err := c.rdb.Get(ctx, viewKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var view View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Set はビューを TTL 付きで保存します。
func (c *ViewCache) Set(ctx context.Context, id string, view *View) error {
	if view == nil {
		return fmt.Errorf("view is nil")
	}
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, viewKey(id), data, c.ttl).Err()
}

func viewKey(id string) string {
	return viewKeyPrefix + id
}
