// Package events は分析イベントを Redis PUB/SUB へ送信するアダプタです。
package events

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ogurasousui/placement-crm/internal/core/analytics"
)

type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
}

// RedisPublisher は analytics.Publisher の Redis 実装です。
type RedisPublisher struct {
	client publishClient
}

var _ analytics.Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher は RedisPublisher を生成します。
func NewRedisPublisher(client publishClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish は payload を JSON にエンコードしてチャネルへ送信します。
func (p *RedisPublisher) Publish(ctx context.Context, channel analytics.Channel, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("events: encode %s payload: %w", channel, err)
	}

	if err := p.client.Publish(ctx, string(channel), body).Err(); err != nil {
		return fmt.Errorf("events: publish %s: %w", channel, err)
	}
	return nil
}
