// File: database/repository/synctoken/redis.go
package synctokenRepo

import (
	"context"
	"encoding/json"
	"fmt"

	"huddle/models"
	"huddle/utils"

	"github.com/go-redis/redis/v8"
)

type redisSyncTokenRepo struct {
	client *redis.Client
}

// NewRedisSyncTokenRepo constructs a SyncTokenRepository backed by the
// token Redis DB. Expiry is enforced by the key TTL.
func NewRedisSyncTokenRepo() SyncTokenRepository {
	return &redisSyncTokenRepo{client: utils.GetTokenCacheClient()}
}

func (r *redisSyncTokenRepo) Issue(ctx context.Context, data models.SyncTokenData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal sync token: %w", err)
	}
	key := utils.SyncTokenPrefix + data.Token
	if err := r.client.Set(ctx, key, payload, utils.SyncTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to store sync token: %w", err)
	}
	return nil
}

// Consume fetches and deletes the token in a single GETDEL, so a
// token presented twice fails the second time even under concurrent
// callbacks.
func (r *redisSyncTokenRepo) Consume(ctx context.Context, token string) (*models.SyncTokenData, error) {
	key := utils.SyncTokenPrefix + token
	payload, err := r.client.GetDel(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to consume sync token: %w", err)
	}

	var data models.SyncTokenData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync token: %w", err)
	}
	return &data, nil
}
