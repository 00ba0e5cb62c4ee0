package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/almahera/storefront/cart/pkg/response"
	"github.com/almahera/storefront/internal/log"
)

var ErrCacheMiss = errors.New("cart not in cache")

const cartTTL = time.Hour

type CartCache interface {
	Get(c context.Context, userID uuid.UUID) (response.Cart, error)
	Set(c context.Context, userID uuid.UUID, cart response.Cart) error
	Delete(c context.Context, userID uuid.UUID) error
}

type RedisCartCache struct {
	client *redis.Client
}

func NewRedisCartCache(client *redis.Client) *RedisCartCache {
	return &RedisCartCache{client: client}
}

func cartKey(userID uuid.UUID) string {
	return fmt.Sprintf("carts:user:%s", userID.String())
}

func (r *RedisCartCache) Get(c context.Context, userID uuid.UUID) (response.Cart, error) {
	key := cartKey(userID)
	val, err := r.client.Get(c, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return response.Cart{}, ErrCacheMiss
		}
		return response.Cart{}, fmt.Errorf("failed getting cache key=%s with error=%w", key, err)
	}
	cart := response.Cart{}
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return response.Cart{}, fmt.Errorf("failed unmarshaling cache key=%s with error=%w", key, err)
	}
	return cart, nil
}

func (r *RedisCartCache) Set(c context.Context, userID uuid.UUID, cart response.Cart) error {
	key := cartKey(userID)
	val, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed marshaling cache key=%s with error=%w", key, err)
	}
	if err := r.client.Set(c, key, val, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed setting cache key=%s with error=%w", key, err)
	}
	return nil
}

func (r *RedisCartCache) Delete(c context.Context, userID uuid.UUID) error {
	key := cartKey(userID)
	if err := r.client.Del(c, key).Err(); err != nil {
		zerolog.Ctx(c).
			Error().
			Err(err).
			Str(log.KeyCacheKey, key).
			Msgf("failed deleting cache key=%s", key)
		return fmt.Errorf("failed deleting cache key=%s with error=%w", key, err)
	}
	return nil
}
