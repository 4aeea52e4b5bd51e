package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/Skotchmaster/furnico/pkg/logging"
)

const (
	productPrefix = "product:detail:"
	listPrefix    = "products:v"
	versionKey    = "products:version"
)

// Products caches product detail and list responses. List entries are keyed
// by a version counter so one INCR invalidates every page.
type Products interface {
	GetProduct(ctx context.Context, id uuid.UUID, dst any) bool
	SetProduct(ctx context.Context, id uuid.UUID, v any)
	GetList(ctx context.Context, key string, dst any) bool
	SetList(ctx context.Context, key string, v any)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func Connect(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return New(client, ttl), nil
}

func New(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) GetProduct(ctx context.Context, id uuid.UUID, dst any) bool {
	return r.get(ctx, productPrefix+id.String(), dst)
}

func (r *Redis) SetProduct(ctx context.Context, id uuid.UUID, v any) {
	r.set(ctx, productPrefix+id.String(), v)
}

func (r *Redis) GetList(ctx context.Context, key string, dst any) bool {
	v, err := r.version(ctx)
	if err != nil {
		return false
	}
	return r.get(ctx, listKey(v, key), dst)
}

func (r *Redis) SetList(ctx context.Context, key string, val any) {
	v, err := r.version(ctx)
	if err != nil {
		return
	}
	r.set(ctx, listKey(v, key), val)
}

func (r *Redis) Invalidate(ctx context.Context, id uuid.UUID) {
	l := logging.FromContext(ctx)
	if err := r.client.Incr(ctx, versionKey).Err(); err != nil {
		l.Error("cache_invalidate_failed", "error", err)
	}
	if id != uuid.Nil {
		if err := r.client.Del(ctx, productPrefix+id.String()).Err(); err != nil {
			l.Warn("cache_delete_failed", "product_id", id, "error", err)
		}
	}
}

func (r *Redis) version(ctx context.Context) (int64, error) {
	v, err := r.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func listKey(version int64, key string) string {
	return fmt.Sprintf("%s%d:%s", listPrefix, version, key)
}

func (r *Redis) get(ctx context.Context, key string, dst any) bool {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.FromContext(ctx).Warn("cache_get_failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		logging.FromContext(ctx).Warn("cache_decode_failed", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Redis) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logging.FromContext(ctx).Warn("cache_encode_failed", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logging.FromContext(ctx).Warn("cache_set_failed", "key", key, "error", err)
	}
}
