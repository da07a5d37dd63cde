package cache

//go:generate mockgen -source=cache.go -destination=../../mocks/cache.go -package=mocks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/invest-tips/internal/models"
)

// PageCache - минимальный контракт кэша страниц списка идей.
type PageCache interface {
	// Get возвращает страницу и признак её наличия в кэше.
	Get(ctx context.Context, q models.TipQuery) (*models.TipPage, bool, error)
	// Set сохраняет страницу с TTL кэша.
	Set(ctx context.Context, q models.TipQuery, page *models.TipPage) error
	// Purge удаляет все страницы с префиксом кэша.
	Purge(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой - используется "tips:page:".
func NewRedisCache(redisURL, prefix string, ttl time.Duration) (PageCache, error) {
	if prefix == "" {
		prefix = "tips:page:"
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("cache: ttl must be > 0")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

// Key строит ключ страницы по каноническому JSON запроса.
// Одинаковые запросы дают одинаковый ключ.
func Key(prefix string, q models.TipQuery) (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return prefix + hex.EncodeToString(sum[:]), nil
}

func (c *redisCache) Get(ctx context.Context, q models.TipQuery) (*models.TipPage, bool, error) {
	key, err := Key(c.prefix, q)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var page models.TipPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, err
	}

	return &page, true, nil
}

func (c *redisCache) Set(ctx context.Context, q models.TipQuery, page *models.TipPage) error {
	key, err := Key(c.prefix, q)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *redisCache) Purge(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}

	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.rdb.Del(ctx, keys...).Err()
	}

	return nil
}

func (c *redisCache) Close() error { return c.rdb.Close() }
