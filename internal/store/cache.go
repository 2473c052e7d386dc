package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"CoinCast/internal/model"

	"github.com/redis/go-redis/v9"
)

const tickersCacheKey = "coincast:tickers"

// CachedStore keeps the ticker list in Redis. Series reads always go to the
// underlying store.
type CachedStore struct {
	Store
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// NewCachedStore wraps inner with a Redis ticker cache.
func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: inner, client: client, ttl: ttl}
}

// ListTickers serves the ticker list from Redis, loading it on a miss.
// Redis failures fall back to the underlying store.
func (c *CachedStore) ListTickers(ctx context.Context) ([]string, error) {
	data, err := c.client.Get(ctx, tickersCacheKey).Bytes()
	switch {
	case err == nil:
		var tickers []string
		if err := json.Unmarshal(data, &tickers); err == nil {
			return tickers, nil
		}
		log.Printf("[WARN] discarding malformed ticker cache entry")
	case !errors.Is(err, redis.Nil):
		log.Printf("[WARN] ticker cache read failed: %v", err)
	}
	return c.Refresh(ctx)
}

// Refresh reloads the ticker list from the underlying store into Redis.
func (c *CachedStore) Refresh(ctx context.Context) ([]string, error) {
	tickers, err := c.Store.ListTickers(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(tickers)
	if err != nil {
		return nil, fmt.Errorf("marshal tickers: %w", err)
	}
	if err := c.client.Set(ctx, tickersCacheKey, data, c.ttl).Err(); err != nil {
		log.Printf("[WARN] ticker cache write failed: %v", err)
	}
	return tickers, nil
}

// FetchSeries is not cached.
func (c *CachedStore) FetchSeries(ctx context.Context, ticker string, metric model.MetricKind) (model.TimeSeries, error) {
	return c.Store.FetchSeries(ctx, ticker, metric)
}

// UpsertRows writes through and drops the cached ticker list.
func (c *CachedStore) UpsertRows(ctx context.Context, rows []model.CoinRow) error {
	if err := c.Store.UpsertRows(ctx, rows); err != nil {
		return err
	}
	if err := c.client.Del(ctx, tickersCacheKey).Err(); err != nil {
		log.Printf("[WARN] ticker cache invalidation failed: %v", err)
	}
	return nil
}

// Close closes the Redis client and the underlying store.
func (c *CachedStore) Close() error {
	cerr := c.client.Close()
	if err := c.Store.Close(); err != nil {
		return err
	}
	return cerr
}
