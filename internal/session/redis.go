package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/levelup-labs/jobscout/internal/jobs"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a redis-backed session store. The connection is verified
// with a ping before the store is handed out.
func NewRedis(ctx context.Context, opts *RedisOptions, ttl time.Duration) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed (%s): %w", opts.Addr, err)
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func listingsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:listings", sessionID)
}

func (s *redisStore) SaveListings(ctx context.Context, sessionID string, listings []jobs.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("marshal listings: %w", err)
	}

	if err := s.client.Set(ctx, listingsKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save listings: %w", err)
	}

	return nil
}

func (s *redisStore) LoadListings(ctx context.Context, sessionID string) ([]jobs.Listing, bool, error) {
	val, err := s.client.Get(ctx, listingsKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load listings: %w", err)
	}

	var listings []jobs.Listing
	if err := json.Unmarshal([]byte(val), &listings); err != nil {
		return nil, false, fmt.Errorf("unmarshal listings: %w", err)
	}

	return listings, true, nil
}
