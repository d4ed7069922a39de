package session

import (
	"context"
	"fmt"
	"time"

	"github.com/levelup-labs/jobscout/internal/jobs"
)

// Store persists the current listing set per session identity. Save fully
// replaces whatever the session held before; Load reports absence explicitly
// instead of erroring. Implementations must round-trip the ordered listing
// set losslessly.
type Store interface {
	SaveListings(ctx context.Context, sessionID string, listings []jobs.Listing) error
	LoadListings(ctx context.Context, sessionID string) ([]jobs.Listing, bool, error)
}

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)

// RedisOptions configures the redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewStore builds the configured session store backend.
func NewStore(ctx context.Context, storeType StoreType, ttl time.Duration, opts *RedisOptions) (Store, error) {
	switch storeType {
	case InMemoryStore:
		return NewInMemory(ttl), nil
	case RedisStore:
		if opts == nil {
			return nil, fmt.Errorf("redis options are required for the redis session store")
		}
		return NewRedis(ctx, opts, ttl)
	default:
		return nil, fmt.Errorf("unsupported session store type: %s", storeType)
	}
}
