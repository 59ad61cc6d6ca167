// Package redis is the shared cache of remote API responses. Every site
// instance pointed at the same server answers from one warm copy.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "carsawa:api:"

type Responses struct {
	client *goredis.Client
}

func New(address, password string) *Responses {
	return &Responses{client: goredis.NewClient(&goredis.Options{
		Addr:         address,
		Password:     password,
		DialTimeout:  2 * time.Second, // How long to wait when establishing connection
		ReadTimeout:  1 * time.Second, // How long to wait for response
		WriteTimeout: 1 * time.Second, // How long to wait when sending data
	})}
}

// Get returns the cached body for key. A miss is not an error.
func (r *Responses) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return body, true, nil
}

func (r *Responses) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, keyPrefix+key, body, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Responses) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *Responses) Close() error {
	return r.client.Close()
}
