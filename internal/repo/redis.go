package repo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// Allow counts a hit against key in a fixed window and reports whether the
// count is still within limit. SETNX creates the key together with its TTL
// and INCR keeps that TTL, so a counter can never outlive its window.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	var n *redis.IntCmd
	_, err := r.C.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.SetNX(ctx, key, 0, window)
		n = p.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return false, err
	}
	return n.Val() <= int64(limit), nil
}
