package redis

import (
	"errors"
	"time"

	"github.com/passethub/marketplace/base/ctx"
)

var (
	ErrNotFound = errors.New("redis key not found")
)

// Service is a thin typed facade over a redigo pool. Only the commands the
// cache provider and repositories need are exposed.
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) (int64, error)
	TTL(c ctx.Ctx, key string) (int64, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	Keys(c ctx.Ctx, pattern string) ([]string, error)
}
