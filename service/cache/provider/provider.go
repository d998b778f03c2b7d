package provider

import (
	"errors"
	"time"

	"github.com/passethub/marketplace/base/ctx"
)

var ErrNotFound = errors.New("cache: key not found")

// Provider is the raw byte store beneath the cache service. Get also
// reports the remaining ttl when the backend can answer it.
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
