package cache

import (
	"errors"
	"time"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/service/cache/provider"
)

var ErrNotFound = errors.New("cache: key not found")

// OneTimeGetter loads the value on a miss. GetByFunc stores whatever it
// returns before handing it back.
type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service is a typed cache over a raw byte provider. Keys are namespaced
// with the configured prefix before they hit the provider.
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider

	// Serialize and Deserialize default to encoding/json when unset.
	Serialize   Serializer
	Deserialize Deserializer
}
