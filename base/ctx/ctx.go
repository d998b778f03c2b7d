package ctx

import (
	"context"
	"time"

	"github.com/passethub/marketplace/base/log"
)

// Ctx carries a context and a field-scoped logger through every layer.
// Deriving a Ctx with WithValue also binds the value as a log field, so
// anything logged downstream carries it.
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	inner, cancel := context.WithCancel(parent)
	return Ctx{Context: inner, Logger: parent.Logger}, cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	inner, cancel := context.WithTimeout(parent, timeout)
	return Ctx{Context: inner, Logger: parent.Logger}, cancel
}
