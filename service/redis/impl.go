package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/log"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2
)

type redImpl struct {
	name string
	pool *redis.Pool
}

func New(name string, pool *redis.Pool) Service {
	return &redImpl{
		name: name,
		pool: pool,
	}
}

func (r *redImpl) connDo(c ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn := r.pool.Get()
	defer conn.Close()

	if err := conn.Err(); err != nil {
		c.WithFields(log.Fields{
			"cluster": r.name,
			"err":     err,
		}).Error("redis conn failed")
		return nil, err
	}
	return conn.Do(commandName, args...)
}

func (r *redImpl) Get(c ctx.Ctx, key string) ([]byte, error) {
	res, err := redis.Bytes(r.connDo(c, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Get failed")
		return nil, err
	}
	return res, nil
}

func (r *redImpl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	var err error
	if ttl > 0 {
		_, err = r.connDo(c, "SET", key, value, "PX", int64(ttl/time.Millisecond))
	} else {
		_, err = r.connDo(c, "SET", key, value)
	}
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Set failed")
		return err
	}
	return nil
}

func (r *redImpl) Del(c ctx.Ctx, key string) (int64, error) {
	res, err := redis.Int64(r.connDo(c, "DEL", key))
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Del failed")
		return 0, err
	}
	return res, nil
}

func (r *redImpl) TTL(c ctx.Ctx, key string) (int64, error) {
	res, err := redis.Int64(r.connDo(c, "TTL", key))
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.TTL failed")
		return 0, err
	}
	if res == retTTLNoKey {
		return 0, ErrNotFound
	}
	return res, nil
}

func (r *redImpl) Exists(c ctx.Ctx, key string) (bool, error) {
	res, err := redis.Int(r.connDo(c, "EXISTS", key))
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis.Exists failed")
		return false, err
	}
	return res == 1, nil
}

func (r *redImpl) Keys(c ctx.Ctx, pattern string) ([]string, error) {
	res, err := redis.Strings(r.connDo(c, "KEYS", pattern))
	if err != nil {
		c.WithField("err", err).WithField("pattern", pattern).Error("redis.Keys failed")
		return nil, err
	}
	return res, nil
}
