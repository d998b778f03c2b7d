package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/log"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/token"
	"github.com/passethub/marketplace/service/cache"
)

const (
	snapshotKey     = "all"
	persistTimeout  = 3 * time.Second
	persistPoolSize = 4
)

type tokenRepo struct {
	mu         sync.RWMutex
	byId       map[string]*token.Token
	cache      cache.Service
	workerPool *goroutines.Pool
}

// NewTokenRepo mirrors the ownership projection into the cache so restarts
// rehydrate instead of starting cold.
func NewTokenRepo(c bCtx.Ctx, cacheService cache.Service) token.Repo {
	r := &tokenRepo{
		byId:       map[string]*token.Token{},
		cache:      cacheService,
		workerPool: goroutines.NewPool(persistPoolSize),
	}
	r.rehydrate(c)
	return r
}

func (r *tokenRepo) rehydrate(c bCtx.Ctx) {
	snapshot := []*token.Token{}
	if err := r.cache.Get(c, snapshotKey, &snapshot); err != nil {
		if err != cache.ErrNotFound {
			c.WithField("err", err).Warn("failed to rehydrate token snapshot")
		}
		return
	}
	for _, t := range snapshot {
		r.byId[t.Id] = t
	}
}

func (r *tokenRepo) persist(c bCtx.Ctx) {
	r.mu.RLock()
	snapshot := make([]*token.Token, 0, len(r.byId))
	for _, t := range r.byId {
		cloned := *t
		snapshot = append(snapshot, &cloned)
	}
	r.mu.RUnlock()

	err := r.workerPool.ScheduleWithTimeout(persistTimeout, func() {
		if err := r.cache.Set(c, snapshotKey, &snapshot); err != nil {
			c.WithField("err", err).Error("cache.Set failed")
		}
	})
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("failed to ScheduleWithTimeout")
	}
}

func (r *tokenRepo) FindAll(c bCtx.Ctx) ([]*token.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*token.Token, 0, len(r.byId))
	for _, t := range r.byId {
		cloned := *t
		res = append(res, &cloned)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *tokenRepo) FindOne(c bCtx.Ctx, id string) (*token.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byId[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cloned := *t
	return &cloned, nil
}

func (r *tokenRepo) Insert(c bCtx.Ctx, t *token.Token) error {
	r.mu.Lock()
	if _, ok := r.byId[t.Id]; ok {
		r.mu.Unlock()
		return xerrors.Errorf("token %s already exists: %w", t.Id, domain.ErrConflict)
	}
	cloned := *t
	r.byId[t.Id] = &cloned
	r.mu.Unlock()

	r.persist(c)
	return nil
}

func (r *tokenRepo) Update(c bCtx.Ctx, t *token.Token) error {
	r.mu.Lock()
	if _, ok := r.byId[t.Id]; !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	cloned := *t
	cloned.UpdatedAt = time.Now()
	r.byId[t.Id] = &cloned
	r.mu.Unlock()

	r.persist(c)
	return nil
}

func (r *tokenRepo) Remove(c bCtx.Ctx, id string) error {
	r.mu.Lock()
	if _, ok := r.byId[id]; !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.byId, id)
	r.mu.Unlock()

	r.persist(c)
	return nil
}
