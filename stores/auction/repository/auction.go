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
	"github.com/passethub/marketplace/domain/auction"
	"github.com/passethub/marketplace/service/cache"
)

const (
	snapshotKey     = "all"
	persistTimeout  = 3 * time.Second
	persistPoolSize = 4
)

type auctionRepo struct {
	mu         sync.RWMutex
	byId       map[string]*auction.Auction
	cache      cache.Service
	workerPool *goroutines.Pool
}

// NewAuctionRepo keeps the projection in memory and mirrors every mutation
// into the cache so a restart can rehydrate instead of starting cold.
func NewAuctionRepo(c bCtx.Ctx, cacheService cache.Service) auction.Repo {
	r := &auctionRepo{
		byId:       map[string]*auction.Auction{},
		cache:      cacheService,
		workerPool: goroutines.NewPool(persistPoolSize),
	}
	r.rehydrate(c)
	return r
}

func (r *auctionRepo) rehydrate(c bCtx.Ctx) {
	snapshot := []*auction.Auction{}
	if err := r.cache.Get(c, snapshotKey, &snapshot); err != nil {
		if err != cache.ErrNotFound {
			c.WithField("err", err).Warn("failed to rehydrate auction snapshot")
		}
		return
	}
	for _, a := range snapshot {
		r.byId[a.Id] = a
	}
}

func (r *auctionRepo) persist(c bCtx.Ctx) {
	r.mu.RLock()
	snapshot := make([]*auction.Auction, 0, len(r.byId))
	for _, a := range r.byId {
		cloned := *a
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

func (r *auctionRepo) FindAll(c bCtx.Ctx) ([]*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*auction.Auction, 0, len(r.byId))
	for _, a := range r.byId {
		cloned := *a
		res = append(res, &cloned)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *auctionRepo) FindOne(c bCtx.Ctx, id string) (*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byId[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cloned := *a
	return &cloned, nil
}

func (r *auctionRepo) FindOneByContractId(c bCtx.Ctx, id domain.AuctionId) (*auction.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byId {
		if a.ContractAuctionId != nil && *a.ContractAuctionId == id {
			cloned := *a
			return &cloned, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *auctionRepo) Insert(c bCtx.Ctx, a *auction.Auction) error {
	r.mu.Lock()
	if _, ok := r.byId[a.Id]; ok {
		r.mu.Unlock()
		return xerrors.Errorf("auction %s already exists: %w", a.Id, domain.ErrConflict)
	}
	cloned := *a
	r.byId[a.Id] = &cloned
	r.mu.Unlock()

	r.persist(c)
	return nil
}

func (r *auctionRepo) Update(c bCtx.Ctx, a *auction.Auction) error {
	r.mu.Lock()
	if _, ok := r.byId[a.Id]; !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	cloned := *a
	cloned.UpdatedAt = time.Now()
	r.byId[a.Id] = &cloned
	r.mu.Unlock()

	r.persist(c)
	return nil
}
