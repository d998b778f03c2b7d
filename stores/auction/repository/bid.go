package repository

import (
	"sort"
	"sync"

	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/domain/auction"
)

type bidRepo struct {
	mu        sync.RWMutex
	byAuction map[string][]*auction.Bid
}

// NewBidRepo keeps per-auction bid history in memory. Bids are append-only
// so there is nothing to reconcile on restart; history rebuilds from chain
// events when needed.
func NewBidRepo() auction.BidRepo {
	return &bidRepo{
		byAuction: map[string][]*auction.Bid{},
	}
}

// FindByAuction returns the auction's bids newest first.
func (r *bidRepo) FindByAuction(c bCtx.Ctx, auctionId string) ([]*auction.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := r.byAuction[auctionId]
	res := make([]*auction.Bid, 0, len(bids))
	for _, b := range bids {
		cloned := *b
		res = append(res, &cloned)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Timestamp.After(res[j].Timestamp)
	})
	return res, nil
}

func (r *bidRepo) Insert(c bCtx.Ctx, b *auction.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cloned := *b
	r.byAuction[b.AuctionId] = append(r.byAuction[b.AuctionId], &cloned)
	return nil
}
