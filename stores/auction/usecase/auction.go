package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/keymutex"
	"github.com/passethub/marketplace/base/log"
	"github.com/passethub/marketplace/base/ptr"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/auction"
	"github.com/passethub/marketplace/domain/token"
	"github.com/passethub/marketplace/domain/wallet"
	"github.com/passethub/marketplace/service/chain/contract"
)

var timeNow = time.Now

type AuctionUseCaseCfg struct {
	AuctionRepo     auction.Repo
	BidRepo         auction.BidRepo
	TokenUseCase    token.UseCase
	Marketplace     contract.Marketplace
	Session         wallet.Session
	Policy          auction.Policy
	ContractAddress domain.Address
}

type impl struct {
	auctionRepo     auction.Repo
	bidRepo         auction.BidRepo
	tokenUseCase    token.UseCase
	marketplace     contract.Marketplace
	session         wallet.Session
	policy          auction.Policy
	contractAddress domain.Address

	// locks serializes mutations per local auction id. Concurrent operations
	// against different auctions do not contend.
	locks *keymutex.KeyMutex
}

func NewAuctionUseCase(cfg *AuctionUseCaseCfg) auction.UseCase {
	return &impl{
		auctionRepo:     cfg.AuctionRepo,
		bidRepo:         cfg.BidRepo,
		tokenUseCase:    cfg.TokenUseCase,
		marketplace:     cfg.Marketplace,
		session:         cfg.Session,
		policy:          cfg.Policy,
		contractAddress: cfg.ContractAddress,
		locks:           keymutex.New(),
	}
}

// classifyTxError maps gateway errors onto the typed failure set. An
// unobserved confirmation is the only kind whose outcome is unknown.
func classifyTxError(op string, err error) error {
	switch {
	case errors.Is(err, contract.ErrConfirmationTimeout):
		return auction.NewFailure(auction.FailureConfirmationUnknown, op, "transaction confirmation timed out", err)
	case errors.Is(err, contract.ErrTransactionRejected):
		return auction.NewFailure(auction.FailureConfirmation, op, "transaction reverted", err)
	case errors.Is(err, contract.ErrInsufficientValue):
		return auction.NewFailure(auction.FailureSubmission, op, "insufficient value attached", err)
	default:
		return auction.NewFailure(auction.FailureSubmission, op, err.Error(), err)
	}
}

// CreateAuction validates locally, approves the marketplace for the token,
// submits the listing and records the projection only after the chain
// confirms it. Nothing is recorded on any failure path.
func (im *impl) CreateAuction(c bCtx.Ctx, data auction.CreateAuctionData, seller domain.Address) (*auction.Auction, error) {
	if err := auction.ValidateCreate(data); err != nil {
		return nil, err
	}
	if _, err := im.session.RequireSigner(c); err != nil {
		return nil, err
	}

	approveTx, err := im.marketplace.Approve(c, im.contractAddress, data.ContractTokenId)
	if err != nil {
		c.WithFields(log.Fields{
			"tokenId": data.ContractTokenId,
			"err":     err,
		}).Error("marketplace.Approve failed")
		return nil, classifyTxError("approve", err)
	}
	if _, err := approveTx.Wait(c); err != nil {
		c.WithFields(log.Fields{
			"tokenId": data.ContractTokenId,
			"tx":      approveTx.Hash(),
			"err":     err,
		}).Error("approve confirmation failed")
		return nil, classifyTxError("approve", err)
	}

	buyNow := decimal.Zero
	if data.EnableBuyNow {
		buyNow = data.BuyNowPrice
	}
	createTx, err := im.marketplace.CreateAuction(c, data.ContractTokenId, data.StartPrice, buyNow, data.Duration)
	if err != nil {
		c.WithFields(log.Fields{
			"tokenId": data.ContractTokenId,
			"err":     err,
		}).Error("marketplace.CreateAuction failed")
		return nil, classifyTxError("createAuction", err)
	}
	receipt, err := createTx.Wait(c)
	if err != nil {
		c.WithFields(log.Fields{
			"tokenId": data.ContractTokenId,
			"tx":      createTx.Hash(),
			"err":     err,
		}).Error("createAuction confirmation failed")
		return nil, classifyTxError("createAuction", err)
	}

	contractAuctionId, err := contract.ExtractAuctionId(receipt)
	if err != nil {
		c.WithField("err", err).Error("failed to extract auction id from receipt")
		return nil, classifyTxError("createAuction", err)
	}

	now := timeNow()
	a := &auction.Auction{
		Id:                uuid.New().String(),
		ContractAuctionId: &contractAuctionId,
		TokenId:           data.TokenId,
		ContractTokenId:   &data.ContractTokenId,
		Seller:            seller.ToLower(),
		StartPrice:        data.StartPrice,
		CurrentPrice:      data.StartPrice,
		StartTime:         now,
		EndTime:           now.Add(data.Duration),
		Status:            auction.StatusActive,
		TxHash:            createTx.Hash(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if data.EnableReserve {
		a.ReservePrice = ptr.Decimal(data.ReservePrice)
	}
	if data.EnableBuyNow {
		a.BuyNowPrice = ptr.Decimal(data.BuyNowPrice)
	}

	if err := im.auctionRepo.Insert(c, a); err != nil {
		c.WithField("err", err).Error("auctionRepo.Insert failed")
		return nil, err
	}

	// link the local token snapshot onto the listing when we have one
	if im.tokenUseCase != nil {
		if t, err := im.tokenUseCase.GetTokenById(c, a.TokenId); err == nil {
			if err := im.AttachToken(c, a.Id, t); err == nil {
				a.Token = t
			}
		}
	}
	return a, nil
}

func (im *impl) GetAuctionById(c bCtx.Ctx, id string) (*auction.Auction, error) {
	return im.auctionRepo.FindOne(c, id)
}

// GetActiveAuctions answers from the projection alone, no chain round trip.
func (im *impl) GetActiveAuctions(c bCtx.Ctx) ([]*auction.Auction, error) {
	all, err := im.auctionRepo.FindAll(c)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	res := make([]*auction.Auction, 0, len(all))
	for _, a := range all {
		if a.Status == auction.StatusActive && a.EndTime.After(now) {
			res = append(res, a)
		}
	}
	return res, nil
}

func (im *impl) GetUserAuctions(c bCtx.Ctx, user domain.Address) ([]*auction.Auction, error) {
	all, err := im.auctionRepo.FindAll(c)
	if err != nil {
		return nil, err
	}
	res := make([]*auction.Auction, 0, len(all))
	for _, a := range all {
		if a.Seller.Equals(user) {
			res = append(res, a)
		}
	}
	return res, nil
}

func (im *impl) GetBidsForAuction(c bCtx.Ctx, auctionId string) ([]*auction.Bid, error) {
	if _, err := im.auctionRepo.FindOne(c, auctionId); err != nil {
		return nil, err
	}
	return im.bidRepo.FindByAuction(c, auctionId)
}

// PlaceBid enforces the increment and balance preconditions before any chain
// interaction, then applies price, bidder and bid count as one update only
// after the chain confirms the bid.
func (im *impl) PlaceBid(c bCtx.Ctx, auctionId string, bidder domain.Address, amount decimal.Decimal) error {
	im.locks.Lock(auctionId)
	defer im.locks.Unlock(auctionId)

	a, err := im.auctionRepo.FindOne(c, auctionId)
	if err != nil {
		return err
	}
	if a.IsTerminal() || !a.EndTime.After(timeNow()) {
		return auction.NewFailure(auction.FailureValidation, "placeBid", "auction is not active", domain.ErrInvalidState)
	}
	if a.ContractAuctionId == nil {
		return xerrors.Errorf("auction %s has no confirmed chain id: %w", auctionId, domain.ErrNotLinked)
	}
	if a.Seller.Equals(bidder) {
		return auction.NewFailure(auction.FailureValidation, "placeBid", "seller cannot bid on own auction", domain.ErrBadParamInput)
	}

	balance, err := im.session.Balance(c)
	if err != nil {
		return err
	}
	if !im.policy.IsValidBid(a, amount, balance) {
		minimum := im.policy.MinimumNextBid(a)
		if amount.LessThan(minimum) {
			return auction.NewFailure(auction.FailureValidation, "placeBid",
				"bid "+amount.String()+" below minimum "+minimum.String(), domain.ErrBadParamInput)
		}
		return auction.NewFailure(auction.FailureValidation, "placeBid", "bid exceeds available balance", domain.ErrBadParamInput)
	}

	tx, err := im.marketplace.PlaceBid(c, *a.ContractAuctionId, amount)
	if err != nil {
		c.WithFields(log.Fields{
			"auctionId": auctionId,
			"amount":    amount,
			"err":       err,
		}).Error("marketplace.PlaceBid failed")
		return classifyTxError("placeBid", err)
	}
	txHash := tx.Hash()

	if _, err := tx.Wait(c); err != nil {
		failure := classifyTxError("placeBid", err)
		if auction.IsUnknownOutcome(failure) {
			im.markPendingVerification(c, a)
			im.recordBid(c, a, bidder, amount, auction.BidStatusPending, &txHash)
		} else {
			im.recordBid(c, a, bidder, amount, auction.BidStatusFailed, &txHash)
		}
		c.WithFields(log.Fields{
			"auctionId": auctionId,
			"tx":        txHash,
			"err":       err,
		}).Error("placeBid confirmation failed")
		return failure
	}

	a.CurrentPrice = amount
	a.HighestBidder = &bidder
	a.TotalBids++
	if err := im.auctionRepo.Update(c, a); err != nil {
		c.WithField("err", err).Error("auctionRepo.Update failed")
		return err
	}
	im.recordBid(c, a, bidder, amount, auction.BidStatusConfirmed, &txHash)
	return nil
}

// BuyNow ends the auction at the posted buy-now price in a single step.
func (im *impl) BuyNow(c bCtx.Ctx, auctionId string, buyer domain.Address) error {
	im.locks.Lock(auctionId)
	defer im.locks.Unlock(auctionId)

	a, err := im.auctionRepo.FindOne(c, auctionId)
	if err != nil {
		return err
	}
	if a.IsTerminal() || !a.EndTime.After(timeNow()) {
		return auction.NewFailure(auction.FailureValidation, "buyNow", "auction is not active", domain.ErrInvalidState)
	}
	if a.BuyNowPrice == nil {
		return auction.NewFailure(auction.FailureValidation, "buyNow", "buy now is not enabled", domain.ErrBadParamInput)
	}
	if a.ContractAuctionId == nil {
		return xerrors.Errorf("auction %s has no confirmed chain id: %w", auctionId, domain.ErrNotLinked)
	}

	balance, err := im.session.Balance(c)
	if err != nil {
		return err
	}
	if balance.LessThan(*a.BuyNowPrice) {
		return auction.NewFailure(auction.FailureValidation, "buyNow", "price exceeds available balance", domain.ErrBadParamInput)
	}

	tx, err := im.marketplace.BuyNow(c, *a.ContractAuctionId, *a.BuyNowPrice)
	if err != nil {
		c.WithFields(log.Fields{
			"auctionId": auctionId,
			"err":       err,
		}).Error("marketplace.BuyNow failed")
		return classifyTxError("buyNow", err)
	}
	if _, err := tx.Wait(c); err != nil {
		failure := classifyTxError("buyNow", err)
		if auction.IsUnknownOutcome(failure) {
			im.markPendingVerification(c, a)
		}
		c.WithFields(log.Fields{
			"auctionId": auctionId,
			"tx":        tx.Hash(),
			"err":       err,
		}).Error("buyNow confirmation failed")
		return failure
	}

	a.CurrentPrice = *a.BuyNowPrice
	a.HighestBidder = &buyer
	a.Status = auction.StatusEnded
	if err := im.auctionRepo.Update(c, a); err != nil {
		c.WithField("err", err).Error("auctionRepo.Update failed")
		return err
	}
	im.settleToken(c, a, buyer)
	return nil
}

// EndAuction rejects terminal auctions locally before touching the chain.
func (im *impl) EndAuction(c bCtx.Ctx, auctionId string) error {
	return im.finalize(c, auctionId, "endAuction", auction.StatusEnded)
}

// CancelAuction rejects terminal auctions locally before touching the chain,
// so a double cancellation never costs gas.
func (im *impl) CancelAuction(c bCtx.Ctx, auctionId string) error {
	return im.finalize(c, auctionId, "cancelAuction", auction.StatusCancelled)
}

func (im *impl) finalize(c bCtx.Ctx, auctionId string, op string, target auction.Status) error {
	im.locks.Lock(auctionId)
	defer im.locks.Unlock(auctionId)

	a, err := im.auctionRepo.FindOne(c, auctionId)
	if err != nil {
		return err
	}
	if a.IsTerminal() {
		return xerrors.Errorf("auction %s is already %s: %w", auctionId, a.Status, domain.ErrInvalidState)
	}
	if a.ContractAuctionId == nil {
		return xerrors.Errorf("auction %s has no confirmed chain id: %w", auctionId, domain.ErrNotLinked)
	}

	var tx contract.PendingTx
	if op == "endAuction" {
		tx, err = im.marketplace.EndAuction(c, *a.ContractAuctionId)
	} else {
		tx, err = im.marketplace.CancelAuction(c, *a.ContractAuctionId)
	}
	if err != nil {
		c.WithFields(log.Fields{
			"auctionId": auctionId,
			"op":        op,
			"err":       err,
		}).Error("marketplace finalize failed")
		return classifyTxError(op, err)
	}
	if _, err := tx.Wait(c); err != nil {
		failure := classifyTxError(op, err)
		if auction.IsUnknownOutcome(failure) {
			im.markPendingVerification(c, a)
		}
		c.WithFields(log.Fields{
			"auctionId": auctionId,
			"op":        op,
			"tx":        tx.Hash(),
			"err":       err,
		}).Error("finalize confirmation failed")
		return failure
	}

	a.Status = target
	if err := im.auctionRepo.Update(c, a); err != nil {
		c.WithField("err", err).Error("auctionRepo.Update failed")
		return err
	}
	if target == auction.StatusEnded && a.HighestBidder != nil && auction.IsReserveMet(a) {
		im.settleToken(c, a, *a.HighestBidder)
	}
	return nil
}

// SyncWithContract re-reads every linked auction and overwrites the mirrored
// fields with chain state. Running it twice in a row is a no-op; it is the
// only path that clears the pending verification flag.
func (im *impl) SyncWithContract(c bCtx.Ctx) error {
	all, err := im.auctionRepo.FindAll(c)
	if err != nil {
		return err
	}

	for _, a := range all {
		if a.ContractAuctionId == nil {
			continue
		}
		if a.IsTerminal() && !a.PendingVerification {
			continue
		}
		im.syncOne(c, a.Id)
	}
	return nil
}

func (im *impl) syncOne(c bCtx.Ctx, auctionId string) {
	im.locks.Lock(auctionId)
	defer im.locks.Unlock(auctionId)

	a, err := im.auctionRepo.FindOne(c, auctionId)
	if err != nil || a.ContractAuctionId == nil {
		return
	}

	snap, err := im.marketplace.GetAuction(c, *a.ContractAuctionId)
	if err != nil {
		c.WithFields(log.Fields{
			"auctionId":         auctionId,
			"contractAuctionId": *a.ContractAuctionId,
			"err":               err,
		}).Warn("marketplace.GetAuction failed, keeping local state")
		return
	}
	if snap == nil {
		c.WithFields(log.Fields{
			"auctionId":         auctionId,
			"contractAuctionId": *a.ContractAuctionId,
		}).Warn("auction unknown to contract")
		return
	}

	if snap.CurrentBid.IsPositive() {
		a.CurrentPrice = snap.CurrentBid
		bidder := snap.CurrentBidder
		a.HighestBidder = &bidder
	} else {
		a.CurrentPrice = snap.StartingPrice
		a.HighestBidder = nil
	}
	a.EndTime = snap.EndTime
	// the chain can end an auction but a locally terminal state never
	// reverts to active
	if !snap.Active && a.Status == auction.StatusActive {
		a.Status = auction.StatusEnded
	}
	a.PendingVerification = false

	if err := im.auctionRepo.Update(c, a); err != nil {
		c.WithFields(log.Fields{
			"auctionId": auctionId,
			"err":       err,
		}).Error("auctionRepo.Update failed")
	}
}

func (im *impl) AttachToken(c bCtx.Ctx, auctionId string, t *token.Token) error {
	im.locks.Lock(auctionId)
	defer im.locks.Unlock(auctionId)

	a, err := im.auctionRepo.FindOne(c, auctionId)
	if err != nil {
		return err
	}
	a.Token = t
	if a.TokenId == "" {
		a.TokenId = t.Id
	}
	return im.auctionRepo.Update(c, a)
}

func (im *impl) markPendingVerification(c bCtx.Ctx, a *auction.Auction) {
	a.PendingVerification = true
	if err := im.auctionRepo.Update(c, a); err != nil {
		c.WithFields(log.Fields{
			"auctionId": a.Id,
			"err":       err,
		}).Error("failed to flag auction for verification")
	}
}

func (im *impl) recordBid(c bCtx.Ctx, a *auction.Auction, bidder domain.Address, amount decimal.Decimal, status auction.BidStatus, txHash *domain.TxHash) {
	bid := &auction.Bid{
		Id:        uuid.New().String(),
		AuctionId: a.Id,
		Bidder:    bidder.ToLower(),
		Amount:    amount,
		Timestamp: timeNow(),
		Status:    status,
		TxHash:    txHash,
	}
	if err := im.bidRepo.Insert(c, bid); err != nil {
		c.WithFields(log.Fields{
			"auctionId": a.Id,
			"err":       err,
		}).Error("bidRepo.Insert failed")
	}
}

func (im *impl) settleToken(c bCtx.Ctx, a *auction.Auction, newOwner domain.Address) {
	if im.tokenUseCase == nil || a.TokenId == "" {
		return
	}
	if err := im.tokenUseCase.TransferOnSettlement(c, a.TokenId, newOwner); err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.WithFields(log.Fields{
			"auctionId": a.Id,
			"tokenId":   a.TokenId,
			"err":       err,
		}).Error("tokenUseCase.TransferOnSettlement failed")
	}
}
