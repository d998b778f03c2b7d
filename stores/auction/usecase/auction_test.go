package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	baseabi "github.com/passethub/marketplace/base/abi"
	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/ptr"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/auction"
	auctionMocks "github.com/passethub/marketplace/domain/auction/mocks"
	"github.com/passethub/marketplace/domain/keys"
	"github.com/passethub/marketplace/domain/token"
	walletMocks "github.com/passethub/marketplace/domain/wallet/mocks"
	"github.com/passethub/marketplace/service/cache"
	"github.com/passethub/marketplace/service/cache/provider/primitive"
	"github.com/passethub/marketplace/service/chain/contract"
	contractMocks "github.com/passethub/marketplace/service/chain/contract/mocks"
	"github.com/passethub/marketplace/stores/auction/repository"
)

const (
	sellerAddr   = "0x1111111111111111111111111111111111111111"
	bidderAddr   = "0x2222222222222222222222222222222222222222"
	contractAddr = "0x507e13c9924ada6281e02c56bc135d224a3d8c6e"
)

type auctionUseCaseTestSuite struct {
	suite.Suite

	ctx         bCtx.Ctx
	repo        auction.Repo
	bidRepo     auction.BidRepo
	marketplace *contractMocks.Marketplace
	session     *walletMocks.Session
	usecase     auction.UseCase
}

func TestAuctionUseCase(t *testing.T) {
	suite.Run(t, new(auctionUseCaseTestSuite))
}

func (s *auctionUseCaseTestSuite) SetupTest() {
	s.ctx = bCtx.Background()
	cacheService := cache.New(cache.ServiceConfig{
		Ttl:   time.Hour,
		Pfx:   keys.PfxAuctionStore,
		Cache: primitive.NewPrimitive("test", 1),
	})
	s.repo = repository.NewAuctionRepo(s.ctx, cacheService)
	s.bidRepo = repository.NewBidRepo()
	s.marketplace = &contractMocks.Marketplace{}
	s.session = &walletMocks.Session{}
	s.usecase = NewAuctionUseCase(&AuctionUseCaseCfg{
		AuctionRepo:     s.repo,
		BidRepo:         s.bidRepo,
		Marketplace:     s.marketplace,
		Session:         s.session,
		Policy:          auction.DefaultPolicy(),
		ContractAddress: contractAddr,
	})
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func confirmedTx(hash string, receipt *types.Receipt) *contractMocks.PendingTx {
	tx := &contractMocks.PendingTx{}
	tx.On("Hash").Return(domain.TxHash(hash)).Maybe()
	tx.On("Wait", mock.Anything).Return(receipt, nil)
	return tx
}

func failedTx(hash string, err error) *contractMocks.PendingTx {
	tx := &contractMocks.PendingTx{}
	tx.On("Hash").Return(domain.TxHash(hash)).Maybe()
	tx.On("Wait", mock.Anything).Return(nil, err)
	return tx
}

func createReceipt(auctionId int64) *types.Receipt {
	event := baseabi.MarketplaceABI.Events["AuctionCreated"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(20), big.NewInt(1700000000))
	if err != nil {
		panic(err)
	}
	return &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		TxHash: common.HexToHash("0xaa"),
		Logs: []*types.Log{{
			Topics: []common.Hash{
				event.ID,
				common.BigToHash(big.NewInt(auctionId)),
				common.BigToHash(big.NewInt(1)),
				common.HexToHash(sellerAddr),
			},
			Data: data,
		}},
	}
}

// seedAuction inserts an active linked auction directly into the projection.
func (s *auctionUseCaseTestSuite) seedAuction(id string, contractId domain.AuctionId, currentPrice string) *auction.Auction {
	now := time.Now()
	a := &auction.Auction{
		Id:                id,
		ContractAuctionId: &contractId,
		TokenId:           "token-1",
		Seller:            sellerAddr,
		StartPrice:        dec("20"),
		CurrentPrice:      dec(currentPrice),
		StartTime:         now,
		EndTime:           now.Add(time.Hour),
		Status:            auction.StatusActive,
		CreatedAt:         now,
	}
	s.Require().NoError(s.repo.Insert(s.ctx, a))
	return a
}

func (s *auctionUseCaseTestSuite) createData() auction.CreateAuctionData {
	return auction.CreateAuctionData{
		TokenId:         "token-1",
		ContractTokenId: domain.TokenId("1"),
		StartPrice:      dec("20"),
		Duration:        24 * time.Hour,
	}
}

func (s *auctionUseCaseTestSuite) TestCreateAuction() {
	s.session.On("RequireSigner", mock.Anything).Return(domain.Address(sellerAddr), nil)
	s.marketplace.On("Approve", mock.Anything, domain.Address(contractAddr), domain.TokenId("1")).
		Return(confirmedTx("0x01", &types.Receipt{Status: types.ReceiptStatusSuccessful}), nil)
	s.marketplace.On("CreateAuction", mock.Anything, domain.TokenId("1"), dec("20"), decimal.Zero, 24*time.Hour).
		Return(confirmedTx("0x02", createReceipt(42)), nil)

	a, err := s.usecase.CreateAuction(s.ctx, s.createData(), sellerAddr)
	s.Require().NoError(err)
	s.Require().NotNil(a.ContractAuctionId)
	s.Equal(domain.AuctionId("42"), *a.ContractAuctionId)
	s.Equal(auction.StatusActive, a.Status)
	s.True(a.CurrentPrice.Equal(dec("20")))
	s.Zero(a.TotalBids)

	found, err := s.repo.FindOne(s.ctx, a.Id)
	s.NoError(err)
	s.Equal(a.Id, found.Id)
}

func (s *auctionUseCaseTestSuite) TestCreateAuctionRejectsCrossedPrices() {
	data := s.createData()
	data.EnableReserve = true
	data.ReservePrice = dec("40")
	data.EnableBuyNow = true
	data.BuyNowPrice = dec("35")

	_, err := s.usecase.CreateAuction(s.ctx, data, sellerAddr)
	f := auction.AsFailure(err)
	s.Require().NotNil(f)
	s.Equal(auction.FailureValidation, f.Kind)
	s.marketplace.AssertNotCalled(s.T(), "Approve", mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionUseCaseTestSuite) TestCreateAuctionApproveRevertLeavesNoRecord() {
	s.session.On("RequireSigner", mock.Anything).Return(domain.Address(sellerAddr), nil)
	s.marketplace.On("Approve", mock.Anything, mock.Anything, mock.Anything).
		Return(failedTx("0x01", xerrors.Errorf("tx 0x01 reverted: %w", contract.ErrTransactionRejected)), nil)

	_, err := s.usecase.CreateAuction(s.ctx, s.createData(), sellerAddr)
	f := auction.AsFailure(err)
	s.Require().NotNil(f)
	s.Equal(auction.FailureConfirmation, f.Kind)
	s.Equal("approve", f.Op)

	all, err := s.repo.FindAll(s.ctx)
	s.NoError(err)
	s.Len(all, 0)
	s.marketplace.AssertNotCalled(s.T(), "CreateAuction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionUseCaseTestSuite) TestPlaceBidSequence() {
	s.seedAuction("a1", "42", "20")
	s.session.On("Balance", mock.Anything).Return(dec("1000"), nil)
	s.marketplace.On("PlaceBid", mock.Anything, domain.AuctionId("42"), dec("30")).
		Return(confirmedTx("0x11", &types.Receipt{Status: types.ReceiptStatusSuccessful}), nil)
	s.marketplace.On("PlaceBid", mock.Anything, domain.AuctionId("42"), dec("50")).
		Return(confirmedTx("0x12", &types.Receipt{Status: types.ReceiptStatusSuccessful}), nil)

	s.NoError(s.usecase.PlaceBid(s.ctx, "a1", bidderAddr, dec("30")))
	s.NoError(s.usecase.PlaceBid(s.ctx, "a1", bidderAddr, dec("50")))

	a, err := s.usecase.GetAuctionById(s.ctx, "a1")
	s.Require().NoError(err)
	s.True(a.CurrentPrice.Equal(dec("50")))
	s.Equal(2, a.TotalBids)
	s.Require().NotNil(a.HighestBidder)
	s.True(a.HighestBidder.Equals(bidderAddr))

	bids, err := s.usecase.GetBidsForAuction(s.ctx, "a1")
	s.Require().NoError(err)
	s.Require().Len(bids, 2)
	s.True(bids[0].Amount.Equal(dec("50")))
	s.Equal(auction.BidStatusConfirmed, bids[0].Status)
}

func (s *auctionUseCaseTestSuite) TestPlaceBidBelowIncrementNeverReachesChain() {
	s.seedAuction("a1", "42", "25.5")
	s.session.On("Balance", mock.Anything).Return(dec("1000"), nil)

	err := s.usecase.PlaceBid(s.ctx, "a1", bidderAddr, dec("25.55"))
	f := auction.AsFailure(err)
	s.Require().NotNil(f)
	s.Equal(auction.FailureValidation, f.Kind)
	s.Contains(f.Reason, "25.6")
	s.marketplace.AssertNotCalled(s.T(), "PlaceBid", mock.Anything, mock.Anything, mock.Anything)

	a, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.True(a.CurrentPrice.Equal(dec("25.5")))
	s.Zero(a.TotalBids)
}

func (s *auctionUseCaseTestSuite) TestPlaceBidExceedingBalance() {
	s.seedAuction("a1", "42", "20")
	s.session.On("Balance", mock.Anything).Return(dec("25"), nil)

	err := s.usecase.PlaceBid(s.ctx, "a1", bidderAddr, dec("30"))
	f := auction.AsFailure(err)
	s.Require().NotNil(f)
	s.Equal(auction.FailureValidation, f.Kind)
	s.marketplace.AssertNotCalled(s.T(), "PlaceBid", mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionUseCaseTestSuite) TestSellerCannotBidOnOwnAuction() {
	s.seedAuction("a1", "42", "20")

	err := s.usecase.PlaceBid(s.ctx, "a1", sellerAddr, dec("30"))
	f := auction.AsFailure(err)
	s.Require().NotNil(f)
	s.Equal(auction.FailureValidation, f.Kind)
}

func (s *auctionUseCaseTestSuite) TestPlaceBidRevertedLeavesStateUntouched() {
	s.seedAuction("a1", "42", "20")
	s.session.On("Balance", mock.Anything).Return(dec("1000"), nil)
	s.marketplace.On("PlaceBid", mock.Anything, domain.AuctionId("42"), dec("30")).
		Return(failedTx("0x11", xerrors.Errorf("tx 0x11 reverted: %w", contract.ErrTransactionRejected)), nil)

	err := s.usecase.PlaceBid(s.ctx, "a1", bidderAddr, dec("30"))
	f := auction.AsFailure(err)
	s.Require().NotNil(f)
	s.Equal(auction.FailureConfirmation, f.Kind)

	a, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.True(a.CurrentPrice.Equal(dec("20")))
	s.Zero(a.TotalBids)
	s.Nil(a.HighestBidder)
	s.False(a.PendingVerification)

	bids, _ := s.usecase.GetBidsForAuction(s.ctx, "a1")
	s.Require().Len(bids, 1)
	s.Equal(auction.BidStatusFailed, bids[0].Status)
}

func (s *auctionUseCaseTestSuite) TestPlaceBidTimeoutFlagsVerification() {
	s.seedAuction("a1", "42", "20")
	s.session.On("Balance", mock.Anything).Return(dec("1000"), nil)
	s.marketplace.On("PlaceBid", mock.Anything, domain.AuctionId("42"), dec("30")).
		Return(failedTx("0x11", xerrors.Errorf("tx 0x11: %w", contract.ErrConfirmationTimeout)), nil)

	err := s.usecase.PlaceBid(s.ctx, "a1", bidderAddr, dec("30"))
	s.True(auction.IsUnknownOutcome(err))

	a, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.True(a.PendingVerification)
	// the mirrored price is untouched until a sync resolves the outcome
	s.True(a.CurrentPrice.Equal(dec("20")))
	s.Zero(a.TotalBids)

	bids, _ := s.usecase.GetBidsForAuction(s.ctx, "a1")
	s.Require().Len(bids, 1)
	s.Equal(auction.BidStatusPending, bids[0].Status)
}

func (s *auctionUseCaseTestSuite) TestBuyNowEndsAuctionAtPostedPrice() {
	a := s.seedAuction("a1", "42", "20")
	a.BuyNowPrice = ptr.Decimal(dec("100"))
	s.Require().NoError(s.repo.Update(s.ctx, a))

	s.session.On("Balance", mock.Anything).Return(dec("1000"), nil)
	s.marketplace.On("BuyNow", mock.Anything, domain.AuctionId("42"), dec("100")).
		Return(confirmedTx("0x21", &types.Receipt{Status: types.ReceiptStatusSuccessful}), nil)

	s.NoError(s.usecase.BuyNow(s.ctx, "a1", bidderAddr))

	got, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.Equal(auction.StatusEnded, got.Status)
	s.True(got.CurrentPrice.Equal(dec("100")))
	s.Require().NotNil(got.HighestBidder)
	s.True(got.HighestBidder.Equals(bidderAddr))
}

func (s *auctionUseCaseTestSuite) TestBuyNowWithoutPostedPrice() {
	s.seedAuction("a1", "42", "20")

	err := s.usecase.BuyNow(s.ctx, "a1", bidderAddr)
	f := auction.AsFailure(err)
	s.Require().NotNil(f)
	s.Equal(auction.FailureValidation, f.Kind)
	s.marketplace.AssertNotCalled(s.T(), "BuyNow", mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionUseCaseTestSuite) TestDoubleCancellation() {
	s.seedAuction("a1", "42", "20")
	s.marketplace.On("CancelAuction", mock.Anything, domain.AuctionId("42")).
		Return(confirmedTx("0x31", &types.Receipt{Status: types.ReceiptStatusSuccessful}), nil).Once()

	s.NoError(s.usecase.CancelAuction(s.ctx, "a1"))
	s.ErrorIs(s.usecase.CancelAuction(s.ctx, "a1"), domain.ErrInvalidState)
	s.marketplace.AssertNumberOfCalls(s.T(), "CancelAuction", 1)
}

func (s *auctionUseCaseTestSuite) TestTerminalAuctionRejectsEverything() {
	a := s.seedAuction("a1", "42", "20")
	a.Status = auction.StatusCancelled
	s.Require().NoError(s.repo.Update(s.ctx, a))
	s.session.On("Balance", mock.Anything).Return(dec("1000"), nil).Maybe()

	s.ErrorIs(s.usecase.EndAuction(s.ctx, "a1"), domain.ErrInvalidState)

	err := s.usecase.PlaceBid(s.ctx, "a1", bidderAddr, dec("30"))
	s.ErrorIs(err, domain.ErrInvalidState)
}

func (s *auctionUseCaseTestSuite) TestSyncOverwritesMirroredFields() {
	a := s.seedAuction("a1", "42", "20")
	a.PendingVerification = true
	s.Require().NoError(s.repo.Update(s.ctx, a))

	endTime := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	s.marketplace.On("GetAuction", mock.Anything, domain.AuctionId("42")).Return(&contract.AuctionSnapshot{
		AuctionId:     "42",
		TokenId:       "1",
		Seller:        sellerAddr,
		StartingPrice: dec("20"),
		CurrentBid:    dec("30"),
		CurrentBidder: bidderAddr,
		EndTime:       endTime,
		Active:        true,
	}, nil)

	s.NoError(s.usecase.SyncWithContract(s.ctx))

	got, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.True(got.CurrentPrice.Equal(dec("30")))
	s.Require().NotNil(got.HighestBidder)
	s.True(got.HighestBidder.Equals(bidderAddr))
	s.False(got.PendingVerification)
	s.Equal(auction.StatusActive, got.Status)

	// a second pass is a no-op
	s.NoError(s.usecase.SyncWithContract(s.ctx))
	again, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.True(again.CurrentPrice.Equal(dec("30")))
	s.Equal(got.TotalBids, again.TotalBids)
}

func (s *auctionUseCaseTestSuite) TestSyncMarksEndedAuction() {
	s.seedAuction("a1", "42", "20")
	s.marketplace.On("GetAuction", mock.Anything, domain.AuctionId("42")).Return(&contract.AuctionSnapshot{
		AuctionId:     "42",
		StartingPrice: dec("20"),
		CurrentBid:    dec("35"),
		CurrentBidder: bidderAddr,
		EndTime:       time.Now().Add(-time.Minute),
		Active:        false,
	}, nil)

	s.NoError(s.usecase.SyncWithContract(s.ctx))

	got, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.Equal(auction.StatusEnded, got.Status)
	s.True(got.CurrentPrice.Equal(dec("35")))
}

func (s *auctionUseCaseTestSuite) TestSyncKeepsStateWhenChainUnreachable() {
	s.seedAuction("a1", "42", "25")
	s.marketplace.On("GetAuction", mock.Anything, domain.AuctionId("42")).
		Return(nil, xerrors.New("rpc unreachable"))

	s.NoError(s.usecase.SyncWithContract(s.ctx))

	got, _ := s.usecase.GetAuctionById(s.ctx, "a1")
	s.True(got.CurrentPrice.Equal(dec("25")))
	s.Equal(auction.StatusActive, got.Status)
}

func (s *auctionUseCaseTestSuite) TestGetActiveAuctionsFiltersLocally() {
	s.seedAuction("a1", "42", "20")
	ended := s.seedAuction("a2", "43", "20")
	ended.Status = auction.StatusEnded
	s.Require().NoError(s.repo.Update(s.ctx, ended))
	expired := s.seedAuction("a3", "44", "20")
	expired.EndTime = time.Now().Add(-time.Minute)
	s.Require().NoError(s.repo.Update(s.ctx, expired))

	active, err := s.usecase.GetActiveAuctions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Equal("a1", active[0].Id)
	s.marketplace.AssertNotCalled(s.T(), "GetActiveAuctions", mock.Anything, mock.Anything, mock.Anything)
}

func (s *auctionUseCaseTestSuite) TestGetUserAuctions() {
	s.seedAuction("a1", "42", "20")
	other := s.seedAuction("a2", "43", "20")
	other.Seller = bidderAddr
	s.Require().NoError(s.repo.Update(s.ctx, other))

	mine, err := s.usecase.GetUserAuctions(s.ctx, sellerAddr)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("a1", mine[0].Id)
}

func (s *auctionUseCaseTestSuite) TestGetBidsRequiresKnownAuction() {
	repo := &auctionMocks.Repo{}
	bidRepo := &auctionMocks.BidRepo{}
	repo.On("FindOne", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	uc := NewAuctionUseCase(&AuctionUseCaseCfg{
		AuctionRepo:     repo,
		BidRepo:         bidRepo,
		Marketplace:     s.marketplace,
		Session:         s.session,
		Policy:          auction.DefaultPolicy(),
		ContractAddress: contractAddr,
	})

	_, err := uc.GetBidsForAuction(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
	bidRepo.AssertNotCalled(s.T(), "FindByAuction", mock.Anything, mock.Anything)
}

func (s *auctionUseCaseTestSuite) TestSyncSkipsUnlinkedAndSettled() {
	settledId := domain.AuctionId("7")
	repo := &auctionMocks.Repo{}
	repo.On("FindAll", mock.Anything).Return([]*auction.Auction{
		{Id: "local-only", Status: auction.StatusActive},
		{Id: "settled", ContractAuctionId: &settledId, Status: auction.StatusEnded},
	}, nil)

	uc := NewAuctionUseCase(&AuctionUseCaseCfg{
		AuctionRepo:     repo,
		BidRepo:         s.bidRepo,
		Marketplace:     s.marketplace,
		Session:         s.session,
		Policy:          auction.DefaultPolicy(),
		ContractAddress: contractAddr,
	})

	s.NoError(uc.SyncWithContract(s.ctx))
	s.marketplace.AssertNotCalled(s.T(), "GetAuction", mock.Anything, mock.Anything)
	repo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *auctionUseCaseTestSuite) TestAttachToken() {
	s.seedAuction("a1", "42", "20")

	t := &token.Token{Id: "token-1", Owner: sellerAddr, Creator: sellerAddr}
	s.NoError(s.usecase.AttachToken(s.ctx, "a1", t))

	got, err := s.usecase.GetAuctionById(s.ctx, "a1")
	s.Require().NoError(err)
	s.Require().NotNil(got.Token)
	s.Equal("token-1", got.Token.Id)
}
