package contract

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	baseabi "github.com/passethub/marketplace/base/abi"
	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/domain"
	chainMocks "github.com/passethub/marketplace/service/chain/mocks"
)

type marketplaceTestSuite struct {
	suite.Suite
}

func TestMarketplace(t *testing.T) {
	suite.Run(t, new(marketplaceTestSuite))
}

func (s *marketplaceTestSuite) TestToWei() {
	wei, err := toWei(decimal.RequireFromString("25.6"))
	s.NoError(err)
	s.Equal("25600000000000000000", wei.String())

	wei, err = toWei(decimal.Zero)
	s.NoError(err)
	s.Equal("0", wei.String())
}

func (s *marketplaceTestSuite) TestToWeiRejectsSubWeiPrecision() {
	_, err := toWei(decimal.New(1, -19))
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)
}

func (s *marketplaceTestSuite) TestToWeiRejectsNegative() {
	_, err := toWei(decimal.RequireFromString("-1"))
	s.ErrorIs(err, domain.ErrInvalidNumberFormat)
}

func (s *marketplaceTestSuite) TestFromWeiRoundTrip() {
	amount := decimal.RequireFromString("0.1")
	wei, err := toWei(amount)
	s.NoError(err)
	s.True(amount.Equal(fromWei(wei)))
}

func (s *marketplaceTestSuite) TestZeroSentinelMeansNoAuction() {
	im := &marketplaceImpl{}
	raw := baseabi.MarketplaceAuction{
		TokenId:       big.NewInt(0),
		StartingPrice: big.NewInt(0),
		BuyNowPrice:   big.NewInt(0),
		CurrentBid:    big.NewInt(0),
		EndTime:       big.NewInt(0),
		Active:        false,
	}
	s.False(raw.Active)
	s.Zero(raw.TokenId.Sign())

	raw.TokenId = big.NewInt(7)
	raw.CurrentBid = big.NewInt(2000000000000000000)
	snapshot := im.toSnapshot(&raw)
	s.Equal(domain.TokenId("7"), snapshot.TokenId)
	s.True(snapshot.CurrentBid.Equal(decimal.NewFromInt(2)))
}

func (s *marketplaceTestSuite) TestExtractAuctionId() {
	event := baseabi.MarketplaceABI.Events["AuctionCreated"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(1000000000000000000), big.NewInt(1700000000))
	s.Require().NoError(err)

	receipt := &types.Receipt{
		TxHash: common.HexToHash("0x01"),
		Logs: []*types.Log{{
			Topics: []common.Hash{
				event.ID,
				common.BigToHash(big.NewInt(42)),
				common.BigToHash(big.NewInt(7)),
				common.HexToHash("0x000000000000000000000000507e13c9924ada6281e02c56bc135d224a3d8c6e"),
			},
			Data: data,
		}},
	}

	id, err := ExtractAuctionId(receipt)
	s.NoError(err)
	s.Equal(domain.AuctionId("42"), id)
}

func (s *marketplaceTestSuite) TestExtractAuctionIdMissingLog() {
	receipt := &types.Receipt{TxHash: common.HexToHash("0x02")}
	_, err := ExtractAuctionId(receipt)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *marketplaceTestSuite) TestExtractMintedTokenId() {
	event := baseabi.MarketplaceABI.Events["Transfer"]
	receipt := &types.Receipt{
		TxHash: common.HexToHash("0x03"),
		Logs: []*types.Log{{
			Topics: []common.Hash{
				event.ID,
				common.Hash{},
				common.HexToHash("0x000000000000000000000000507e13c9924ada6281e02c56bc135d224a3d8c6e"),
				common.BigToHash(big.NewInt(9)),
			},
		}},
	}

	id, err := ExtractMintedTokenId(receipt)
	s.NoError(err)
	s.Equal(domain.TokenId("9"), id)
}

func (s *marketplaceTestSuite) TestMapValueError() {
	err := mapValueError(errors.New("insufficient funds for gas * price + value"))
	s.ErrorIs(err, ErrInsufficientValue)

	other := errors.New("nonce too low")
	s.Equal(other, mapValueError(other))
	s.NoError(mapValueError(nil))
}

func mockedGateway() (*chainMocks.Client, Marketplace) {
	client := &chainMocks.Client{}
	m := NewMarketplace(&MarketplaceCfg{
		ChainService:    client,
		ContractAddress: "0x507e13c9924ada6281e02c56bc135d224a3d8c6e",
		ConfirmTimeout:  time.Minute,
	})
	return client, m
}

func (s *marketplaceTestSuite) TestGetAuctionDecodesSnapshot() {
	client, m := mockedGateway()
	raw := baseabi.MarketplaceAuction{
		TokenId:       big.NewInt(7),
		Seller:        common.HexToAddress("0x1111111111111111111111111111111111111111"),
		StartingPrice: big.NewInt(1000000000000000000),
		BuyNowPrice:   big.NewInt(0),
		CurrentBid:    big.NewInt(2000000000000000000),
		CurrentBidder: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		EndTime:       big.NewInt(1700000000),
		Active:        true,
	}
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "getAuction", mock.Anything).
		Return([]interface{}{raw}, nil)

	snap, err := m.GetAuction(bCtx.Background(), domain.AuctionId("42"))
	s.Require().NoError(err)
	s.Require().NotNil(snap)
	s.Equal(domain.AuctionId("42"), snap.AuctionId)
	s.Equal(domain.TokenId("7"), snap.TokenId)
	s.True(snap.StartingPrice.Equal(decimal.NewFromInt(1)))
	s.True(snap.CurrentBid.Equal(decimal.NewFromInt(2)))
	s.Equal(domain.Address("0x2222222222222222222222222222222222222222"), snap.CurrentBidder)
	s.Equal(int64(1700000000), snap.EndTime.Unix())
	s.True(snap.Active)
}

func (s *marketplaceTestSuite) TestGetAuctionZeroSentinel() {
	client, m := mockedGateway()
	raw := baseabi.MarketplaceAuction{
		TokenId:       big.NewInt(0),
		StartingPrice: big.NewInt(0),
		BuyNowPrice:   big.NewInt(0),
		CurrentBid:    big.NewInt(0),
		EndTime:       big.NewInt(0),
		Active:        false,
	}
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "getAuction", mock.Anything).
		Return([]interface{}{raw}, nil)

	snap, err := m.GetAuction(bCtx.Background(), domain.AuctionId("99"))
	s.NoError(err)
	s.Nil(snap)
}

func (s *marketplaceTestSuite) TestGetActiveAuctionsLeavesIdsUnset() {
	client, m := mockedGateway()
	raws := []baseabi.MarketplaceAuction{
		{
			TokenId:       big.NewInt(1),
			StartingPrice: big.NewInt(1000000000000000000),
			BuyNowPrice:   big.NewInt(0),
			CurrentBid:    big.NewInt(0),
			EndTime:       big.NewInt(1700000000),
			Active:        true,
		},
		{
			TokenId:       big.NewInt(2),
			StartingPrice: big.NewInt(3000000000000000000),
			BuyNowPrice:   big.NewInt(0),
			CurrentBid:    big.NewInt(0),
			EndTime:       big.NewInt(1700009999),
			Active:        true,
		},
	}
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "getActiveAuctions", mock.Anything, mock.Anything).
		Return([]interface{}{raws, big.NewInt(5)}, nil)

	snaps, total, err := m.GetActiveAuctions(bCtx.Background(), 0, 2)
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Require().Len(snaps, 2)
	s.Equal(domain.AuctionId(""), snaps[0].AuctionId)
	s.Equal(domain.TokenId("2"), snaps[1].TokenId)
}

func (s *marketplaceTestSuite) TestMarketplaceFeeConvertsBasisPoints() {
	client, m := mockedGateway()
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "marketplaceFee").
		Return([]interface{}{big.NewInt(250)}, nil)

	fee, err := m.MarketplaceFee(bCtx.Background())
	s.NoError(err)
	s.True(fee.Equal(decimal.RequireFromString("2.5")))
}

func (s *marketplaceTestSuite) TestOwnerOfLowercasesAddress() {
	client, m := mockedGateway()
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "ownerOf", mock.Anything).
		Return([]interface{}{common.HexToAddress("0xABCDEF1234567890ABCDEF1234567890ABCDEF12")}, nil)

	owner, err := m.OwnerOf(bCtx.Background(), domain.TokenId("7"))
	s.NoError(err)
	s.Equal(domain.Address("0xabcdef1234567890abcdef1234567890abcdef12"), owner)
}

func (s *marketplaceTestSuite) TestCurrentCounters() {
	client, m := mockedGateway()
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "getCurrentTokenId").
		Return([]interface{}{big.NewInt(12)}, nil)
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "getCurrentAuctionId").
		Return([]interface{}{big.NewInt(3)}, nil)

	tokenId, err := m.CurrentTokenId(bCtx.Background())
	s.NoError(err)
	s.Equal(domain.TokenId("12"), tokenId)

	auctionId, err := m.CurrentAuctionId(bCtx.Background())
	s.NoError(err)
	s.Equal(domain.AuctionId("3"), auctionId)
}

func (s *marketplaceTestSuite) TestTokenURI() {
	client, m := mockedGateway()
	client.On("Call", mock.Anything, mock.Anything, mock.Anything, "tokenURI", mock.Anything).
		Return([]interface{}{"ipfs://cid"}, nil)

	uri, err := m.TokenURI(bCtx.Background(), domain.TokenId("7"))
	s.NoError(err)
	s.Equal("ipfs://cid", uri)
}
