package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MarketplaceABI covers the slice of the NFTAuctionMarketplace contract the
// client touches: minting, approval, the auction lifecycle and the read side.
var MarketplaceABI abi.ABI

var marketplaceABI = `[` +
	`{"type":"function","name":"mintNFT","stateMutability":"nonpayable","inputs":[{"type":"address","name":"to"},{"type":"string","name":"tokenURI"}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"type":"address","name":"to"},{"type":"uint256","name":"tokenId"}],"outputs":[]},` +
	`{"type":"function","name":"createAuction","stateMutability":"nonpayable","inputs":[{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"startingPrice"},{"type":"uint256","name":"buyNowPrice"},{"type":"uint256","name":"duration"}],"outputs":[]},` +
	`{"type":"function","name":"placeBid","stateMutability":"payable","inputs":[{"type":"uint256","name":"auctionId"}],"outputs":[]},` +
	`{"type":"function","name":"buyNow","stateMutability":"payable","inputs":[{"type":"uint256","name":"auctionId"}],"outputs":[]},` +
	`{"type":"function","name":"endAuction","stateMutability":"nonpayable","inputs":[{"type":"uint256","name":"auctionId"}],"outputs":[]},` +
	`{"type":"function","name":"cancelAuction","stateMutability":"nonpayable","inputs":[{"type":"uint256","name":"auctionId"}],"outputs":[]},` +
	`{"type":"function","name":"withdraw","stateMutability":"nonpayable","inputs":[],"outputs":[]},` +
	`{"type":"function","name":"getAuction","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"auctionId"}],"outputs":[{"type":"tuple","components":[{"type":"uint256","name":"tokenId"},{"type":"address","name":"seller"},{"type":"uint256","name":"startingPrice"},{"type":"uint256","name":"buyNowPrice"},{"type":"uint256","name":"currentBid"},{"type":"address","name":"currentBidder"},{"type":"uint256","name":"endTime"},{"type":"bool","name":"active"}]}]},` +
	`{"type":"function","name":"getActiveAuctions","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"start"},{"type":"uint256","name":"count"}],"outputs":[{"type":"tuple[]","name":"result","components":[{"type":"uint256","name":"tokenId"},{"type":"address","name":"seller"},{"type":"uint256","name":"startingPrice"},{"type":"uint256","name":"buyNowPrice"},{"type":"uint256","name":"currentBid"},{"type":"address","name":"currentBidder"},{"type":"uint256","name":"endTime"},{"type":"bool","name":"active"}]},{"type":"uint256","name":"total"}]},` +
	`{"type":"function","name":"ownerOf","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address"}]},` +
	`{"type":"function","name":"tokenURI","constant":true,"stateMutability":"view","inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"string"}]},` +
	`{"type":"function","name":"pendingReturns","constant":true,"stateMutability":"view","inputs":[{"type":"address","name":""}],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"marketplaceFee","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"getCurrentTokenId","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},` +
	`{"type":"function","name":"getCurrentAuctionId","constant":true,"stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]},` +
	`{"type":"event","anonymous":false,"name":"AuctionCreated","inputs":[{"type":"uint256","name":"auctionId","indexed":true},{"type":"uint256","name":"tokenId","indexed":true},{"type":"address","name":"seller","indexed":true},{"type":"uint256","name":"startingPrice"},{"type":"uint256","name":"endTime"}]},` +
	`{"type":"event","anonymous":false,"name":"BidPlaced","inputs":[{"type":"uint256","name":"auctionId","indexed":true},{"type":"address","name":"bidder","indexed":true},{"type":"uint256","name":"amount"}]},` +
	`{"type":"event","anonymous":false,"name":"AuctionEnded","inputs":[{"type":"uint256","name":"auctionId","indexed":true},{"type":"address","name":"winner","indexed":true},{"type":"uint256","name":"finalPrice"}]},` +
	`{"type":"event","anonymous":false,"name":"BuyNowPurchase","inputs":[{"type":"uint256","name":"auctionId","indexed":true},{"type":"address","name":"buyer","indexed":true},{"type":"uint256","name":"price"}]},` +
	`{"type":"event","anonymous":false,"name":"Transfer","inputs":[{"type":"address","name":"from","indexed":true},{"type":"address","name":"to","indexed":true},{"type":"uint256","name":"tokenId","indexed":true}]}` +
	`]`

func init() {
	parsed, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		panic("Failed to parse marketplace abi")
	}
	MarketplaceABI = parsed
}

// MarketplaceAuction is the on-chain auction tuple as returned by
// getAuction and getActiveAuctions, before unit conversion.
type MarketplaceAuction struct {
	TokenId       *big.Int
	Seller        common.Address
	StartingPrice *big.Int
	BuyNowPrice   *big.Int
	CurrentBid    *big.Int
	CurrentBidder common.Address
	EndTime       *big.Int
	Active        bool
}

type AuctionCreatedLog struct {
	AuctionId     *big.Int       // indexed
	TokenId       *big.Int       // indexed
	Seller        common.Address // indexed
	StartingPrice *big.Int
	EndTime       *big.Int
}

type BidPlacedLog struct {
	AuctionId *big.Int       // indexed
	Bidder    common.Address // indexed
	Amount    *big.Int
}

type AuctionEndedLog struct {
	AuctionId  *big.Int       // indexed
	Winner     common.Address // indexed
	FinalPrice *big.Int
}

type BuyNowPurchaseLog struct {
	AuctionId *big.Int       // indexed
	Buyer     common.Address // indexed
	Price     *big.Int
}

type TransferLog struct {
	From    common.Address // indexed
	To      common.Address // indexed
	TokenId *big.Int       // indexed
}

func ToAuctionCreatedLog(log *types.Log) (*AuctionCreatedLog, error) {
	var created AuctionCreatedLog
	if err := MarketplaceABI.UnpackIntoInterface(&created, "AuctionCreated", log.Data); err != nil {
		return nil, err
	}
	created.AuctionId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	created.TokenId = new(big.Int).SetBytes(log.Topics[2].Bytes())
	created.Seller = common.BytesToAddress(log.Topics[3].Bytes())
	return &created, nil
}

func ToBidPlacedLog(log *types.Log) (*BidPlacedLog, error) {
	var placed BidPlacedLog
	if err := MarketplaceABI.UnpackIntoInterface(&placed, "BidPlaced", log.Data); err != nil {
		return nil, err
	}
	placed.AuctionId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	placed.Bidder = common.BytesToAddress(log.Topics[2].Bytes())
	return &placed, nil
}

func ToAuctionEndedLog(log *types.Log) (*AuctionEndedLog, error) {
	var ended AuctionEndedLog
	if err := MarketplaceABI.UnpackIntoInterface(&ended, "AuctionEnded", log.Data); err != nil {
		return nil, err
	}
	ended.AuctionId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	ended.Winner = common.BytesToAddress(log.Topics[2].Bytes())
	return &ended, nil
}

func ToBuyNowPurchaseLog(log *types.Log) (*BuyNowPurchaseLog, error) {
	var purchase BuyNowPurchaseLog
	if err := MarketplaceABI.UnpackIntoInterface(&purchase, "BuyNowPurchase", log.Data); err != nil {
		return nil, err
	}
	purchase.AuctionId = new(big.Int).SetBytes(log.Topics[1].Bytes())
	purchase.Buyer = common.BytesToAddress(log.Topics[2].Bytes())
	return &purchase, nil
}

// ToTransferLog decodes an erc721 Transfer. All fields are indexed so the
// payload lives entirely in the topics.
func ToTransferLog(log *types.Log) (*TransferLog, error) {
	return &TransferLog{
		From:    common.BytesToAddress(log.Topics[1].Bytes()),
		To:      common.BytesToAddress(log.Topics[2].Bytes()),
		TokenId: new(big.Int).SetBytes(log.Topics[3].Bytes()),
	}, nil
}
