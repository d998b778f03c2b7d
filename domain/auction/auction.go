package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/token"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusEnded     Status = "ended"
	StatusCancelled Status = "cancelled"
)

// Auction is the client-side mirror of one listing. It is created locally
// before the chain confirms it, so it carries both a local id and, once
// confirmed, the chain-assigned ContractAuctionId.
type Auction struct {
	Id                string            `json:"id"`
	ContractAuctionId *domain.AuctionId `json:"contractAuctionId,omitempty"`
	TokenId           string            `json:"tokenId"`
	ContractTokenId   *domain.TokenId   `json:"contractTokenId,omitempty"`
	Token             *token.Token      `json:"token,omitempty"`
	Seller            domain.Address    `json:"seller"`
	StartPrice        decimal.Decimal   `json:"startPrice"`
	CurrentPrice      decimal.Decimal   `json:"currentPrice"`
	ReservePrice      *decimal.Decimal  `json:"reservePrice,omitempty"`
	BuyNowPrice       *decimal.Decimal  `json:"buyNowPrice,omitempty"`
	StartTime         time.Time         `json:"startTime"`
	EndTime           time.Time         `json:"endTime"`
	Status            Status            `json:"status"`
	HighestBidder     *domain.Address   `json:"highestBidder,omitempty"`
	TotalBids         int               `json:"totalBids"`

	// PendingVerification marks an auction whose last submitted transaction
	// timed out with unknown outcome. Cleared by the next successful sync.
	PendingVerification bool `json:"pendingVerification,omitempty"`

	TxHash    domain.TxHash `json:"txHash,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// IsTerminal reports whether the auction reached a final state. Terminal
// auctions reject every further mutation.
func (a *Auction) IsTerminal() bool {
	return a.Status == StatusEnded || a.Status == StatusCancelled
}

type BidStatus string

const (
	BidStatusPending   BidStatus = "pending"
	BidStatusConfirmed BidStatus = "confirmed"
	BidStatusFailed    BidStatus = "failed"
)

// Bid is an attempted or confirmed offer against one auction.
type Bid struct {
	Id        string          `json:"id"`
	AuctionId string          `json:"auctionId"`
	Bidder    domain.Address  `json:"bidder"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Status    BidStatus       `json:"status"`
	TxHash    *domain.TxHash  `json:"txHash,omitempty"`
}

// CreateAuctionData is the caller's request to list a token.
type CreateAuctionData struct {
	TokenId         string          `json:"tokenId"`
	ContractTokenId domain.TokenId  `json:"contractTokenId"`
	StartPrice      decimal.Decimal `json:"startPrice"`
	Duration        time.Duration   `json:"duration"`
	ReservePrice    decimal.Decimal `json:"reservePrice"`
	BuyNowPrice     decimal.Decimal `json:"buyNowPrice"`
	EnableReserve   bool            `json:"enableReserve"`
	EnableBuyNow    bool            `json:"enableBuyNow"`
}

type Repo interface {
	FindAll(ctx.Ctx) ([]*Auction, error)
	FindOne(c ctx.Ctx, id string) (*Auction, error)
	FindOneByContractId(c ctx.Ctx, id domain.AuctionId) (*Auction, error)
	Insert(c ctx.Ctx, a *Auction) error
	Update(c ctx.Ctx, a *Auction) error
}

type BidRepo interface {
	FindByAuction(c ctx.Ctx, auctionId string) ([]*Bid, error)
	Insert(c ctx.Ctx, b *Bid) error
}

type UseCase interface {
	CreateAuction(c ctx.Ctx, data CreateAuctionData, seller domain.Address) (*Auction, error)
	GetAuctionById(c ctx.Ctx, id string) (*Auction, error)
	GetActiveAuctions(c ctx.Ctx) ([]*Auction, error)
	GetUserAuctions(c ctx.Ctx, user domain.Address) ([]*Auction, error)
	GetBidsForAuction(c ctx.Ctx, auctionId string) ([]*Bid, error)
	PlaceBid(c ctx.Ctx, auctionId string, bidder domain.Address, amount decimal.Decimal) error
	BuyNow(c ctx.Ctx, auctionId string, buyer domain.Address) error
	EndAuction(c ctx.Ctx, auctionId string) error
	CancelAuction(c ctx.Ctx, auctionId string) error
	SyncWithContract(c ctx.Ctx) error
	AttachToken(c ctx.Ctx, auctionId string, t *token.Token) error
}
