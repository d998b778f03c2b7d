package token

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/domain"
)

// Metadata is the descriptive payload pinned behind a token's URI.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	TokenURI    string `json:"tokenURI,omitempty"`
}

// Token mirrors on-chain asset ownership plus the marketplace sale flags
// layered on top of it.
type Token struct {
	Id              string           `json:"id"`
	ContractTokenId *domain.TokenId  `json:"contractTokenId,omitempty"`
	Owner           domain.Address   `json:"owner"`
	Creator         domain.Address   `json:"creator"`
	Metadata        Metadata         `json:"metadata"`
	IsForSale       bool             `json:"isForSale"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	TxHash          domain.TxHash    `json:"txHash,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// MintData is the caller's request to mint a new token.
type MintData struct {
	To       domain.Address `json:"to"`
	TokenURI string         `json:"tokenURI"`
	Metadata Metadata       `json:"metadata"`
}

// ListingUpdate marks a token listed or delisted at a fixed price.
type ListingUpdate struct {
	IsForSale bool             `json:"isForSale"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

type Repo interface {
	FindAll(ctx.Ctx) ([]*Token, error)
	FindOne(c ctx.Ctx, id string) (*Token, error)
	Insert(c ctx.Ctx, t *Token) error
	Update(c ctx.Ctx, t *Token) error
	Remove(c ctx.Ctx, id string) error
}

type UseCase interface {
	Mint(c ctx.Ctx, data MintData) (*Token, error)
	GetTokenById(c ctx.Ctx, id string) (*Token, error)
	GetUserTokens(c ctx.Ctx, user domain.Address) ([]*Token, error)
	UpdateListing(c ctx.Ctx, id string, update ListingUpdate) error
	TransferOnSettlement(c ctx.Ctx, id string, newOwner domain.Address) error
	RemoveToken(c ctx.Ctx, id string) error
}
