package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/log"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/auction"
	"github.com/passethub/marketplace/domain/token"
	"github.com/passethub/marketplace/domain/wallet"
	"github.com/passethub/marketplace/service/chain/contract"
)

var timeNow = time.Now

type TokenUseCaseCfg struct {
	TokenRepo   token.Repo
	Marketplace contract.Marketplace
	Session     wallet.Session
}

type impl struct {
	tokenRepo   token.Repo
	marketplace contract.Marketplace
	session     wallet.Session
}

func NewTokenUseCase(cfg *TokenUseCaseCfg) token.UseCase {
	return &impl{
		tokenRepo:   cfg.TokenRepo,
		marketplace: cfg.Marketplace,
		session:     cfg.Session,
	}
}

// Mint submits the mint transaction and records the token only after the
// chain confirms it. The minted chain id comes from the receipt's Transfer
// log.
func (im *impl) Mint(c bCtx.Ctx, data token.MintData) (*token.Token, error) {
	signer, err := im.session.RequireSigner(c)
	if err != nil {
		return nil, err
	}
	to := data.To
	if to.IsEmpty() {
		to = signer
	}

	tx, err := im.marketplace.MintNFT(c, to, data.TokenURI)
	if err != nil {
		c.WithFields(log.Fields{
			"to":  to,
			"err": err,
		}).Error("marketplace.MintNFT failed")
		return nil, auction.NewFailure(auction.FailureSubmission, "mintNFT", err.Error(), err)
	}
	receipt, err := tx.Wait(c)
	if err != nil {
		kind := auction.FailureConfirmation
		if xerrors.Is(err, contract.ErrConfirmationTimeout) {
			kind = auction.FailureConfirmationUnknown
		}
		c.WithFields(log.Fields{
			"to":  to,
			"tx":  tx.Hash(),
			"err": err,
		}).Error("mintNFT confirmation failed")
		return nil, auction.NewFailure(kind, "mintNFT", "mint was not confirmed", err)
	}

	contractTokenId, err := contract.ExtractMintedTokenId(receipt)
	if err != nil {
		c.WithField("err", err).Error("failed to extract token id from receipt")
		return nil, err
	}

	now := timeNow()
	t := &token.Token{
		Id:              uuid.New().String(),
		ContractTokenId: &contractTokenId,
		Owner:           to.ToLower(),
		Creator:         signer.ToLower(),
		Metadata:        data.Metadata,
		TxHash:          tx.Hash(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if t.Metadata.TokenURI == "" {
		t.Metadata.TokenURI = data.TokenURI
	}
	if err := im.tokenRepo.Insert(c, t); err != nil {
		c.WithField("err", err).Error("tokenRepo.Insert failed")
		return nil, err
	}
	return t, nil
}

func (im *impl) GetTokenById(c bCtx.Ctx, id string) (*token.Token, error) {
	return im.tokenRepo.FindOne(c, id)
}

// GetUserTokens returns tokens the user owns or created.
func (im *impl) GetUserTokens(c bCtx.Ctx, user domain.Address) ([]*token.Token, error) {
	all, err := im.tokenRepo.FindAll(c)
	if err != nil {
		return nil, err
	}
	res := make([]*token.Token, 0, len(all))
	for _, t := range all {
		if t.Owner.Equals(user) || t.Creator.Equals(user) {
			res = append(res, t)
		}
	}
	return res, nil
}

// UpdateListing flips the local sale flags. Fixed price listings never touch
// the chain; auctions do.
func (im *impl) UpdateListing(c bCtx.Ctx, id string, update token.ListingUpdate) error {
	t, err := im.tokenRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if update.IsForSale && (update.Price == nil || !update.Price.IsPositive()) {
		return xerrors.Errorf("listing price must be positive: %w", domain.ErrBadParamInput)
	}

	t.IsForSale = update.IsForSale
	t.Price = update.Price
	if !update.IsForSale {
		t.Price = nil
	}
	return im.tokenRepo.Update(c, t)
}

// TransferOnSettlement moves ownership after an auction settles and clears
// any stale listing on the token.
func (im *impl) TransferOnSettlement(c bCtx.Ctx, id string, newOwner domain.Address) error {
	t, err := im.tokenRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	t.Owner = newOwner.ToLower()
	t.IsForSale = false
	t.Price = nil
	return im.tokenRepo.Update(c, t)
}

func (im *impl) RemoveToken(c bCtx.Ctx, id string) error {
	t, err := im.tokenRepo.FindOne(c, id)
	if err != nil {
		return err
	}
	if t.IsForSale {
		return xerrors.Errorf("token %s is listed for sale: %w", id, domain.ErrInvalidState)
	}
	return im.tokenRepo.Remove(c, id)
}
