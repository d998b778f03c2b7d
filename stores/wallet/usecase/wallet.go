package usecase

import (
	"github.com/shopspring/decimal"

	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/wallet"
	"github.com/passethub/marketplace/service/chain"
)

// chainDecimals is the native token's smallest-unit scale
const chainDecimals = 18

type SessionCfg struct {
	ChainService chain.Client
	AccountName  string
}

type impl struct {
	chainService chain.Client
	accountName  string
}

// NewSession exposes the node client's signer as the selected account.
func NewSession(cfg *SessionCfg) wallet.Session {
	return &impl{
		chainService: cfg.ChainService,
		accountName:  cfg.AccountName,
	}
}

func (im *impl) SelectedAccount(c bCtx.Ctx) (*wallet.Account, error) {
	addr, err := im.RequireSigner(c)
	if err != nil {
		return nil, err
	}
	return &wallet.Account{
		Address: addr,
		Name:    im.accountName,
	}, nil
}

func (im *impl) Balance(c bCtx.Ctx) (decimal.Decimal, error) {
	addr, err := im.chainService.SignerAddress()
	if err != nil {
		return decimal.Zero, domain.ErrNoSigner
	}
	wei, err := im.chainService.BalanceAt(c, addr)
	if err != nil {
		c.WithField("err", err).Error("chainService.BalanceAt failed")
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(wei, -chainDecimals), nil
}

func (im *impl) RequireSigner(c bCtx.Ctx) (domain.Address, error) {
	if !im.chainService.HasSigner() {
		return domain.EmptyAddress, domain.ErrNoSigner
	}
	addr, err := im.chainService.SignerAddress()
	if err != nil {
		return domain.EmptyAddress, domain.ErrNoSigner
	}
	return domain.Address(addr.Hex()).ToLower(), nil
}
