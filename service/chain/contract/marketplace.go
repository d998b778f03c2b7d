package contract

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	baseabi "github.com/passethub/marketplace/base/abi"
	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/service/chain"
)

var (
	// ErrTransactionRejected signals a definite on-chain revert
	ErrTransactionRejected = errors.New("transaction rejected by contract")
	// ErrInsufficientValue signals a rejection due to the value attached to the call
	ErrInsufficientValue = errors.New("insufficient value")
	// ErrConfirmationTimeout signals that confirmation was not observed in
	// time. The outcome is unknown until a reconciliation pass.
	ErrConfirmationTimeout = errors.New("confirmation not observed before timeout")
)

// chainDecimals is the smallest-unit scale of the chain's native token
const chainDecimals = 18

// AuctionSnapshot is the decoded, display-unit view of one on-chain auction.
type AuctionSnapshot struct {
	AuctionId     domain.AuctionId
	TokenId       domain.TokenId
	Seller        domain.Address
	StartingPrice decimal.Decimal
	BuyNowPrice   decimal.Decimal
	CurrentBid    decimal.Decimal
	CurrentBidder domain.Address
	EndTime       time.Time
	Active        bool
}

// Marketplace translates application-level requests into contract calls and
// decoded responses. It owns no business rules and retains no auction state.
type Marketplace interface {
	MintNFT(c bCtx.Ctx, to domain.Address, tokenURI string) (PendingTx, error)
	Approve(c bCtx.Ctx, to domain.Address, tokenId domain.TokenId) (PendingTx, error)
	CreateAuction(c bCtx.Ctx, tokenId domain.TokenId, startPrice decimal.Decimal, buyNowPriceOrZero decimal.Decimal, duration time.Duration) (PendingTx, error)
	PlaceBid(c bCtx.Ctx, auctionId domain.AuctionId, amount decimal.Decimal) (PendingTx, error)
	BuyNow(c bCtx.Ctx, auctionId domain.AuctionId, price decimal.Decimal) (PendingTx, error)
	EndAuction(c bCtx.Ctx, auctionId domain.AuctionId) (PendingTx, error)
	CancelAuction(c bCtx.Ctx, auctionId domain.AuctionId) (PendingTx, error)
	Withdraw(c bCtx.Ctx) (PendingTx, error)

	GetAuction(c bCtx.Ctx, auctionId domain.AuctionId) (*AuctionSnapshot, error)
	GetActiveAuctions(c bCtx.Ctx, start int, count int) ([]*AuctionSnapshot, int, error)
	OwnerOf(c bCtx.Ctx, tokenId domain.TokenId) (domain.Address, error)
	TokenURI(c bCtx.Ctx, tokenId domain.TokenId) (string, error)
	PendingReturns(c bCtx.Ctx, addr domain.Address) (decimal.Decimal, error)
	MarketplaceFee(c bCtx.Ctx) (decimal.Decimal, error)
	CurrentTokenId(c bCtx.Ctx) (domain.TokenId, error)
	CurrentAuctionId(c bCtx.Ctx) (domain.AuctionId, error)
}

type MarketplaceCfg struct {
	ChainService    chain.Client
	ContractAddress domain.Address
	// ConfirmTimeout bounds every receipt wait. Expiry maps to
	// ErrConfirmationTimeout, never an indefinite hang.
	ConfirmTimeout time.Duration
}

type marketplaceImpl struct {
	chainService   chain.Client
	abi            ethabi.ABI
	addr           common.Address
	confirmTimeout time.Duration
}

func NewMarketplace(cfg *MarketplaceCfg) Marketplace {
	return &marketplaceImpl{
		chainService:   cfg.ChainService,
		abi:            baseabi.MarketplaceABI,
		addr:           common.HexToAddress(string(cfg.ContractAddress)),
		confirmTimeout: cfg.ConfirmTimeout,
	}
}

// PendingTx is the handle for a broadcast transaction. Wait resolves it to
// a receipt within the configured confirmation timeout.
type PendingTx interface {
	Hash() domain.TxHash
	// Wait blocks until the transaction is mined, the contract reverts it,
	// or the timeout expires. A revert returns ErrTransactionRejected; a
	// timeout returns ErrConfirmationTimeout with the outcome unknown.
	Wait(c bCtx.Ctx) (*types.Receipt, error)
}

type pendingTx struct {
	tx      *types.Transaction
	client  chain.Client
	timeout time.Duration
}

func (p *pendingTx) Hash() domain.TxHash {
	return domain.TxHash(p.tx.Hash().Hex())
}

func (p *pendingTx) Wait(c bCtx.Ctx) (*types.Receipt, error) {
	waitCtx, cancel := bCtx.WithTimeout(c, p.timeout)
	defer cancel()

	receipt, err := p.client.WaitMined(waitCtx, p.tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, xerrors.Errorf("tx %s: %w", p.tx.Hash().Hex(), ErrConfirmationTimeout)
		}
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, xerrors.Errorf("tx %s reverted: %w", p.tx.Hash().Hex(), ErrTransactionRejected)
	}
	return receipt, nil
}

// toWei converts a display amount into the chain's smallest unit. Amounts
// with sub-wei precision are rejected rather than truncated.
func toWei(d decimal.Decimal) (*big.Int, error) {
	shifted := d.Shift(chainDecimals)
	if !shifted.IsInteger() {
		return nil, xerrors.Errorf("amount %s has sub-wei precision: %w", d, domain.ErrInvalidNumberFormat)
	}
	if shifted.IsNegative() {
		return nil, xerrors.Errorf("amount %s is negative: %w", d, domain.ErrInvalidNumberFormat)
	}
	return shifted.BigInt(), nil
}

func fromWei(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, -chainDecimals)
}

func (im *marketplaceImpl) pending(tx *types.Transaction) PendingTx {
	return &pendingTx{tx: tx, client: im.chainService, timeout: im.confirmTimeout}
}

func (im *marketplaceImpl) MintNFT(c bCtx.Ctx, to domain.Address, tokenURI string) (PendingTx, error) {
	tx, err := im.chainService.Transact(c, im.addr, nil, im.abi, "mintNFT", common.HexToAddress(string(to)), tokenURI)
	if err != nil {
		return nil, err
	}
	return im.pending(tx), nil
}

func (im *marketplaceImpl) Approve(c bCtx.Ctx, to domain.Address, tokenId domain.TokenId) (PendingTx, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return nil, err
	}
	tx, err := im.chainService.Transact(c, im.addr, nil, im.abi, "approve", common.HexToAddress(string(to)), id)
	if err != nil {
		return nil, err
	}
	return im.pending(tx), nil
}

func (im *marketplaceImpl) CreateAuction(c bCtx.Ctx, tokenId domain.TokenId, startPrice decimal.Decimal, buyNowPriceOrZero decimal.Decimal, duration time.Duration) (PendingTx, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return nil, err
	}
	startWei, err := toWei(startPrice)
	if err != nil {
		return nil, err
	}
	buyNowWei, err := toWei(buyNowPriceOrZero)
	if err != nil {
		return nil, err
	}
	durationSecs := big.NewInt(int64(duration / time.Second))
	tx, err := im.chainService.Transact(c, im.addr, nil, im.abi, "createAuction", id, startWei, buyNowWei, durationSecs)
	if err != nil {
		return nil, err
	}
	return im.pending(tx), nil
}

func (im *marketplaceImpl) PlaceBid(c bCtx.Ctx, auctionId domain.AuctionId, amount decimal.Decimal) (PendingTx, error) {
	id, err := auctionId.ToBigInt()
	if err != nil {
		return nil, err
	}
	amountWei, err := toWei(amount)
	if err != nil {
		return nil, err
	}
	tx, err := im.chainService.Transact(c, im.addr, amountWei, im.abi, "placeBid", id)
	if err != nil {
		return nil, mapValueError(err)
	}
	return im.pending(tx), nil
}

func (im *marketplaceImpl) BuyNow(c bCtx.Ctx, auctionId domain.AuctionId, price decimal.Decimal) (PendingTx, error) {
	id, err := auctionId.ToBigInt()
	if err != nil {
		return nil, err
	}
	priceWei, err := toWei(price)
	if err != nil {
		return nil, err
	}
	tx, err := im.chainService.Transact(c, im.addr, priceWei, im.abi, "buyNow", id)
	if err != nil {
		return nil, mapValueError(err)
	}
	return im.pending(tx), nil
}

func (im *marketplaceImpl) EndAuction(c bCtx.Ctx, auctionId domain.AuctionId) (PendingTx, error) {
	return im.transactById(c, "endAuction", auctionId)
}

func (im *marketplaceImpl) CancelAuction(c bCtx.Ctx, auctionId domain.AuctionId) (PendingTx, error) {
	return im.transactById(c, "cancelAuction", auctionId)
}

func (im *marketplaceImpl) transactById(c bCtx.Ctx, method string, auctionId domain.AuctionId) (PendingTx, error) {
	id, err := auctionId.ToBigInt()
	if err != nil {
		return nil, err
	}
	tx, err := im.chainService.Transact(c, im.addr, nil, im.abi, method, id)
	if err != nil {
		return nil, err
	}
	return im.pending(tx), nil
}

func (im *marketplaceImpl) Withdraw(c bCtx.Ctx) (PendingTx, error) {
	tx, err := im.chainService.Transact(c, im.addr, nil, im.abi, "withdraw")
	if err != nil {
		return nil, err
	}
	return im.pending(tx), nil
}

// GetAuction returns the decoded snapshot, or nil when the contract answers
// with the all-zero-inactive sentinel meaning no such auction.
func (im *marketplaceImpl) GetAuction(c bCtx.Ctx, auctionId domain.AuctionId) (*AuctionSnapshot, error) {
	id, err := auctionId.ToBigInt()
	if err != nil {
		return nil, err
	}
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "getAuction", id)
	if err != nil {
		return nil, err
	}
	raw := *ethabi.ConvertType(unpacked[0], new(baseabi.MarketplaceAuction)).(*baseabi.MarketplaceAuction)
	if !raw.Active && raw.TokenId.Sign() == 0 {
		return nil, nil
	}
	snapshot := im.toSnapshot(&raw)
	snapshot.AuctionId = auctionId
	return snapshot, nil
}

func (im *marketplaceImpl) GetActiveAuctions(c bCtx.Ctx, start int, count int) ([]*AuctionSnapshot, int, error) {
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "getActiveAuctions", big.NewInt(int64(start)), big.NewInt(int64(count)))
	if err != nil {
		return nil, 0, err
	}
	raws := *ethabi.ConvertType(unpacked[0], new([]baseabi.MarketplaceAuction)).(*[]baseabi.MarketplaceAuction)
	total := int(unpacked[1].(*big.Int).Int64())

	// The page does not expose chain-assigned ids; deriving them from the
	// pagination offset would assume dense gap-free ids. Snapshot ids are
	// left unset here and resolved per-auction by the store.
	snapshots := make([]*AuctionSnapshot, 0, len(raws))
	for i := range raws {
		snapshots = append(snapshots, im.toSnapshot(&raws[i]))
	}
	return snapshots, total, nil
}

func (im *marketplaceImpl) toSnapshot(raw *baseabi.MarketplaceAuction) *AuctionSnapshot {
	return &AuctionSnapshot{
		TokenId:       domain.TokenId(raw.TokenId.String()),
		Seller:        domain.Address(raw.Seller.Hex()).ToLower(),
		StartingPrice: fromWei(raw.StartingPrice),
		BuyNowPrice:   fromWei(raw.BuyNowPrice),
		CurrentBid:    fromWei(raw.CurrentBid),
		CurrentBidder: domain.Address(raw.CurrentBidder.Hex()).ToLower(),
		EndTime:       time.Unix(raw.EndTime.Int64(), 0),
		Active:        raw.Active,
	}
}

func (im *marketplaceImpl) OwnerOf(c bCtx.Ctx, tokenId domain.TokenId) (domain.Address, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return "", err
	}
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "ownerOf", id)
	if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).Hex()).ToLower(), nil
}

func (im *marketplaceImpl) TokenURI(c bCtx.Ctx, tokenId domain.TokenId) (string, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return "", err
	}
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "tokenURI", id)
	if err != nil {
		return "", err
	}
	return unpacked[0].(string), nil
}

func (im *marketplaceImpl) PendingReturns(c bCtx.Ctx, addr domain.Address) (decimal.Decimal, error) {
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "pendingReturns", common.HexToAddress(string(addr)))
	if err != nil {
		return decimal.Zero, err
	}
	return fromWei(unpacked[0].(*big.Int)), nil
}

// MarketplaceFee returns the fee as a percentage. The contract stores basis
// points.
func (im *marketplaceImpl) MarketplaceFee(c bCtx.Ctx) (decimal.Decimal, error) {
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "marketplaceFee")
	if err != nil {
		return decimal.Zero, err
	}
	bps := decimal.NewFromBigInt(unpacked[0].(*big.Int), 0)
	return bps.Div(decimal.NewFromInt(100)), nil
}

func (im *marketplaceImpl) CurrentTokenId(c bCtx.Ctx) (domain.TokenId, error) {
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "getCurrentTokenId")
	if err != nil {
		return "", err
	}
	return domain.TokenId(unpacked[0].(*big.Int).String()), nil
}

func (im *marketplaceImpl) CurrentAuctionId(c bCtx.Ctx) (domain.AuctionId, error) {
	unpacked, err := im.chainService.Call(c, im.addr, im.abi, "getCurrentAuctionId")
	if err != nil {
		return "", err
	}
	return domain.AuctionId(unpacked[0].(*big.Int).String()), nil
}

// ExtractAuctionId pulls the chain-assigned auction id from the creation
// receipt's AuctionCreated log. The receipt is authoritative; ids are never
// derived from pagination offsets.
func ExtractAuctionId(receipt *types.Receipt) (domain.AuctionId, error) {
	eventId := baseabi.MarketplaceABI.Events["AuctionCreated"].ID
	for _, l := range receipt.Logs {
		if len(l.Topics) == 0 || l.Topics[0] != eventId {
			continue
		}
		created, err := baseabi.ToAuctionCreatedLog(l)
		if err != nil {
			return "", err
		}
		return domain.AuctionId(created.AuctionId.String()), nil
	}
	return "", xerrors.Errorf("no AuctionCreated log in receipt %s: %w", receipt.TxHash.Hex(), domain.ErrNotFound)
}

// ExtractMintedTokenId pulls the token id from the mint receipt's Transfer log.
func ExtractMintedTokenId(receipt *types.Receipt) (domain.TokenId, error) {
	eventId := baseabi.MarketplaceABI.Events["Transfer"].ID
	for _, l := range receipt.Logs {
		if len(l.Topics) < 4 || l.Topics[0] != eventId {
			continue
		}
		transfer, err := baseabi.ToTransferLog(l)
		if err != nil {
			return "", err
		}
		return domain.TokenId(transfer.TokenId.String()), nil
	}
	return "", xerrors.Errorf("no Transfer log in receipt %s: %w", receipt.TxHash.Hex(), domain.ErrNotFound)
}

// mapValueError classifies node-side rejections of value-bearing calls.
func mapValueError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "insufficient funds") || strings.Contains(msg, "bid too low") {
		return xerrors.Errorf("%s: %w", err.Error(), ErrInsufficientValue)
	}
	return err
}
