package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/passethub/marketplace/domain"
)

// DefaultMinBidIncrement is the marketplace-wide minimum step between
// consecutive bids, in the display unit (PAS).
var DefaultMinBidIncrement = decimal.RequireFromString("0.1")

// Policy computes bid validity from projection state. All methods are pure;
// the store's precondition checks and the display layer must share a single
// Policy value so the formulas are never duplicated.
type Policy struct {
	MinBidIncrement decimal.Decimal
}

func NewPolicy(minBidIncrement decimal.Decimal) Policy {
	return Policy{MinBidIncrement: minBidIncrement}
}

func DefaultPolicy() Policy {
	return NewPolicy(DefaultMinBidIncrement)
}

// MinimumNextBid is the smallest amount the next bid may carry.
func (p Policy) MinimumNextBid(a *Auction) decimal.Decimal {
	return a.CurrentPrice.Add(p.MinBidIncrement)
}

// IsValidBid reports whether amount clears the minimum next bid and fits
// within the caller's balance.
func (p Policy) IsValidBid(a *Auction, amount decimal.Decimal, callerBalance decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinimumNextBid(a)) && amount.LessThanOrEqual(callerBalance)
}

// IsReserveMet reports whether the auction's reserve, if any, is covered by
// the current price.
func IsReserveMet(a *Auction) bool {
	if a.ReservePrice == nil {
		return true
	}
	return a.CurrentPrice.GreaterThanOrEqual(*a.ReservePrice)
}

// TimeRemaining is the wall-clock time until the auction ends, floored at zero.
func TimeRemaining(a *Auction, now time.Time) time.Duration {
	remaining := a.EndTime.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func IsEnded(a *Auction, now time.Time) bool {
	return TimeRemaining(a, now) == 0
}

// ValidateCreate checks the price ordering rules for a new listing:
// start price positive, reserve above start, buy-now above start and above
// reserve when both are enabled.
func ValidateCreate(data CreateAuctionData) error {
	if !data.StartPrice.IsPositive() {
		return NewFailure(FailureValidation, "createAuction", "start price must be positive", domain.ErrBadParamInput)
	}
	if data.Duration <= 0 {
		return NewFailure(FailureValidation, "createAuction", "duration must be positive", domain.ErrBadParamInput)
	}
	if data.EnableReserve && !data.ReservePrice.GreaterThan(data.StartPrice) {
		return NewFailure(FailureValidation, "createAuction", "reserve price must exceed start price", domain.ErrBadParamInput)
	}
	if data.EnableBuyNow && !data.BuyNowPrice.GreaterThan(data.StartPrice) {
		return NewFailure(FailureValidation, "createAuction", "buy now price must exceed start price", domain.ErrBadParamInput)
	}
	if data.EnableReserve && data.EnableBuyNow && !data.BuyNowPrice.GreaterThan(data.ReservePrice) {
		return NewFailure(FailureValidation, "createAuction", "buy now price must exceed reserve price", domain.ErrBadParamInput)
	}
	return nil
}
