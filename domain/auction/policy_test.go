package auction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/passethub/marketplace/base/ptr"
)

type policySuite struct {
	suite.Suite

	policy Policy
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(policySuite))
}

func (s *policySuite) SetupSuite() {
	s.policy = DefaultPolicy()
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func (s *policySuite) TestMinimumNextBid() {
	a := &Auction{CurrentPrice: dec("25.5")}
	s.True(s.policy.MinimumNextBid(a).Equal(dec("25.6")))
}

func (s *policySuite) TestIsValidBid() {
	a := &Auction{CurrentPrice: dec("25.5")}
	balance := dec("100")

	// below minimum increment
	s.False(s.policy.IsValidBid(a, dec("25.55"), balance))
	// exactly the minimum
	s.True(s.policy.IsValidBid(a, dec("25.6"), balance))
	// above minimum but over balance
	s.False(s.policy.IsValidBid(a, dec("101"), balance))
}

func (s *policySuite) TestIsReserveMet() {
	noReserve := &Auction{CurrentPrice: dec("1")}
	s.True(IsReserveMet(noReserve))

	a := &Auction{CurrentPrice: dec("25.5"), ReservePrice: ptr.Decimal(dec("30"))}
	s.False(IsReserveMet(a))

	a.CurrentPrice = dec("30")
	s.True(IsReserveMet(a))
}

func (s *policySuite) TestTimeRemaining() {
	now := time.Now()
	a := &Auction{EndTime: now.Add(time.Hour)}

	s.Equal(time.Hour, TimeRemaining(a, now))
	s.Equal(time.Duration(0), TimeRemaining(a, now.Add(2*time.Hour)))
	s.False(IsEnded(a, now))
	s.True(IsEnded(a, now.Add(time.Hour)))
}

func (s *policySuite) TestValidateCreate() {
	base := CreateAuctionData{
		TokenId:    "tok-1",
		StartPrice: dec("20"),
		Duration:   7 * 24 * time.Hour,
	}

	s.NoError(ValidateCreate(base))

	zeroStart := base
	zeroStart.StartPrice = decimal.Zero
	s.Error(ValidateCreate(zeroStart))

	lowReserve := base
	lowReserve.EnableReserve = true
	lowReserve.ReservePrice = dec("20")
	s.Error(ValidateCreate(lowReserve))

	lowBuyNow := base
	lowBuyNow.EnableBuyNow = true
	lowBuyNow.BuyNowPrice = dec("15")
	s.Error(ValidateCreate(lowBuyNow))

	// buy now must clear the reserve when both are enabled
	crossed := base
	crossed.EnableReserve = true
	crossed.ReservePrice = dec("30")
	crossed.EnableBuyNow = true
	crossed.BuyNowPrice = dec("30")
	err := ValidateCreate(crossed)
	s.Error(err)
	f := AsFailure(err)
	s.NotNil(f)
	s.Equal(FailureValidation, f.Kind)

	ok := base
	ok.EnableReserve = true
	ok.ReservePrice = dec("30")
	ok.EnableBuyNow = true
	ok.BuyNowPrice = dec("50")
	s.NoError(ValidateCreate(ok))
}
