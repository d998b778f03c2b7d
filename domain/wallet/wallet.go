package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/domain"
)

// Account is the selected signing identity. The stores only ever look at
// the address and whether signing is possible.
type Account struct {
	Address domain.Address `json:"address"`
	Name    string         `json:"name,omitempty"`
}

// Session supplies the caller identity and balance that every mutating
// store operation requires.
type Session interface {
	// SelectedAccount returns the active account, or domain.ErrNoSigner when
	// nothing is selected.
	SelectedAccount(ctx.Ctx) (*Account, error)
	// Balance returns the active account's spendable balance in PAS.
	Balance(ctx.Ctx) (decimal.Decimal, error)
	// RequireSigner returns the active account's address when a signing key
	// is loaded, domain.ErrNoSigner otherwise.
	RequireSigner(ctx.Ctx) (domain.Address, error)
}
