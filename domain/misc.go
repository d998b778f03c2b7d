package domain

import (
	"math/big"
	"strings"

	"golang.org/x/xerrors"
)

type ChainId int64

// PassetHubChainId is the evm chain id of the Passet Hub test network
const PassetHubChainId = ChainId(420420421)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId is a chain-assigned token identifier, kept in decimal string form
type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid token id %s: %w", i, ErrInvalidNumberFormat)
	}
	return id, nil
}

// AuctionId is a chain-assigned auction identifier
type AuctionId string

func (i AuctionId) String() string {
	return string(i)
}

func (i AuctionId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid auction id %s: %w", i, ErrInvalidNumberFormat)
	}
	return id, nil
}

type TxHash string

type BlockNumber uint64
