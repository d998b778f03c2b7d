package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("item already exists")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")

	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidAddress      = errors.New("invalid address")

	// ErrInvalidState rejects an operation against an entity whose lifecycle
	// no longer permits it, before any chain call is made
	ErrInvalidState = errors.New("invalid state for requested operation")
	// ErrNoSigner rejects a mutating operation when no signing account is selected
	ErrNoSigner = errors.New("no signer available")
	// ErrNotLinked rejects bids against auctions without a confirmed chain id
	ErrNotLinked = errors.New("auction has no confirmed on-chain id")
)
