package types

import (
	"cosmossdk.io/errors"
)

// amm module sentinel errors
var (
	ErrInvalidInput          = errors.Register(ModuleName, 2, "invalid input")
	ErrInvalidDenomPair      = errors.Register(ModuleName, 3, "invalid denom pair")
	ErrPoolNotFound          = errors.Register(ModuleName, 4, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 5, "pool already exists")
	ErrPoolInactive          = errors.Register(ModuleName, 6, "pool is not active")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 7, "insufficient liquidity in pool")
	ErrInsufficientShares    = errors.Register(ModuleName, 8, "insufficient liquidity shares")
	ErrSlippageExceeded      = errors.Register(ModuleName, 9, "output amount below minimum")
	ErrUnauthorized          = errors.Register(ModuleName, 10, "unauthorized")
	ErrOverflow              = errors.Register(ModuleName, 11, "arithmetic overflow")
	ErrReentrancy            = errors.Register(ModuleName, 12, "reentrant call rejected")
	ErrInvariantViolation    = errors.Register(ModuleName, 13, "invariant violation")
	ErrInvalidPoolState      = errors.Register(ModuleName, 14, "invalid pool state")
	ErrMaxPoolsReached       = errors.Register(ModuleName, 15, "maximum number of pools reached")
	ErrInvalidAddress        = errors.Register(ModuleName, 16, "invalid address")
)
