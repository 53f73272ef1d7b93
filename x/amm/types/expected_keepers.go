package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccountKeeper defines the expected account keeper used for simulations.
type AccountKeeper interface {
	GetAccount(ctx context.Context, addr sdk.AccAddress) sdk.AccountI
}

// BankKeeper is the asset-transfer capability the engine consumes. Moving
// coins may trigger caller-supplied hooks, which is why every mutating
// pool method runs under a per-pool reentrancy lock.
type BankKeeper interface {
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins
}

// RegistryKeeper is the metadata lookup used only for cosmetic pool
// branding. The amm module tolerates a missing record.
type RegistryKeeper interface {
	CreatorMetadata(ctx context.Context, creator sdk.AccAddress) (CreatorMetadata, bool)
}
