package keeper

import (
	"context"

	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// Keeper of the amm store
type Keeper struct {
	storeKey       storetypes.StoreKey
	cdc            codec.BinaryCodec
	bankKeeper     types.BankKeeper
	registryKeeper types.RegistryKeeper

	// authority is the address allowed to run administrative operations
	// (featuring pools, setting reward rates), normally the gov module.
	authority string

	// Module account addresses are computed once and cached; they sit on
	// the hot path of every swap and deposit.
	moduleAddr     sdk.AccAddress
	rewardFundAddr sdk.AccAddress
	retiredAddr    sdk.AccAddress
	feeCollector   sdk.AccAddress

	metrics *Metrics
}

// NewKeeper creates a new amm Keeper instance. registryKeeper may be nil,
// in which case pools are created without branding metadata.
func NewKeeper(
	cdc codec.BinaryCodec,
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	registryKeeper types.RegistryKeeper,
	authority string,
) Keeper {
	return Keeper{
		storeKey:       key,
		cdc:            cdc,
		bankKeeper:     bankKeeper,
		registryKeeper: registryKeeper,
		authority:      authority,
		moduleAddr:     authtypes.NewModuleAddress(types.ModuleName),
		rewardFundAddr: authtypes.NewModuleAddress(types.RewardPoolName),
		retiredAddr:    authtypes.NewModuleAddress(types.RetiredSharesName),
		feeCollector:   authtypes.NewModuleAddress(authtypes.FeeCollectorName),
		metrics:        moduleMetrics(),
	}
}

// GetAuthority returns the module's administrative authority address.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// GetModuleAddress returns the cached module account address holding the
// pool reserves.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddr
}

// GetRewardFundAddress returns the address of the pre-funded reward
// reserve. Reward and bonus payouts are capped by its balance.
func (k Keeper) GetRewardFundAddress() sdk.AccAddress {
	return k.rewardFundAddr
}

// GetRetiredSharesAddress returns the null holder that permanently owns
// the minimum liquidity retired on first deposit.
func (k Keeper) GetRetiredSharesAddress() sdk.AccAddress {
	return k.retiredAddr
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
