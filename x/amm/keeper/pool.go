package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// MaxIterationLimit caps unbounded pool queries to keep them from being
// used as a DoS vector.
const MaxIterationLimit = 100

// GetNextPoolID returns the next pool ID and increments the counter
func (k Keeper) GetNextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(PoolCountKey)

	var poolID uint64
	if bz == nil {
		poolID = 1
	} else {
		poolID = binary.BigEndian.Uint64(bz)
	}

	nextBz := make([]byte, 8)
	binary.BigEndian.PutUint64(nextBz, poolID+1)
	store.Set(PoolCountKey, nextBz)

	return poolID
}

// SetNextPoolID sets the next pool ID counter
func (k Keeper) SetNextPoolID(ctx context.Context, poolID uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, poolID)
	store.Set(PoolCountKey, bz)
}

// GetTotalPoolsCount returns the number of pools in O(1) time.
func (k Keeper) GetTotalPoolsCount(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(TotalPoolsCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// SetTotalPoolsCount sets the total pools count.
func (k Keeper) SetTotalPoolsCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	store.Set(TotalPoolsCountKey, bz)
}

// CreatePool creates a new, empty liquidity pool for an unordered asset
// pair. Creation is one-time: a pair with an active pool cannot be
// recreated. Reserves stay zero until the first deposit seeds them.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, denomA, denomB string) (*types.Pool, error) {
	if denomA == denomB {
		return nil, types.ErrInvalidDenomPair.Wrap("cannot create pool with identical denoms")
	}
	if denomA == "" || denomB == "" {
		return nil, types.ErrInvalidDenomPair.Wrap("denoms cannot be empty")
	}
	if err := sdk.ValidateDenom(denomA); err != nil {
		return nil, types.ErrInvalidDenomPair.Wrapf("denom A: %v", err)
	}
	if err := sdk.ValidateDenom(denomB); err != nil {
		return nil, types.ErrInvalidDenomPair.Wrapf("denom B: %v", err)
	}

	denomA, denomB = types.CanonicalPair(denomA, denomB)

	if existing, err := k.GetPoolByDenoms(ctx, denomA, denomB); err == nil && existing.Active {
		return nil, types.ErrPoolAlreadyExists.Wrapf("active pool exists for pair %s/%s", denomA, denomB)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: get params: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	poolCount := k.GetTotalPoolsCount(ctx)
	if poolCount >= params.MaxPools {
		return nil, types.ErrMaxPoolsReached.Wrapf("maximum number of pools (%d) reached", params.MaxPools)
	}
	if poolCount > params.MaxPools*9/10 {
		sdkCtx.Logger().Info(
			"amm pool count approaching limit",
			"current", poolCount,
			"max", params.MaxPools,
		)
	}

	poolID := k.GetNextPoolID(ctx)

	pool := &types.Pool{
		Id:                  poolID,
		DenomA:              denomA,
		DenomB:              denomB,
		ReserveA:            math.ZeroInt(),
		ReserveB:            math.ZeroInt(),
		TotalShares:         math.ZeroInt(),
		Creator:             creator.String(),
		Active:              true,
		Featured:            false,
		RewardMultiplierBps: types.DefaultRewardMultiplierBps,
		RewardRatePerBlock:  math.ZeroInt(),
		Volume:              math.ZeroInt(),
		FeesCollected:       math.ZeroInt(),
		CreatedAt:           sdkCtx.BlockHeight(),
	}

	// Branding is cosmetic; a missing registry record is not an error.
	if k.registryKeeper != nil {
		if meta, found := k.registryKeeper.CreatorMetadata(ctx, creator); found {
			pool.DisplayName = meta.DisplayName
			pool.AssetTitle = meta.AssetTitle
		}
	}

	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate pool state: %w", err)
	}

	if err := k.SetPool(ctx, pool); err != nil {
		return nil, fmt.Errorf("CreatePool: save pool: %w", err)
	}
	k.SetTotalPoolsCount(ctx, poolCount+1)
	k.SetPoolByDenoms(ctx, denomA, denomB, poolID)

	sdkCtx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyDenomA, denomA),
			sdk.NewAttribute(types.AttributeKeyDenomB, denomB),
			sdk.NewAttribute(types.AttributeKeyDisplayName, pool.DisplayName),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(sdk.AttributeKeySender, creator.String()),
		),
	})

	if k.metrics != nil {
		k.metrics.PoolsTotal.Set(float64(poolCount + 1))
	}

	return pool, nil
}

// GetPool retrieves a pool by its unique numeric ID.
// Returns ErrPoolNotFound if the pool does not exist.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (*types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(PoolKey(poolID))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return &pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool *types.Pool) error {
	store := k.getStore(ctx)
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	store.Set(PoolKey(pool.Id), bz)
	return nil
}

// GetPoolByDenoms retrieves a pool by its denom pair (order-independent).
func (k Keeper) GetPoolByDenoms(ctx context.Context, denomA, denomB string) (*types.Pool, error) {
	denomA, denomB = types.CanonicalPair(denomA, denomB)

	store := k.getStore(ctx)
	bz := store.Get(PoolByDenomsKey(denomA, denomB))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool not found for pair %s/%s", denomA, denomB)
	}

	poolID := binary.BigEndian.Uint64(bz)
	return k.GetPool(ctx, poolID)
}

// SetPoolByDenoms indexes a pool by its canonical denom pair
func (k Keeper) SetPoolByDenoms(ctx context.Context, denomA, denomB string, poolID uint64) {
	store := k.getStore(ctx)
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	store.Set(PoolByDenomsKey(denomA, denomB), poolIDBytes)
}

// IteratePools iterates over all pools
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns all pools, capped at MaxIterationLimit.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := make([]types.Pool, 0, MaxIterationLimit)
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		if len(pools) >= MaxIterationLimit {
			return true
		}
		pools = append(pools, pool)
		return false
	})
	return pools, err
}
