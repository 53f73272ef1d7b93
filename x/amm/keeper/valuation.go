package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// PoolValuation pairs a pool with its tracked value in the reference
// denom.
type PoolValuation struct {
	PoolId uint64   `json:"pool_id"`
	Value  math.Int `json:"value"`
}

// depositValue measures a deposit in the reference denom. A balanced
// constant-product deposit is worth twice its reference-side amount;
// deposits into pools without the reference asset have no measurable
// value and earn no creator bonus.
func (k Keeper) depositValue(params types.Params, pool *types.Pool, amountA, amountB math.Int) math.Int {
	switch params.ReferenceDenom {
	case pool.DenomA:
		return amountA.MulRaw(2)
	case pool.DenomB:
		return amountB.MulRaw(2)
	default:
		return math.ZeroInt()
	}
}

// poolValue values a pool at twice its reference-denom reserve. Pools
// that do not contain the reference asset are valued at zero.
func poolValue(params types.Params, pool *types.Pool) math.Int {
	switch params.ReferenceDenom {
	case pool.DenomA:
		return pool.ReserveA.MulRaw(2)
	case pool.DenomB:
		return pool.ReserveB.MulRaw(2)
	default:
		return math.ZeroInt()
	}
}

// updatePoolValue refreshes the stored valuation after a reserve change.
// Called from every path that mutates reserves, so the valuation index
// never lags the pool state.
func (k Keeper) updatePoolValue(ctx sdk.Context, pool *types.Pool, params types.Params) {
	value := poolValue(params, pool)
	bz, err := value.Marshal()
	if err != nil {
		// Marshal on a valid Int cannot fail; log and keep the stale value
		// rather than aborting the parent operation.
		ctx.Logger().Error("amm: marshal pool value", "pool", pool.Id, "err", err)
		return
	}
	k.getStore(ctx).Set(PoolValueKey(pool.Id), bz)
}

// GetPoolValue returns the tracked valuation of a pool in the reference
// denom.
func (k Keeper) GetPoolValue(ctx context.Context, poolID uint64) (math.Int, error) {
	store := k.getStore(ctx)
	bz := store.Get(PoolValueKey(poolID))
	if bz == nil {
		if _, err := k.GetPool(ctx, poolID); err != nil {
			return math.Int{}, err
		}
		return math.ZeroInt(), nil
	}
	var value math.Int
	if err := value.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("GetPoolValue: unmarshal pool %d: %w", poolID, err)
	}
	return value, nil
}

// TopPoolsByValue returns up to limit pools ordered by tracked valuation,
// highest first. Ties break toward the lower pool ID, so the ordering is
// deterministic across nodes. Ranking is a repeated linear scan over the
// valuation index; it only stays cheap while MaxPools is small.
func (k Keeper) TopPoolsByValue(ctx context.Context, limit int) ([]PoolValuation, error) {
	if limit <= 0 || limit > MaxIterationLimit {
		limit = MaxIterationLimit
	}

	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PoolValueKeyPrefix)
	defer iterator.Close()

	valuations := make([]PoolValuation, 0, 32)
	for ; iterator.Valid(); iterator.Next() {
		poolID := binary.BigEndian.Uint64(iterator.Key()[len(PoolValueKeyPrefix):])
		var value math.Int
		if err := value.Unmarshal(iterator.Value()); err != nil {
			return nil, fmt.Errorf("TopPoolsByValue: unmarshal pool %d: %w", poolID, err)
		}
		valuations = append(valuations, PoolValuation{PoolId: poolID, Value: value})
	}

	if limit > len(valuations) {
		limit = len(valuations)
	}
	// The iterator walks pool IDs ascending, so on equal values the
	// strict comparison keeps the lower ID.
	ranked := make([]PoolValuation, 0, limit)
	taken := make([]bool, len(valuations))
	for len(ranked) < limit {
		best := -1
		for i := range valuations {
			if taken[i] {
				continue
			}
			if best < 0 || valuations[i].Value.GT(valuations[best].Value) {
				best = i
			}
		}
		taken[best] = true
		ranked = append(ranked, valuations[best])
	}
	return ranked, nil
}
