package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// withPoolLock runs fn under the pool's reentrancy lock with atomic
// commit semantics. The lock lives in the KVStore of the parent context,
// while fn runs against a cache context: if fn fails, every mutation it
// attempted (including bank transfers) is discarded; if it succeeds, the
// cache is written through in one step.
//
// Asset transfers can trigger caller-supplied hooks. A hooked call that
// re-enters any mutating method on the same pool observes the lock
// through the cache and is rejected with ErrReentrancy instead of
// running against half-updated reserves.
func (k Keeper) withPoolLock(ctx context.Context, poolID uint64, fn func(sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := k.acquirePoolLock(sdkCtx, poolID); err != nil {
		return err
	}
	defer k.releasePoolLock(sdkCtx, poolID)

	cacheCtx, writeFn := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeFn()
	return nil
}

// acquirePoolLock sets the pool's in-progress marker, failing if it is
// already held.
func (k Keeper) acquirePoolLock(ctx sdk.Context, poolID uint64) error {
	store := ctx.KVStore(k.storeKey)
	key := PoolLockKey(poolID)
	if store.Has(key) {
		return types.ErrReentrancy.Wrapf("pool %d operation already in progress", poolID)
	}
	store.Set(key, []byte{0x01})
	return nil
}

// releasePoolLock clears the pool's in-progress marker.
func (k Keeper) releasePoolLock(ctx sdk.Context, poolID uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(PoolLockKey(poolID))
}

// validatePoolInvariant checks that the constant product k = x * y has
// not decreased. Fees only ever grow k, so any decrease means rounding
// was exploited or the math is wrong. The product is recomputed through
// SafeMul so reserves that outgrew the safe arithmetic range abort the
// operation instead of panicking.
func (k Keeper) validatePoolInvariant(pool *types.Pool, oldK math.Int) error {
	if pool.ReserveA.IsZero() || pool.ReserveB.IsZero() {
		return nil
	}
	newK, err := SafeMul(pool.ReserveA, pool.ReserveB)
	if err != nil {
		return err
	}
	if newK.LT(oldK) {
		return types.ErrInvariantViolation.Wrapf(
			"constant product decreased: old_k=%s, new_k=%s",
			oldK.String(), newK.String(),
		)
	}
	return nil
}
