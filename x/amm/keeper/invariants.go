package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// RegisterInvariants registers the amm module invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "share-conservation", ShareConservationInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-consistency", PoolConsistencyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "reserve-backing", ReserveBackingInvariant(k))
}

// AllInvariants runs all amm invariants.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if msg, broken := ShareConservationInvariant(k)(ctx); broken {
			return msg, broken
		}
		if msg, broken := PoolConsistencyInvariant(k)(ctx); broken {
			return msg, broken
		}
		return ReserveBackingInvariant(k)(ctx)
	}
}

// ShareConservationInvariant checks that every pool's TotalShares equals
// the sum of all recorded position shares, retired shares included.
func ShareConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sums := make(map[uint64]math.Int)
		if err := k.IterateAllPositions(ctx, func(position types.Position) bool {
			sum, ok := sums[position.PoolId]
			if !ok {
				sum = math.ZeroInt()
			}
			sums[position.PoolId] = sum.Add(position.Shares)
			return false
		}); err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-conservation",
				fmt.Sprintf("failed to iterate positions: %v", err)), true
		}

		var msg string
		var broken bool
		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			sum, ok := sums[pool.Id]
			if !ok {
				sum = math.ZeroInt()
			}
			if !sum.Equal(pool.TotalShares) {
				msg += fmt.Sprintf("\tpool %d: total shares %s, position sum %s\n",
					pool.Id, pool.TotalShares, sum)
				broken = true
			}
			return false
		})
		return sdk.FormatInvariant(types.ModuleName, "share-conservation", msg), broken
	}
}

// PoolConsistencyInvariant checks the structural validity of every pool
// record.
func PoolConsistencyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var msg string
		var broken bool
		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			if err := pool.Validate(); err != nil {
				msg += fmt.Sprintf("\tpool %d: %v\n", pool.Id, err)
				broken = true
			}
			return false
		})
		return sdk.FormatInvariant(types.ModuleName, "pool-consistency", msg), broken
	}
}

// ReserveBackingInvariant checks that the module account holds at least
// the sum of all recorded pool reserves for every denom.
func ReserveBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		required := make(map[string]math.Int)
		add := func(denom string, amount math.Int) {
			cur, ok := required[denom]
			if !ok {
				cur = math.ZeroInt()
			}
			required[denom] = cur.Add(amount)
		}
		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			add(pool.DenomA, pool.ReserveA)
			add(pool.DenomB, pool.ReserveB)
			return false
		})

		var msg string
		var broken bool
		for denom, amount := range required {
			balance := k.bankKeeper.GetBalance(ctx, k.moduleAddr, denom)
			if balance.Amount.LT(amount) {
				msg += fmt.Sprintf("\tdenom %s: reserves %s exceed module balance %s\n",
					denom, amount, balance.Amount)
				broken = true
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "reserve-backing", msg), broken
	}
}
