package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	testkeeper "github.com/muse-chain/muse/testutil/keeper"
	"github.com/muse-chain/muse/x/amm/keeper"
	"github.com/muse-chain/muse/x/amm/types"
)

// TestSwapSequenceKeepsProduct drives a pool with random swaps in both
// directions and checks that the constant product never decreases and
// share conservation holds throughout.
func TestSwapSequenceKeepsProduct(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ctx, bank := testkeeper.AmmKeeper(t)
		pool := seedPool(t, k, ctx, bank)
		_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(100_000), math.NewInt(100_000))
		require.NoError(t, err)
		fundAccount(bank, traderAddr, coin("umuse", 10_000_000), coin("uatom", 10_000_000))

		current, err := k.GetPool(ctx, pool.Id)
		require.NoError(t, err)
		oldK := current.Product()

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			amount := rapid.Int64Range(1, 50_000).Draw(rt, "amount")
			denomIn := rapid.SampledFrom([]string{"uatom", "umuse"}).Draw(rt, "denomIn")

			_, err := k.Swap(ctx, traderAddr, pool.Id, denomIn, math.NewInt(amount), math.ZeroInt())
			if err != nil {
				// Tiny inputs can round to zero output; nothing may change.
				require.ErrorIs(rt, err, types.ErrInsufficientLiquidity)
			}

			current, err = k.GetPool(ctx, pool.Id)
			require.NoError(rt, err)
			newK := current.Product()
			if newK.LT(oldK) {
				rt.Fatalf("constant product decreased: %s -> %s", oldK, newK)
			}
			oldK = newK
		}

		msg, broken := keeper.ShareConservationInvariant(k)(ctx)
		require.False(rt, broken, msg)
	})
}

// TestDepositWithdrawNeverProfits deposits a random amount and withdraws
// every minted share; rounding must never pay out more than went in.
func TestDepositWithdrawNeverProfits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ctx, bank := testkeeper.AmmKeeper(t)
		pool := seedPool(t, k, ctx, bank)
		_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(100_000), math.NewInt(100_000))
		require.NoError(t, err)

		amountA := rapid.Int64Range(10, 1_000_000).Draw(rt, "amountA")
		amountB := rapid.Int64Range(10, 1_000_000).Draw(rt, "amountB")
		fundAccount(bank, traderAddr, coin("umuse", 2_000_000), coin("uatom", 2_000_000))

		result, err := k.Deposit(ctx, traderAddr, pool.Id, math.NewInt(amountA), math.NewInt(amountB))
		if err != nil {
			require.ErrorIs(rt, err, types.ErrInsufficientLiquidity)
			return
		}

		outA, outB, err := k.Withdraw(ctx, traderAddr, pool.Id, result.Shares)
		if err != nil {
			require.ErrorIs(rt, err, types.ErrInvalidInput)
			return
		}

		require.True(rt, outA.LTE(result.AmountA),
			"withdrew %s of A after depositing %s", outA, result.AmountA)
		require.True(rt, outB.LTE(result.AmountB),
			"withdrew %s of B after depositing %s", outB, result.AmountB)
	})
}

// TestAccrualProportionalToShares checks that two holders accruing over
// the same interval split rewards by share weight.
func TestAccrualProportionalToShares(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ctx, bank := testkeeper.AmmKeeper(t)
		pool := seedPool(t, k, ctx, bank)
		_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(100_000), math.NewInt(100_000))
		require.NoError(t, err)

		extra := rapid.Int64Range(1_000, 100_000).Draw(rt, "extra")
		fundAccount(bank, traderAddr, coin("umuse", 1_000_000), coin("uatom", 1_000_000))
		second, err := k.Deposit(ctx, traderAddr, pool.Id, math.NewInt(extra), math.NewInt(extra))
		require.NoError(rt, err)

		rate := rapid.Int64Range(1, 10_000).Draw(rt, "rate")
		require.NoError(rt, k.SetRewardRate(ctx, testkeeper.TestAuthority, pool.Id, math.NewInt(rate)))

		blocks := rapid.Int64Range(1, 1_000).Draw(rt, "blocks")
		ctx = ctx.WithBlockHeight(ctx.BlockHeight() + blocks)

		current, err := k.GetPool(ctx, pool.Id)
		require.NoError(rt, err)

		pendingProvider, err := k.PendingReward(ctx, pool.Id, providerAddr)
		require.NoError(rt, err)
		pendingTrader, err := k.PendingReward(ctx, pool.Id, traderAddr)
		require.NoError(rt, err)

		// Each claim floors independently, so pendings never exceed the
		// exact pro-rata entitlement.
		total := math.NewInt(rate).MulRaw(blocks)
		exactTrader := total.Mul(second.Shares).Quo(current.TotalShares)
		require.True(rt, pendingTrader.LTE(exactTrader))
		require.True(rt, pendingProvider.Add(pendingTrader).LTE(total))
	})
}
