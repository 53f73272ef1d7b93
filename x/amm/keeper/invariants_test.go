package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/muse-chain/muse/testutil/keeper"
	"github.com/muse-chain/muse/x/amm/keeper"
)

func TestInvariantsHoldThroughOperations(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedPool(t, k, ctx, bank)
	fundAccount(bank, traderAddr, coin("umuse", 100_000), coin("uatom", 100_000))

	check := func(stage string) {
		msg, broken := keeper.AllInvariants(k)(ctx)
		require.False(t, broken, "invariant broken after %s: %s", stage, msg)
	}

	check("pool creation")

	_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(10_000), math.NewInt(10_000))
	require.NoError(t, err)
	check("initial deposit")

	_, err = k.Deposit(ctx, traderAddr, pool.Id, math.NewInt(3_000), math.NewInt(3_000))
	require.NoError(t, err)
	check("subsequent deposit")

	_, err = k.Swap(ctx, traderAddr, pool.Id, "uatom", math.NewInt(2_000), math.ZeroInt())
	require.NoError(t, err)
	check("swap")

	_, _, err = k.Withdraw(ctx, providerAddr, pool.Id, math.NewInt(5_000))
	require.NoError(t, err)
	check("withdraw")
}

func TestShareConservationDetectsDrift(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedPool(t, k, ctx, bank)
	_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(10_000), math.NewInt(10_000))
	require.NoError(t, err)

	// Corrupt the pool's share total behind the positions' back.
	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	pool.TotalShares = pool.TotalShares.AddRaw(7)
	require.NoError(t, k.SetPool(ctx, pool))

	_, broken := keeper.ShareConservationInvariant(k)(ctx)
	require.True(t, broken)
}
