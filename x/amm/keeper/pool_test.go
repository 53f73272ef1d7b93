package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/muse-chain/muse/testutil/keeper"
	"github.com/muse-chain/muse/x/amm/types"
)

var (
	creatorAddr  = sdk.AccAddress("amm_test_creator____")
	providerAddr = sdk.AccAddress("amm_test_provider___")
	traderAddr   = sdk.AccAddress("amm_test_trader_____")
)

func TestCreatePool(t *testing.T) {
	k, ctx, _ := testkeeper.AmmKeeper(t)

	pool, err := k.CreatePool(ctx, creatorAddr, "umuse", "uatom")
	require.NoError(t, err)
	require.Equal(t, uint64(1), pool.Id)

	// Pair is stored in canonical order regardless of argument order.
	require.Equal(t, "uatom", pool.DenomA)
	require.Equal(t, "umuse", pool.DenomB)

	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())
	require.True(t, pool.TotalShares.IsZero())
	require.True(t, pool.Active)
	require.False(t, pool.Featured)
	require.Equal(t, types.DefaultRewardMultiplierBps, pool.RewardMultiplierBps)
	require.Equal(t, creatorAddr.String(), pool.Creator)

	stored, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, pool, stored)
}

func TestCreatePoolInvalidPairs(t *testing.T) {
	k, ctx, _ := testkeeper.AmmKeeper(t)

	_, err := k.CreatePool(ctx, creatorAddr, "umuse", "umuse")
	require.ErrorIs(t, err, types.ErrInvalidDenomPair)

	_, err = k.CreatePool(ctx, creatorAddr, "", "uatom")
	require.ErrorIs(t, err, types.ErrInvalidDenomPair)

	_, err = k.CreatePool(ctx, creatorAddr, "umuse", "not a denom!")
	require.ErrorIs(t, err, types.ErrInvalidDenomPair)
}

func TestCreatePoolDuplicatePair(t *testing.T) {
	k, ctx, _ := testkeeper.AmmKeeper(t)

	_, err := k.CreatePool(ctx, creatorAddr, "umuse", "uatom")
	require.NoError(t, err)

	// Same pair in either order is rejected while the pool is active.
	_, err = k.CreatePool(ctx, providerAddr, "uatom", "umuse")
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)

	_, err = k.CreatePool(ctx, providerAddr, "umuse", "uatom")
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)

	// A different pair is fine.
	_, err = k.CreatePool(ctx, creatorAddr, "umuse", "uosmo")
	require.NoError(t, err)
}

func TestCreatePoolMaxPools(t *testing.T) {
	k, ctx, _ := testkeeper.AmmKeeper(t)

	params, err := k.GetParams(ctx)
	require.NoError(t, err)
	params.MaxPools = 2
	require.NoError(t, k.SetParams(ctx, params))

	_, err = k.CreatePool(ctx, creatorAddr, "umuse", "uatom")
	require.NoError(t, err)
	_, err = k.CreatePool(ctx, creatorAddr, "umuse", "uosmo")
	require.NoError(t, err)

	_, err = k.CreatePool(ctx, creatorAddr, "umuse", "ujuno")
	require.ErrorIs(t, err, types.ErrMaxPoolsReached)
}

func TestCreatePoolBranding(t *testing.T) {
	registry := &testkeeper.MockRegistryKeeper{
		Metadata: map[string]types.CreatorMetadata{
			creatorAddr.String(): {DisplayName: "Muse Labs", AssetTitle: "Muse Token"},
		},
	}
	k, ctx, _ := testkeeper.AmmKeeperWithRegistry(t, registry)

	pool, err := k.CreatePool(ctx, creatorAddr, "umuse", "uatom")
	require.NoError(t, err)
	require.Equal(t, "Muse Labs", pool.DisplayName)
	require.Equal(t, "Muse Token", pool.AssetTitle)

	// A creator without a registry record gets empty branding, not an error.
	pool2, err := k.CreatePool(ctx, providerAddr, "umuse", "uosmo")
	require.NoError(t, err)
	require.Empty(t, pool2.DisplayName)
	require.Empty(t, pool2.AssetTitle)
}

func TestGetPoolByDenoms(t *testing.T) {
	k, ctx, _ := testkeeper.AmmKeeper(t)

	created, err := k.CreatePool(ctx, creatorAddr, "umuse", "uatom")
	require.NoError(t, err)

	for _, pair := range [][2]string{{"umuse", "uatom"}, {"uatom", "umuse"}} {
		pool, err := k.GetPoolByDenoms(ctx, pair[0], pair[1])
		require.NoError(t, err)
		require.Equal(t, created.Id, pool.Id)
	}

	_, err = k.GetPoolByDenoms(ctx, "umuse", "uosmo")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestGetPoolNotFound(t *testing.T) {
	k, ctx, _ := testkeeper.AmmKeeper(t)

	_, err := k.GetPool(ctx, 42)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestPoolIDsMonotonic(t *testing.T) {
	k, ctx, _ := testkeeper.AmmKeeper(t)

	p1, err := k.CreatePool(ctx, creatorAddr, "umuse", "uatom")
	require.NoError(t, err)
	p2, err := k.CreatePool(ctx, creatorAddr, "umuse", "uosmo")
	require.NoError(t, err)
	require.Equal(t, p1.Id+1, p2.Id)
	require.Equal(t, uint64(2), k.GetTotalPoolsCount(ctx))
}

func fundAccount(bank *testkeeper.MockBankKeeper, addr sdk.AccAddress, coins ...sdk.Coin) {
	bank.SetBalance(addr, sdk.NewCoins(coins...))
}

func coin(denom string, amount int64) sdk.Coin {
	return sdk.NewCoin(denom, math.NewInt(amount))
}
