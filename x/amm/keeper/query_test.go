package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/muse-chain/muse/testutil/keeper"
	"github.com/muse-chain/muse/x/amm/keeper"
	"github.com/muse-chain/muse/x/amm/types"
)

func TestQueryServer(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	q := keeper.NewQueryServerImpl(k)
	pool := seedPool(t, k, ctx, bank)

	_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(10_000), math.NewInt(10_000))
	require.NoError(t, err)
	require.NoError(t, k.SetRewardRate(ctx, testkeeper.TestAuthority, pool.Id, math.NewInt(100)))

	paramsResp, err := q.Params(ctx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(), paramsResp.Params)

	poolResp, err := q.Pool(ctx, &types.QueryPoolRequest{PoolId: pool.Id})
	require.NoError(t, err)
	require.Equal(t, pool.Id, poolResp.Pool.Id)
	require.Equal(t, math.NewInt(20_000), poolResp.Value)

	byDenoms, err := q.PoolByDenoms(ctx, &types.QueryPoolByDenomsRequest{DenomA: "umuse", DenomB: "uatom"})
	require.NoError(t, err)
	require.Equal(t, pool.Id, byDenoms.Pool.Id)

	poolsResp, err := q.Pools(ctx, &types.QueryPoolsRequest{})
	require.NoError(t, err)
	require.Len(t, poolsResp.Pools, 1)

	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	posResp, err := q.Position(ctx, &types.QueryPositionRequest{PoolId: pool.Id, Holder: providerAddr.String()})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(9_000), posResp.Position.Shares)
	require.Equal(t, math.NewInt(900), posResp.PendingReward)

	_, err = q.Position(ctx, &types.QueryPositionRequest{PoolId: pool.Id, Holder: traderAddr.String()})
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	estimate, err := q.EstimateSwap(ctx, &types.QueryEstimateSwapRequest{
		PoolId: pool.Id, DenomIn: "uatom", AmountIn: math.NewInt(1_000)})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(906), estimate.AmountOut)
	require.Equal(t, "umuse", estimate.DenomOut)

	price, err := q.SpotPrice(ctx, &types.QuerySpotPriceRequest{PoolId: pool.Id, DenomIn: "uatom"})
	require.NoError(t, err)
	require.Equal(t, math.LegacyOneDec(), price.Price)

	top, err := q.TopPools(ctx, &types.QueryTopPoolsRequest{Limit: 5})
	require.NoError(t, err)
	require.Len(t, top.Pools, 1)
	require.Equal(t, math.NewInt(20_000), top.Pools[0].Value)
}
