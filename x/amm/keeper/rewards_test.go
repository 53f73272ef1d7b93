package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/muse-chain/muse/testutil/keeper"
	"github.com/muse-chain/muse/x/amm/keeper"
	"github.com/muse-chain/muse/x/amm/types"
)

// seedRewardPool sets up a seeded pool with a reward rate of 100 per
// block and a funded reward reserve.
func seedRewardPool(t *testing.T, k keeper.Keeper, ctx sdk.Context, bank *testkeeper.MockBankKeeper) *types.Pool {
	t.Helper()
	pool := seedPool(t, k, ctx, bank)
	_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(10_000), math.NewInt(10_000))
	require.NoError(t, err)
	require.NoError(t, k.SetRewardRate(ctx, testkeeper.TestAuthority, pool.Id, math.NewInt(100)))
	fundAccount(bank, k.GetRewardFundAddress(), coin("umuse", 1_000_000))
	pool, err = k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	return pool
}

func TestPendingRewardAccrual(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	// 10 blocks at rate 100, provider holds 9000 of 10000 shares:
	// floor(100 * 10 * 9000 / 10000) = 900.
	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	pending, err := k.PendingReward(ctx, pool.Id, providerAddr)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(900), pending)

	// PendingReward persists nothing.
	position, found := k.GetPosition(ctx, pool.Id, providerAddr)
	require.True(t, found)
	require.True(t, position.Claimable.IsZero())
}

func TestClaimRewards(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	paid, outstanding, err := k.ClaimRewards(ctx, providerAddr, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(900), paid)
	require.True(t, outstanding.IsZero())

	require.Equal(t, math.NewInt(990_900), bank.GetBalance(ctx, providerAddr, "umuse").Amount)

	position, found := k.GetPosition(ctx, pool.Id, providerAddr)
	require.True(t, found)
	require.Equal(t, math.NewInt(900), position.TotalClaimed)

	// Claiming again in the same block pays nothing.
	paid, outstanding, err = k.ClaimRewards(ctx, providerAddr, pool.Id)
	require.NoError(t, err)
	require.True(t, paid.IsZero())
	require.True(t, outstanding.IsZero())
}

func TestClaimRewardsPartialPayout(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	// Underfund the reserve so it cannot cover the claim.
	fundAccount(bank, k.GetRewardFundAddress(), coin("umuse", 300))

	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	paid, outstanding, err := k.ClaimRewards(ctx, providerAddr, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(300), paid)
	require.Equal(t, math.NewInt(600), outstanding)

	// The unpaid remainder survives as claimable and pays once the fund
	// is topped up, without re-accruing.
	fundAccount(bank, k.GetRewardFundAddress(), coin("umuse", 1_000))
	paid, outstanding, err = k.ClaimRewards(ctx, providerAddr, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(600), paid)
	require.True(t, outstanding.IsZero())
}

func TestClaimRewardsNoPosition(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	_, _, err := k.ClaimRewards(ctx, traderAddr, pool.Id)
	require.ErrorIs(t, err, types.ErrInsufficientShares)
}

func TestAccrualCheckpointOnDeposit(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	// Deposit after 10 blocks: rewards for the stale interval are
	// realized at the old share balance before the new shares land.
	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(10_000), math.NewInt(10_000))
	require.NoError(t, err)

	position, found := k.GetPosition(ctx, pool.Id, providerAddr)
	require.True(t, found)
	require.Equal(t, math.NewInt(900), position.Claimable)
	require.Equal(t, ctx.BlockHeight(), position.LastAccrualHeight)
	require.Equal(t, math.NewInt(19_000), position.Shares)
}

func TestAccrualSurvivesFullWithdrawal(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	_, _, err := k.Withdraw(ctx, providerAddr, pool.Id, math.NewInt(9_000))
	require.NoError(t, err)

	// Shares are gone but the earned rewards remain claimable.
	paid, outstanding, err := k.ClaimRewards(ctx, providerAddr, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(900), paid)
	require.True(t, outstanding.IsZero())
}

func TestFeaturedMultiplier(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	require.NoError(t, k.SetFeatured(ctx, testkeeper.TestAuthority, pool.Id, true))

	// Featured accrual runs at 1.5x: floor(100 * 10 * 1.5 * 9000/10000) = 1350.
	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	pending, err := k.PendingReward(ctx, pool.Id, providerAddr)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_350), pending)

	// Unfeaturing applies to any interval not yet checkpointed.
	require.NoError(t, k.SetFeatured(ctx, testkeeper.TestAuthority, pool.Id, false))
	pending, err = k.PendingReward(ctx, pool.Id, providerAddr)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(900), pending)
}

func TestRewardAdminAuthority(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedRewardPool(t, k, ctx, bank)

	err := k.SetFeatured(ctx, creatorAddr.String(), pool.Id, true)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = k.SetRewardRate(ctx, creatorAddr.String(), pool.Id, math.NewInt(5))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = k.SetRewardRate(ctx, testkeeper.TestAuthority, pool.Id, math.NewInt(-5))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	err = k.SetRewardRate(ctx, testkeeper.TestAuthority, 99, math.NewInt(5))
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestFundRewards(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	_ = seedPool(t, k, ctx, bank)

	fundAccount(bank, traderAddr, coin("umuse", 10_000))
	require.NoError(t, k.FundRewards(ctx, traderAddr, math.NewInt(4_000)))

	require.Equal(t, math.NewInt(4_000),
		bank.GetBalance(ctx, k.GetRewardFundAddress(), "umuse").Amount)
	require.Equal(t, math.NewInt(6_000), bank.GetBalance(ctx, traderAddr, "umuse").Amount)

	err := k.FundRewards(ctx, traderAddr, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidInput)

	// Funding more than the balance fails at the bank.
	err = k.FundRewards(ctx, traderAddr, math.NewInt(1_000_000))
	require.Error(t, err)
}

func TestZeroRatePoolAccruesNothing(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedPool(t, k, ctx, bank)
	_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(10_000), math.NewInt(10_000))
	require.NoError(t, err)

	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 100)
	pending, err := k.PendingReward(ctx, pool.Id, providerAddr)
	require.NoError(t, err)
	require.True(t, pending.IsZero())
}

func TestClaimRewardsPastInt64Range(t *testing.T) {
	k, ctx, bank := testkeeper.AmmKeeper(t)
	pool := seedPool(t, k, ctx, bank)
	_, err := k.Deposit(ctx, providerAddr, pool.Id, math.NewInt(10_000), math.NewInt(10_000))
	require.NoError(t, err)

	require.NoError(t, k.SetRewardRate(ctx, testkeeper.TestAuthority, pool.Id, math.NewIntWithDecimal(1, 30)))
	fundAccount(bank, k.GetRewardFundAddress(), sdk.NewCoin("umuse", math.NewIntWithDecimal(1, 40)))

	// 10 blocks at rate 1e30 with 9000 of 10000 shares pays 9e30,
	// well past what fits in an int64. The claim must still go through.
	ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 10)
	paid, outstanding, err := k.ClaimRewards(ctx, providerAddr, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewIntWithDecimal(9, 30), paid)
	require.True(t, outstanding.IsZero())
	require.Equal(t, paid.AddRaw(990_000), bank.GetBalance(ctx, providerAddr, "umuse").Amount)
}
