package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// accruePosition realizes the rewards a position earned since its last
// checkpoint into Claimable and advances the checkpoint to the current
// height. Every operation that changes a position's share balance calls
// this first, so shares only ever earn at the balance they actually held.
//
// The whole stale interval is priced at the rate and multiplier in
// effect at accrual time. A rate change or featuring therefore applies
// retroactively to blocks a position has not yet checkpointed; holders
// who want the old terms locked in must touch the position first.
func (k Keeper) accruePosition(ctx sdk.Context, pool *types.Pool, position *types.Position) error {
	height := ctx.BlockHeight()
	blocks := height - position.LastAccrualHeight
	if blocks <= 0 {
		return nil
	}
	position.LastAccrualHeight = height

	if position.Shares.IsZero() || pool.TotalShares.IsZero() || pool.RewardRatePerBlock.IsZero() {
		return nil
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return fmt.Errorf("accruePosition: get params: %w", err)
	}
	multiplier := math.NewIntFromUint64(uint64(pool.RewardMultiplierBps))
	if pool.Featured {
		multiplier = math.NewIntFromUint64(uint64(params.FeaturedMultiplierBps))
	}

	base, err := SafeMul(pool.RewardRatePerBlock, math.NewInt(blocks))
	if err != nil {
		return err
	}
	scaled, err := SafeMulDiv(base, multiplier, math.NewInt(types.BasisPointsDenom))
	if err != nil {
		return err
	}
	accrued, err := SafeMulDiv(scaled, position.Shares, pool.TotalShares)
	if err != nil {
		return err
	}

	position.Claimable, err = SafeAdd(position.Claimable, accrued)
	return err
}

// PendingReward returns the total reward a holder could claim right now:
// the realized Claimable plus rewards accrued since the last checkpoint.
// Read-only; nothing is persisted.
func (k Keeper) PendingReward(ctx context.Context, poolID uint64, holder sdk.AccAddress) (math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	position, found := k.GetPosition(ctx, poolID, holder)
	if !found {
		return math.ZeroInt(), nil
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := k.accruePosition(sdkCtx, pool, &position); err != nil {
		return math.Int{}, err
	}
	return position.Claimable, nil
}

// ClaimRewards pays out a position's accrued rewards. Payouts are capped
// by the reward fund balance: a short fund pays what it can and carries
// the remainder as Claimable, returned as outstanding. Claiming with
// nothing accrued is a no-op, not an error.
func (k Keeper) ClaimRewards(ctx context.Context, holder sdk.AccAddress, poolID uint64) (paid, outstanding math.Int, err error) {
	err = k.withPoolLock(ctx, poolID, func(cacheCtx sdk.Context) error {
		pool, err := k.GetPool(cacheCtx, poolID)
		if err != nil {
			return err
		}
		position, found := k.GetPosition(cacheCtx, poolID, holder)
		if !found {
			return types.ErrInsufficientShares.Wrapf("no position in pool %d for %s", poolID, holder)
		}

		if err := k.accruePosition(cacheCtx, pool, &position); err != nil {
			return err
		}

		if position.Claimable.IsZero() {
			paid, outstanding = math.ZeroInt(), math.ZeroInt()
			return k.SetPosition(cacheCtx, &position)
		}

		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return err
		}

		fundBalance := k.bankKeeper.GetBalance(cacheCtx, k.rewardFundAddr, params.RewardDenom)
		paid = position.Claimable
		if fundBalance.Amount.LT(paid) {
			paid = fundBalance.Amount
		}
		outstanding = position.Claimable.Sub(paid)

		if paid.IsPositive() {
			coins := sdk.NewCoins(sdk.NewCoin(params.RewardDenom, paid))
			if err := k.bankKeeper.SendCoins(cacheCtx, k.rewardFundAddr, holder, coins); err != nil {
				return fmt.Errorf("ClaimRewards: reward fund transfer: %w", err)
			}
		}

		position.Claimable = outstanding
		if position.TotalClaimed, err = SafeAdd(position.TotalClaimed, paid); err != nil {
			return err
		}
		if err := k.SetPosition(cacheCtx, &position); err != nil {
			return err
		}

		cacheCtx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeRewardsClaimed,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyHolder, holder.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, paid.String()),
			sdk.NewAttribute(types.AttributeKeyShortfall, outstanding.String()),
		))
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	if k.metrics != nil && paid.IsPositive() && paid.IsInt64() {
		k.metrics.RewardsPaid.Add(float64(paid.Int64()))
	}
	return paid, outstanding, nil
}

// FundRewards tops up the shared reward reserve. Anyone may fund it.
func (k Keeper) FundRewards(ctx context.Context, funder sdk.AccAddress, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidInput.Wrap("funding amount must be positive")
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	coins := sdk.NewCoins(sdk.NewCoin(params.RewardDenom, amount))
	if err := k.bankKeeper.SendCoins(ctx, funder, k.rewardFundAddr, coins); err != nil {
		return fmt.Errorf("FundRewards: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRewardsFunded,
		sdk.NewAttribute(types.AttributeKeyProvider, funder.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// SetFeatured grants or removes a pool's featured status, switching its
// reward accrual to the featured multiplier. Authority-gated.
func (k Keeper) SetFeatured(ctx context.Context, authority string, poolID uint64, featured bool) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	pool.Featured = featured
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypePoolFeatured,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		sdk.NewAttribute(types.AttributeKeyFeatured, fmt.Sprintf("%t", featured)),
	))
	return nil
}

// SetRewardRate sets a pool's per-block reward emission. Authority-gated.
func (k Keeper) SetRewardRate(ctx context.Context, authority string, poolID uint64, rate math.Int) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	if rate.IsNil() || rate.IsNegative() {
		return types.ErrInvalidInput.Wrap("reward rate cannot be negative")
	}

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	pool.RewardRatePerBlock = rate
	if err := k.SetPool(ctx, pool); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRewardRateSet,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
		sdk.NewAttribute(types.AttributeKeyRewardRate, rate.String()),
	))
	return nil
}
