package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// routeProtocolFee moves the protocol's cut of a swap input out of the
// pool account to the protocol fee collector. Called inside the pool
// lock with the input amount already held by the module account.
func (k Keeper) routeProtocolFee(ctx sdk.Context, pool *types.Pool, denom string, amount math.Int) error {
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoins(ctx, k.moduleAddr, k.feeCollector, coins); err != nil {
		return fmt.Errorf("routeProtocolFee: %w", err)
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeFeesCollected,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
		sdk.NewAttribute(types.AttributeKeyDenomIn, denom),
		sdk.NewAttribute(types.AttributeKeyFee, amount.String()),
	))
	return nil
}

// routeCreatorBonus pays the pool creator a bonus out of the reward
// fund, valued against the deposit that triggered it. Bonuses are
// strictly best-effort: when the fund cannot cover the bonus, or the
// deposit has no measurable reference value, the bonus is skipped with
// an event and the deposit proceeds untouched.
func (k Keeper) routeCreatorBonus(ctx sdk.Context, pool *types.Pool, params types.Params, value math.Int, rate math.LegacyDec, initial bool) {
	skip := func(reason string) {
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeCreatorBonusSkipped,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeyCreator, pool.Creator),
			sdk.NewAttribute(types.AttributeKeyReason, reason),
		))
	}

	if rate.IsZero() {
		return
	}
	if value.IsZero() {
		skip("deposit has no reference value")
		return
	}

	bonus := math.LegacyNewDecFromInt(value).Mul(rate).TruncateInt()
	if bonus.IsZero() {
		skip("bonus rounds to zero")
		return
	}

	creator, err := sdk.AccAddressFromBech32(pool.Creator)
	if err != nil {
		skip("invalid creator address")
		return
	}

	fundBalance := k.bankKeeper.GetBalance(ctx, k.rewardFundAddr, params.RewardDenom)
	if fundBalance.Amount.LT(bonus) {
		skip("reward fund cannot cover bonus")
		return
	}

	coins := sdk.NewCoins(sdk.NewCoin(params.RewardDenom, bonus))
	if err := k.bankKeeper.SendCoins(ctx, k.rewardFundAddr, creator, coins); err != nil {
		skip("reward fund transfer failed")
		return
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCreatorBonus,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
		sdk.NewAttribute(types.AttributeKeyCreator, pool.Creator),
		sdk.NewAttribute(types.AttributeKeyAmount, bonus.String()),
		sdk.NewAttribute(types.AttributeKeyReason, bonusKind(initial)),
	))

	if k.metrics != nil {
		k.metrics.CreatorBonusesPaid.Inc()
	}
}

func bonusKind(initial bool) string {
	if initial {
		return "initial_deposit"
	}
	return "liquidity_added"
}
