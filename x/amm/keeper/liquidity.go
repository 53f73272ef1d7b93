package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// DepositResult reports the outcome of a deposit: the shares minted and
// the asset amounts actually pulled from the provider. For subsequent
// deposits the actual amounts can be below the offered amounts, because
// only the pro-rata portion is transferred.
type DepositResult struct {
	Shares  math.Int
	AmountA math.Int
	AmountB math.Int
}

// Deposit adds liquidity to a pool and mints shares to the provider.
//
// The first deposit seeds the reserves and sets the initial exchange
// rate; it mints sqrt(amountA * amountB) shares, permanently retiring
// MinLiquidity of them to a null holder. Subsequent deposits must match
// the current reserve ratio: the limiting asset is consumed in full and
// the other side is scaled down, never pulling more than offered.
func (k Keeper) Deposit(ctx context.Context, provider sdk.AccAddress, poolID uint64, amountA, amountB math.Int) (*DepositResult, error) {
	if amountA.IsNil() || amountB.IsNil() || !amountA.IsPositive() || !amountB.IsPositive() {
		return nil, types.ErrInvalidInput.Wrap("deposit amounts must be positive")
	}

	var result *DepositResult
	err := k.withPoolLock(ctx, poolID, func(cacheCtx sdk.Context) error {
		pool, err := k.GetPool(cacheCtx, poolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return types.ErrPoolInactive.Wrapf("pool %d is not active", poolID)
		}

		if pool.TotalShares.IsZero() {
			result, err = k.initialDeposit(cacheCtx, pool, provider, amountA, amountB)
		} else {
			result, err = k.subsequentDeposit(cacheCtx, pool, provider, amountA, amountB)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if k.metrics != nil {
		k.metrics.DepositsTotal.Inc()
	}
	return result, nil
}

// initialDeposit seeds an empty pool. Runs inside the pool lock.
func (k Keeper) initialDeposit(ctx sdk.Context, pool *types.Pool, provider sdk.AccAddress, amountA, amountB math.Int) (*DepositResult, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialDeposit: get params: %w", err)
	}

	product, err := SafeMul(amountA, amountB)
	if err != nil {
		return nil, err
	}
	totalShares, err := IntSqrt(product)
	if err != nil {
		return nil, err
	}
	if totalShares.LTE(params.MinLiquidity) {
		return nil, types.ErrInsufficientLiquidity.Wrapf(
			"initial deposit yields %s shares, need more than %s minimum liquidity",
			totalShares, params.MinLiquidity,
		)
	}
	minted := totalShares.Sub(params.MinLiquidity)

	coins := sdk.NewCoins(
		sdk.NewCoin(pool.DenomA, amountA),
		sdk.NewCoin(pool.DenomB, amountB),
	)
	if err := k.bankKeeper.SendCoins(ctx, provider, k.moduleAddr, coins); err != nil {
		return nil, fmt.Errorf("initialDeposit: transfer to pool: %w", err)
	}

	pool.ReserveA = amountA
	pool.ReserveB = amountB
	pool.TotalShares = totalShares

	height := ctx.BlockHeight()

	// The retired shares belong to a null holder and can never be
	// withdrawn, so a seeded pool's TotalShares never returns to zero.
	retired := types.NewPosition(pool.Id, k.retiredAddr.String(), height)
	retired.Shares = params.MinLiquidity
	if err := k.SetPosition(ctx, &retired); err != nil {
		return nil, err
	}

	position := types.NewPosition(pool.Id, provider.String(), height)
	position.Shares = minted
	if err := k.SetPosition(ctx, &position); err != nil {
		return nil, err
	}

	// One-time creator bonus on the pool's first deposit. Best-effort:
	// a short reward fund skips the bonus, it never fails the deposit.
	if !pool.BonusPaid {
		value := k.depositValue(params, pool, amountA, amountB)
		k.routeCreatorBonus(ctx, pool, params, value, params.CreatorBonusRate, true)
		pool.BonusPaid = true
	}

	if err := pool.Validate(); err != nil {
		return nil, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}
	k.updatePoolValue(ctx, pool, params)

	k.emitDepositEvent(ctx, pool, provider, amountA, amountB, minted)

	return &DepositResult{Shares: minted, AmountA: amountA, AmountB: amountB}, nil
}

// subsequentDeposit adds liquidity at the current reserve ratio. Runs
// inside the pool lock.
func (k Keeper) subsequentDeposit(ctx sdk.Context, pool *types.Pool, provider sdk.AccAddress, amountA, amountB math.Int) (*DepositResult, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("subsequentDeposit: get params: %w", err)
	}

	sharesFromA, err := SafeMulDiv(amountA, pool.TotalShares, pool.ReserveA)
	if err != nil {
		return nil, err
	}
	sharesFromB, err := SafeMulDiv(amountB, pool.TotalShares, pool.ReserveB)
	if err != nil {
		return nil, err
	}

	// The limiting side is consumed in full; the other side is reduced
	// to the matching pro-rata amount, rounded up so existing holders
	// are never diluted.
	actualA, actualB := amountA, amountB
	var minted math.Int
	if sharesFromA.LTE(sharesFromB) {
		minted = sharesFromA
		actualB, err = SafeMulDivCeil(amountA, pool.ReserveB, pool.ReserveA)
		if err != nil {
			return nil, err
		}
		if actualB.GT(amountB) {
			actualB = amountB
		}
	} else {
		minted = sharesFromB
		actualA, err = SafeMulDivCeil(amountB, pool.ReserveA, pool.ReserveB)
		if err != nil {
			return nil, err
		}
		if actualA.GT(amountA) {
			actualA = amountA
		}
	}
	if minted.IsZero() {
		return nil, types.ErrInsufficientLiquidity.Wrap("deposit too small to mint any shares")
	}

	coins := sdk.NewCoins(
		sdk.NewCoin(pool.DenomA, actualA),
		sdk.NewCoin(pool.DenomB, actualB),
	)
	if err := k.bankKeeper.SendCoins(ctx, provider, k.moduleAddr, coins); err != nil {
		return nil, fmt.Errorf("subsequentDeposit: transfer to pool: %w", err)
	}

	position, found := k.GetPosition(ctx, pool.Id, provider)
	if !found {
		position = types.NewPosition(pool.Id, provider.String(), ctx.BlockHeight())
	}
	// Realize pending rewards before the share balance changes, so the
	// new shares only earn from this height forward.
	if err := k.accruePosition(ctx, pool, &position); err != nil {
		return nil, err
	}
	position.Shares = position.Shares.Add(minted)
	if err := k.SetPosition(ctx, &position); err != nil {
		return nil, err
	}

	if pool.ReserveA, err = SafeAdd(pool.ReserveA, actualA); err != nil {
		return nil, err
	}
	if pool.ReserveB, err = SafeAdd(pool.ReserveB, actualB); err != nil {
		return nil, err
	}
	if pool.TotalShares, err = SafeAdd(pool.TotalShares, minted); err != nil {
		return nil, err
	}
	// Reject deposits that would push the constant product past the
	// safe arithmetic range; later swaps must be able to recompute it.
	if _, err = SafeMul(pool.ReserveA, pool.ReserveB); err != nil {
		return nil, err
	}

	// Ongoing creator incentive: third-party deposits pay the creator a
	// small cut of the value added, funded by the reward reserve.
	if provider.String() != pool.Creator {
		value := k.depositValue(params, pool, actualA, actualB)
		k.routeCreatorBonus(ctx, pool, params, value, params.LiquidityBonusRate, false)
	}

	if err := pool.Validate(); err != nil {
		return nil, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return nil, err
	}
	k.updatePoolValue(ctx, pool, params)

	k.emitDepositEvent(ctx, pool, provider, actualA, actualB, minted)

	return &DepositResult{Shares: minted, AmountA: actualA, AmountB: actualB}, nil
}

func (k Keeper) emitDepositEvent(ctx sdk.Context, pool *types.Pool, provider sdk.AccAddress, amountA, amountB, shares math.Int) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDeposit,
		sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
		sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
		sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
		sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
	))
}

// Withdraw burns shares and returns the pro-rata portion of both
// reserves. Pending rewards are realized first and survive on the
// position record even when all shares are burned. Withdrawals are
// allowed from inactive pools.
func (k Keeper) Withdraw(ctx context.Context, provider sdk.AccAddress, poolID uint64, shares math.Int) (amountA, amountB math.Int, err error) {
	if shares.IsNil() || !shares.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap("share amount must be positive")
	}

	err = k.withPoolLock(ctx, poolID, func(cacheCtx sdk.Context) error {
		pool, err := k.GetPool(cacheCtx, poolID)
		if err != nil {
			return err
		}

		position, found := k.GetPosition(cacheCtx, poolID, provider)
		if !found || position.Shares.LT(shares) {
			held := math.ZeroInt()
			if found {
				held = position.Shares
			}
			return types.ErrInsufficientShares.Wrapf("holder has %s shares, requested %s", held, shares)
		}

		if err := k.accruePosition(cacheCtx, pool, &position); err != nil {
			return err
		}

		amountA, err = SafeMulDiv(shares, pool.ReserveA, pool.TotalShares)
		if err != nil {
			return err
		}
		amountB, err = SafeMulDiv(shares, pool.ReserveB, pool.TotalShares)
		if err != nil {
			return err
		}
		if amountA.IsZero() || amountB.IsZero() {
			return types.ErrInvalidInput.Wrap("withdrawal amount rounds to zero")
		}

		position.Shares = position.Shares.Sub(shares)
		if err := k.SetPosition(cacheCtx, &position); err != nil {
			return err
		}

		if pool.ReserveA, err = SafeSub(pool.ReserveA, amountA); err != nil {
			return err
		}
		if pool.ReserveB, err = SafeSub(pool.ReserveB, amountB); err != nil {
			return err
		}
		if pool.TotalShares, err = SafeSub(pool.TotalShares, shares); err != nil {
			return err
		}

		coins := sdk.NewCoins(
			sdk.NewCoin(pool.DenomA, amountA),
			sdk.NewCoin(pool.DenomB, amountB),
		)
		if err := k.bankKeeper.SendCoins(cacheCtx, k.moduleAddr, provider, coins); err != nil {
			return fmt.Errorf("Withdraw: transfer to provider: %w", err)
		}

		if err := pool.Validate(); err != nil {
			return err
		}
		if err := k.SetPool(cacheCtx, pool); err != nil {
			return err
		}

		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return err
		}
		k.updatePoolValue(cacheCtx, pool, params)

		cacheCtx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeWithdraw,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		))
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	if k.metrics != nil {
		k.metrics.WithdrawalsTotal.Inc()
	}
	return amountA, amountB, nil
}

// GetPosition retrieves a holder's position in a pool.
func (k Keeper) GetPosition(ctx context.Context, poolID uint64, holder sdk.AccAddress) (types.Position, bool) {
	store := k.getStore(ctx)
	bz := store.Get(PositionKey(poolID, holder))
	if bz == nil {
		return types.Position{}, false
	}

	var position types.Position
	if err := json.Unmarshal(bz, &position); err != nil {
		return types.Position{}, false
	}
	return position, true
}

// SetPosition saves a position to the store
func (k Keeper) SetPosition(ctx context.Context, position *types.Position) error {
	holder, err := sdk.AccAddressFromBech32(position.Address)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("position holder: %v", err)
	}
	bz, err := json.Marshal(position)
	if err != nil {
		return fmt.Errorf("SetPosition: marshal: %w", err)
	}
	k.getStore(ctx).Set(PositionKey(position.PoolId, holder), bz)
	return nil
}

// IteratePositionsByPool iterates over all positions in a single pool.
func (k Keeper) IteratePositionsByPool(ctx context.Context, poolID uint64, cb func(position types.Position) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PositionByPoolPrefix(poolID))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			return fmt.Errorf("IteratePositionsByPool: unmarshal: %w", err)
		}
		if cb(position) {
			break
		}
	}
	return nil
}

// IterateAllPositions iterates over every position across all pools,
// used by genesis export and the share conservation invariant.
func (k Keeper) IterateAllPositions(ctx context.Context, cb func(position types.Position) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, PositionKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var position types.Position
		if err := json.Unmarshal(iterator.Value(), &position); err != nil {
			return fmt.Errorf("IterateAllPositions: unmarshal: %w", err)
		}
		if cb(position) {
			break
		}
	}
	return nil
}
