package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// SwapQuote is the priced outcome of a swap before execution.
type SwapQuote struct {
	AmountOut   math.Int
	ProtocolFee math.Int
	TradingFee  math.Int
	DenomOut    string
}

// CalculateSwapOutput prices a swap against the given reserves using the
// constant-product rule with fee-on-input:
//
//	netIn     = amountIn * (1 - tradingFee - protocolFee)
//	amountOut = floor(netIn * reserveOut / (reserveIn + netIn))
//
// The trading fee stays in the input reserve and compounds to share
// holders; the protocol fee leaves the pool entirely.
func CalculateSwapOutput(amountIn, reserveIn, reserveOut math.Int, tradingFee, protocolFee math.LegacyDec) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("swap amount must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("pool has no liquidity")
	}

	// The net input is kept at full decimal precision through the quote
	// so fee rounding cannot be farmed across many small swaps.
	feeRate := tradingFee.Add(protocolFee)
	netIn := math.LegacyNewDecFromInt(amountIn).Mul(math.LegacyOneDec().Sub(feeRate))
	if !netIn.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("swap amount too small after fees")
	}

	denominator := math.LegacyNewDecFromInt(reserveIn).Add(netIn)
	amountOut := netIn.MulInt(reserveOut).Quo(denominator).TruncateInt()

	if amountOut.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("swap output rounds to zero")
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("swap would drain output reserve")
	}
	return amountOut, nil
}

// Swap exchanges amountIn of denomIn for the other pool asset. The
// output must meet minAmountOut or the whole operation rolls back,
// reserves untouched.
func (k Keeper) Swap(ctx context.Context, trader sdk.AccAddress, poolID uint64, denomIn string, amountIn, minAmountOut math.Int) (*SwapQuote, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return nil, types.ErrInvalidInput.Wrap("swap amount must be positive")
	}
	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return nil, types.ErrInvalidInput.Wrap("minimum output cannot be negative")
	}

	var quote *SwapQuote
	err := k.withPoolLock(ctx, poolID, func(cacheCtx sdk.Context) error {
		pool, err := k.GetPool(cacheCtx, poolID)
		if err != nil {
			return err
		}
		if !pool.Active {
			return types.ErrPoolInactive.Wrapf("pool %d is not active", poolID)
		}

		sideIn, ok := pool.SideOf(denomIn)
		if !ok {
			return types.ErrInvalidInput.Wrapf("denom %s is not part of pool %d", denomIn, poolID)
		}
		sideOut := sideIn.Opposite()

		params, err := k.GetParams(cacheCtx)
		if err != nil {
			return fmt.Errorf("Swap: get params: %w", err)
		}

		reserveIn := pool.Reserve(sideIn)
		reserveOut := pool.Reserve(sideOut)
		oldK, err := SafeMul(reserveIn, reserveOut)
		if err != nil {
			return err
		}

		amountOut, err := CalculateSwapOutput(amountIn, reserveIn, reserveOut, params.TradingFee, params.ProtocolFee)
		if err != nil {
			return err
		}
		if amountOut.LT(minAmountOut) {
			return types.ErrSlippageExceeded.Wrapf("output %s below minimum %s", amountOut, minAmountOut)
		}

		protocolFeeAmt := math.LegacyNewDecFromInt(amountIn).Mul(params.ProtocolFee).TruncateInt()
		tradingFeeAmt := math.LegacyNewDecFromInt(amountIn).Mul(params.TradingFee).TruncateInt()

		inCoins := sdk.NewCoins(sdk.NewCoin(denomIn, amountIn))
		if err := k.bankKeeper.SendCoins(cacheCtx, trader, k.moduleAddr, inCoins); err != nil {
			return fmt.Errorf("Swap: transfer input: %w", err)
		}
		if protocolFeeAmt.IsPositive() {
			if err := k.routeProtocolFee(cacheCtx, pool, denomIn, protocolFeeAmt); err != nil {
				return err
			}
		}
		outCoins := sdk.NewCoins(sdk.NewCoin(pool.Denom(sideOut), amountOut))
		if err := k.bankKeeper.SendCoins(cacheCtx, k.moduleAddr, trader, outCoins); err != nil {
			return fmt.Errorf("Swap: transfer output: %w", err)
		}

		// The trading fee stays in the input reserve; only the protocol
		// cut leaves the pool.
		retained := amountIn.Sub(protocolFeeAmt)
		newIn, err := SafeAdd(reserveIn, retained)
		if err != nil {
			return err
		}
		newOut, err := SafeSub(reserveOut, amountOut)
		if err != nil {
			return err
		}
		pool.SetReserve(sideIn, newIn)
		pool.SetReserve(sideOut, newOut)

		if pool.Volume, err = SafeAdd(pool.Volume, amountIn); err != nil {
			return err
		}
		totalFee := tradingFeeAmt.Add(protocolFeeAmt)
		if pool.FeesCollected, err = SafeAdd(pool.FeesCollected, totalFee); err != nil {
			return err
		}

		if err := k.validatePoolInvariant(pool, oldK); err != nil {
			return err
		}
		if err := pool.Validate(); err != nil {
			return err
		}
		if err := k.SetPool(cacheCtx, pool); err != nil {
			return err
		}
		k.updatePoolValue(cacheCtx, pool, params)

		cacheCtx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
			sdk.NewAttribute(types.AttributeKeyDenomIn, denomIn),
			sdk.NewAttribute(types.AttributeKeyDenomOut, pool.Denom(sideOut)),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFee, totalFee.String()),
		))

		quote = &SwapQuote{
			AmountOut:   amountOut,
			ProtocolFee: protocolFeeAmt,
			TradingFee:  tradingFeeAmt,
			DenomOut:    pool.Denom(sideOut),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if k.metrics != nil {
		k.metrics.SwapsTotal.Inc()
		if amountIn.IsInt64() {
			k.metrics.SwapVolume.Add(float64(amountIn.Int64()))
		}
	}
	return quote, nil
}

// SimulateSwap prices a swap without executing it.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, denomIn string, amountIn math.Int) (*SwapQuote, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	sideIn, ok := pool.SideOf(denomIn)
	if !ok {
		return nil, types.ErrInvalidInput.Wrapf("denom %s is not part of pool %d", denomIn, poolID)
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	amountOut, err := CalculateSwapOutput(
		amountIn, pool.Reserve(sideIn), pool.Reserve(sideIn.Opposite()),
		params.TradingFee, params.ProtocolFee,
	)
	if err != nil {
		return nil, err
	}
	return &SwapQuote{
		AmountOut:   amountOut,
		ProtocolFee: math.LegacyNewDecFromInt(amountIn).Mul(params.ProtocolFee).TruncateInt(),
		TradingFee:  math.LegacyNewDecFromInt(amountIn).Mul(params.TradingFee).TruncateInt(),
		DenomOut:    pool.Denom(sideIn.Opposite()),
	}, nil
}

// GetSpotPrice returns the instantaneous price of denomIn expressed in
// the opposite asset, before fees.
func (k Keeper) GetSpotPrice(ctx context.Context, poolID uint64, denomIn string) (math.LegacyDec, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	sideIn, ok := pool.SideOf(denomIn)
	if !ok {
		return math.LegacyDec{}, types.ErrInvalidInput.Wrapf("denom %s is not part of pool %d", denomIn, poolID)
	}
	reserveIn := pool.Reserve(sideIn)
	if reserveIn.IsZero() {
		return math.LegacyDec{}, types.ErrInsufficientLiquidity.Wrap("pool has no liquidity")
	}
	return math.LegacyNewDecFromInt(pool.Reserve(sideIn.Opposite())).QuoInt(reserveIn), nil
}
