package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
)

// Params are the governable parameters of the amm module.
type Params struct {
	// TradingFee is retained in the pool's input reserve and compounds to
	// all current share holders.
	TradingFee math.LegacyDec `json:"trading_fee"`

	// ProtocolFee is withheld from the input and routed to the protocol
	// fee collector instead of the reserves.
	ProtocolFee math.LegacyDec `json:"protocol_fee"`

	// MinLiquidity is the quantity of shares permanently retired on a
	// pool's first deposit.
	MinLiquidity math.Int `json:"min_liquidity"`

	// ReferenceDenom is the asset pool valuations are expressed in.
	ReferenceDenom string `json:"reference_denom"`

	// RewardDenom is the asset rewards and creator bonuses are paid in.
	RewardDenom string `json:"reward_denom"`

	// CreatorBonusRate is the one-time bonus on a pool's first deposit,
	// as a fraction of the initial value deposited.
	CreatorBonusRate math.LegacyDec `json:"creator_bonus_rate"`

	// LiquidityBonusRate is the bonus paid to the pool creator on each
	// subsequent third-party deposit, as a fraction of the value added.
	LiquidityBonusRate math.LegacyDec `json:"liquidity_bonus_rate"`

	// FeaturedMultiplierBps is the reward multiplier applied while a pool
	// is featured (10000 = 1.0x).
	FeaturedMultiplierBps uint32 `json:"featured_multiplier_bps"`

	// MaxPools bounds pool creation to keep iteration costs bounded.
	MaxPools uint64 `json:"max_pools"`
}

// DefaultParams returns the default amm parameters.
func DefaultParams() Params {
	return Params{
		TradingFee:            math.LegacyNewDecWithPrec(3, 3), // 0.30%
		ProtocolFee:           math.LegacyNewDecWithPrec(5, 4), // 0.05%
		MinLiquidity:          math.NewInt(1000),
		ReferenceDenom:        "umuse",
		RewardDenom:           "umuse",
		CreatorBonusRate:      math.LegacyNewDecWithPrec(1, 2), // 1%
		LiquidityBonusRate:    math.LegacyNewDecWithPrec(1, 3), // 0.1%
		FeaturedMultiplierBps: 15_000,                          // 1.5x
		MaxPools:              1000,
	}
}

// Validate validates the parameter set.
func (p Params) Validate() error {
	if p.TradingFee.IsNil() || p.TradingFee.IsNegative() {
		return fmt.Errorf("trading fee must be non-negative")
	}
	if p.ProtocolFee.IsNil() || p.ProtocolFee.IsNegative() {
		return fmt.Errorf("protocol fee must be non-negative")
	}
	if p.TradingFee.Add(p.ProtocolFee).GTE(math.LegacyOneDec()) {
		return fmt.Errorf("total fee rate must be below 100%%")
	}
	if p.MinLiquidity.IsNil() || !p.MinLiquidity.IsPositive() {
		return fmt.Errorf("min liquidity must be positive")
	}
	if strings.TrimSpace(p.ReferenceDenom) == "" {
		return fmt.Errorf("reference denom cannot be empty")
	}
	if strings.TrimSpace(p.RewardDenom) == "" {
		return fmt.Errorf("reward denom cannot be empty")
	}
	if p.CreatorBonusRate.IsNil() || p.CreatorBonusRate.IsNegative() || p.CreatorBonusRate.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("creator bonus rate must be in [0,1)")
	}
	if p.LiquidityBonusRate.IsNil() || p.LiquidityBonusRate.IsNegative() || p.LiquidityBonusRate.GTE(math.LegacyOneDec()) {
		return fmt.Errorf("liquidity bonus rate must be in [0,1)")
	}
	if p.FeaturedMultiplierBps == 0 {
		return fmt.Errorf("featured multiplier must be positive")
	}
	if p.MaxPools == 0 {
		return fmt.Errorf("max pools must be positive")
	}
	return nil
}
