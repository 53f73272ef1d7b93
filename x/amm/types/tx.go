package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the message server interface
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
	ClaimRewards(context.Context, *MsgClaimRewards) (*MsgClaimRewardsResponse, error)
	FundRewards(context.Context, *MsgFundRewards) (*MsgFundRewardsResponse, error)
	SetFeatured(context.Context, *MsgSetFeatured) (*MsgSetFeaturedResponse, error)
	SetRewardRate(context.Context, *MsgSetRewardRate) (*MsgSetRewardRateResponse, error)
}

// MsgCreatePoolResponse defines the response for CreatePool
type MsgCreatePoolResponse struct {
	PoolId uint64 `json:"pool_id"`
}

// MsgDepositResponse defines the response for Deposit
type MsgDepositResponse struct {
	Shares  math.Int `json:"shares"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgWithdrawResponse defines the response for Withdraw
type MsgWithdrawResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapResponse defines the response for Swap
type MsgSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
}

// MsgClaimRewardsResponse defines the response for ClaimRewards
type MsgClaimRewardsResponse struct {
	Paid math.Int `json:"paid"`
	// Outstanding is the claim left unpaid because the funding reserve
	// could not cover it.
	Outstanding math.Int `json:"outstanding"`
}

// MsgFundRewardsResponse defines the response for FundRewards
type MsgFundRewardsResponse struct{}

// MsgSetFeaturedResponse defines the response for SetFeatured
type MsgSetFeaturedResponse struct{}

// MsgSetRewardRateResponse defines the response for SetRewardRate
type MsgSetRewardRateResponse struct{}
