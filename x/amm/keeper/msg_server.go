package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer
// interface for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}

	pool, err := m.Keeper.CreatePool(ctx, creator, msg.DenomA, msg.DenomB)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreatePoolResponse{PoolId: pool.Id}, nil
}

func (m msgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}

	result, err := m.Keeper.Deposit(ctx, provider, msg.PoolId, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, err
	}
	return &types.MsgDepositResponse{
		Shares:  result.Shares,
		AmountA: result.AmountA,
		AmountB: result.AmountB,
	}, nil
}

func (m msgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}

	amountA, amountB, err := m.Keeper.Withdraw(ctx, provider, msg.PoolId, msg.Shares)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{AmountA: amountA, AmountB: amountB}, nil
}

func (m msgServer) Swap(ctx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}

	quote, err := m.Keeper.Swap(ctx, trader, msg.PoolId, msg.DenomIn, msg.AmountIn, msg.MinAmountOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{AmountOut: quote.AmountOut}, nil
}

func (m msgServer) ClaimRewards(ctx context.Context, msg *types.MsgClaimRewards) (*types.MsgClaimRewardsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	holder, err := sdk.AccAddressFromBech32(msg.Holder)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}

	paid, outstanding, err := m.Keeper.ClaimRewards(ctx, holder, msg.PoolId)
	if err != nil {
		return nil, err
	}
	return &types.MsgClaimRewardsResponse{Paid: paid, Outstanding: outstanding}, nil
}

func (m msgServer) FundRewards(ctx context.Context, msg *types.MsgFundRewards) (*types.MsgFundRewardsResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	funder, err := sdk.AccAddressFromBech32(msg.Funder)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}

	if err := m.Keeper.FundRewards(ctx, funder, msg.Amount); err != nil {
		return nil, err
	}
	return &types.MsgFundRewardsResponse{}, nil
}

func (m msgServer) SetFeatured(ctx context.Context, msg *types.MsgSetFeatured) (*types.MsgSetFeaturedResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Keeper.SetFeatured(ctx, msg.Authority, msg.PoolId, msg.Featured); err != nil {
		return nil, err
	}
	return &types.MsgSetFeaturedResponse{}, nil
}

func (m msgServer) SetRewardRate(ctx context.Context, msg *types.MsgSetRewardRate) (*types.MsgSetRewardRateResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Keeper.SetRewardRate(ctx, msg.Authority, msg.PoolId, msg.Rate); err != nil {
		return nil, err
	}
	return &types.MsgSetRewardRateResponse{}, nil
}
