package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the amm QueryServer
// interface for the provided Keeper.
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

func (q queryServer) Params(ctx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	params, err := q.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryParamsResponse{Params: params}, nil
}

func (q queryServer) Pool(ctx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	pool, err := q.GetPool(ctx, req.PoolId)
	if err != nil {
		return nil, err
	}
	value, err := q.GetPoolValue(ctx, req.PoolId)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolResponse{Pool: *pool, Value: value}, nil
}

func (q queryServer) PoolByDenoms(ctx context.Context, req *types.QueryPoolByDenomsRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	pool, err := q.GetPoolByDenoms(ctx, req.DenomA, req.DenomB)
	if err != nil {
		return nil, err
	}
	value, err := q.GetPoolValue(ctx, pool.Id)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolResponse{Pool: *pool, Value: value}, nil
}

func (q queryServer) Pools(ctx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	pools, err := q.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolsResponse{Pools: pools}, nil
}

func (q queryServer) Position(ctx context.Context, req *types.QueryPositionRequest) (*types.QueryPositionResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	holder, err := sdk.AccAddressFromBech32(req.Holder)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrap(err.Error())
	}
	position, found := q.GetPosition(ctx, req.PoolId, holder)
	if !found {
		return nil, types.ErrInsufficientShares.Wrapf("no position in pool %d for %s", req.PoolId, req.Holder)
	}
	pending, err := q.PendingReward(ctx, req.PoolId, holder)
	if err != nil {
		return nil, err
	}
	return &types.QueryPositionResponse{Position: position, PendingReward: pending}, nil
}

func (q queryServer) EstimateSwap(ctx context.Context, req *types.QueryEstimateSwapRequest) (*types.QueryEstimateSwapResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	quote, err := q.SimulateSwap(ctx, req.PoolId, req.DenomIn, req.AmountIn)
	if err != nil {
		return nil, err
	}
	return &types.QueryEstimateSwapResponse{
		AmountOut: quote.AmountOut,
		DenomOut:  quote.DenomOut,
		Fee:       quote.TradingFee.Add(quote.ProtocolFee),
	}, nil
}

func (q queryServer) SpotPrice(ctx context.Context, req *types.QuerySpotPriceRequest) (*types.QuerySpotPriceResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	price, err := q.GetSpotPrice(ctx, req.PoolId, req.DenomIn)
	if err != nil {
		return nil, err
	}
	return &types.QuerySpotPriceResponse{Price: price}, nil
}

func (q queryServer) TopPools(ctx context.Context, req *types.QueryTopPoolsRequest) (*types.QueryTopPoolsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidInput.Wrap("empty request")
	}
	valuations, err := q.TopPoolsByValue(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	ranked := make([]types.RankedPool, 0, len(valuations))
	for _, v := range valuations {
		pool, err := q.GetPool(ctx, v.PoolId)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, types.RankedPool{Pool: *pool, Value: v.Value})
	}
	return &types.QueryTopPoolsResponse{Pools: ranked}, nil
}
