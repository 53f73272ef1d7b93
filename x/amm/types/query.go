package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer defines the read-only query interface of the amm module.
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	PoolByDenoms(context.Context, *QueryPoolByDenomsRequest) (*QueryPoolResponse, error)
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	Position(context.Context, *QueryPositionRequest) (*QueryPositionResponse, error)
	EstimateSwap(context.Context, *QueryEstimateSwapRequest) (*QueryEstimateSwapResponse, error)
	SpotPrice(context.Context, *QuerySpotPriceRequest) (*QuerySpotPriceResponse, error)
	TopPools(context.Context, *QueryTopPoolsRequest) (*QueryTopPoolsResponse, error)
}

type QueryParamsRequest struct{}

type QueryParamsResponse struct {
	Params Params `json:"params"`
}

type QueryPoolRequest struct {
	PoolId uint64 `json:"pool_id"`
}

type QueryPoolByDenomsRequest struct {
	DenomA string `json:"denom_a"`
	DenomB string `json:"denom_b"`
}

type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
	// Value is the pool's tracked valuation in the reference denom.
	Value math.Int `json:"value"`
}

type QueryPoolsRequest struct{}

type QueryPoolsResponse struct {
	Pools []Pool `json:"pools"`
}

type QueryPositionRequest struct {
	PoolId uint64 `json:"pool_id"`
	Holder string `json:"holder"`
}

type QueryPositionResponse struct {
	Position Position `json:"position"`
	// PendingReward includes rewards accrued since the position's last
	// checkpoint, not just the realized Claimable.
	PendingReward math.Int `json:"pending_reward"`
}

type QueryEstimateSwapRequest struct {
	PoolId   uint64   `json:"pool_id"`
	DenomIn  string   `json:"denom_in"`
	AmountIn math.Int `json:"amount_in"`
}

type QueryEstimateSwapResponse struct {
	AmountOut math.Int `json:"amount_out"`
	DenomOut  string   `json:"denom_out"`
	Fee       math.Int `json:"fee"`
}

type QuerySpotPriceRequest struct {
	PoolId  uint64 `json:"pool_id"`
	DenomIn string `json:"denom_in"`
}

type QuerySpotPriceResponse struct {
	Price math.LegacyDec `json:"price"`
}

type QueryTopPoolsRequest struct {
	Limit int `json:"limit"`
}

// RankedPool is a pool paired with its valuation rank entry.
type RankedPool struct {
	Pool  Pool     `json:"pool"`
	Value math.Int `json:"value"`
}

type QueryTopPoolsResponse struct {
	Pools []RankedPool `json:"pools"`
}
