package keeper

import (
	"encoding/binary"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/muse-chain/muse/x/amm/types"
)

// InitGenesis initializes the amm module state from genesis.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}
	k.SetNextPoolID(ctx, genState.NextPoolId)

	params := genState.Params
	var count uint64
	for i := range genState.Pools {
		pool := genState.Pools[i]
		if err := k.SetPool(ctx, &pool); err != nil {
			return err
		}
		if pool.Active {
			k.SetPoolByDenoms(ctx, pool.DenomA, pool.DenomB, pool.Id)
		}
		k.updatePoolValue(ctx, &pool, params)
		count++
	}
	k.SetTotalPoolsCount(ctx, count)

	for i := range genState.Positions {
		if err := k.SetPosition(ctx, &genState.Positions[i]); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis exports the amm module state.
func (k Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	var pools []types.Pool
	if err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	}); err != nil {
		return nil, err
	}

	var positions []types.Position
	if err := k.IterateAllPositions(ctx, func(position types.Position) bool {
		positions = append(positions, position)
		return false
	}); err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:     params,
		Pools:      pools,
		Positions:  positions,
		NextPoolId: k.peekNextPoolID(ctx),
	}, nil
}

// peekNextPoolID reads the counter without consuming an ID.
func (k Keeper) peekNextPoolID(ctx sdk.Context) uint64 {
	bz := k.getStore(ctx).Get(PoolCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}
