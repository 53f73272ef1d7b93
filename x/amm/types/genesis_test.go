package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/muse-chain/muse/x/amm/types"
)

func seededGenesis() types.GenesisState {
	pool := validPool()
	pos1 := types.NewPosition(1, "muse1retired", 1)
	pos1.Shares = math.NewInt(1_000)
	pos2 := types.NewPosition(1, "muse1provider", 1)
	pos2.Shares = math.NewInt(9_000)

	return types.GenesisState{
		Params:     types.DefaultParams(),
		Pools:      []types.Pool{pool},
		Positions:  []types.Position{pos1, pos2},
		NextPoolId: 2,
	}
}

func TestGenesisValidate(t *testing.T) {
	require.NoError(t, seededGenesis().Validate())
}

func TestGenesisValidateRejections(t *testing.T) {
	cases := map[string]func(*types.GenesisState){
		"zero next id": func(gs *types.GenesisState) { gs.NextPoolId = 0 },
		"pool id above counter": func(gs *types.GenesisState) {
			gs.Pools[0].Id = 5
			gs.Positions[0].PoolId = 5
			gs.Positions[1].PoolId = 5
		},
		"duplicate pool": func(gs *types.GenesisState) {
			gs.Pools = append(gs.Pools, gs.Pools[0])
			gs.NextPoolId = 3
		},
		"orphan position": func(gs *types.GenesisState) {
			gs.Positions[1].PoolId = 7
		},
		"duplicate position": func(gs *types.GenesisState) {
			gs.Positions[1].Address = gs.Positions[0].Address
		},
		"share shortfall": func(gs *types.GenesisState) {
			gs.Positions[1].Shares = gs.Positions[1].Shares.SubRaw(1)
		},
		"share excess": func(gs *types.GenesisState) {
			gs.Positions[1].Shares = gs.Positions[1].Shares.AddRaw(1)
		},
		"invalid params": func(gs *types.GenesisState) {
			gs.Params.MaxPools = 0
		},
	}
	for name, mutate := range cases {
		gs := seededGenesis()
		mutate(&gs)
		require.Error(t, gs.Validate(), name)
	}
}

func TestGenesisDuplicateActivePair(t *testing.T) {
	gs := seededGenesis()

	second := validPool()
	second.Id = 2
	gs.Pools = append(gs.Pools, second)
	gs.NextPoolId = 3

	dupPos := types.NewPosition(2, "muse1other", 1)
	dupPos.Shares = second.TotalShares
	gs.Positions = append(gs.Positions, dupPos)

	require.Error(t, gs.Validate())

	// The same pair is allowed when the older pool is inactive.
	gs.Pools[0].Active = false
	require.NoError(t, gs.Validate())
}
