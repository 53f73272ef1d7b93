package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/muse-chain/muse/x/amm/types"
)

func validPool() types.Pool {
	return types.Pool{
		Id:                  1,
		DenomA:              "uatom",
		DenomB:              "umuse",
		ReserveA:            math.NewInt(10_000),
		ReserveB:            math.NewInt(10_000),
		TotalShares:         math.NewInt(10_000),
		Creator:             "muse1creator",
		Active:              true,
		RewardMultiplierBps: types.DefaultRewardMultiplierBps,
		RewardRatePerBlock:  math.ZeroInt(),
		Volume:              math.ZeroInt(),
		FeesCollected:       math.ZeroInt(),
		CreatedAt:           1,
	}
}

func TestCanonicalPair(t *testing.T) {
	a, b := types.CanonicalPair("umuse", "uatom")
	require.Equal(t, "uatom", a)
	require.Equal(t, "umuse", b)

	a, b = types.CanonicalPair("uatom", "umuse")
	require.Equal(t, "uatom", a)
	require.Equal(t, "umuse", b)
}

func TestPoolSideResolution(t *testing.T) {
	pool := validPool()

	side, ok := pool.SideOf("uatom")
	require.True(t, ok)
	require.Equal(t, types.SideA, side)
	require.Equal(t, types.SideB, side.Opposite())
	require.Equal(t, "umuse", pool.Denom(side.Opposite()))

	_, ok = pool.SideOf("uosmo")
	require.False(t, ok)

	pool.SetReserve(types.SideB, math.NewInt(42))
	require.Equal(t, math.NewInt(42), pool.Reserve(types.SideB))
	require.Equal(t, math.NewInt(10_000), pool.ReserveA)
}

func TestPoolValidate(t *testing.T) {
	valid := validPool()
	require.NoError(t, valid.Validate())

	cases := map[string]func(*types.Pool){
		"zero id":             func(p *types.Pool) { p.Id = 0 },
		"empty denom":         func(p *types.Pool) { p.DenomA = "" },
		"identical denoms":    func(p *types.Pool) { p.DenomB = p.DenomA },
		"non-canonical order": func(p *types.Pool) { p.DenomA, p.DenomB = p.DenomB, p.DenomA },
		"negative reserve":    func(p *types.Pool) { p.ReserveA = math.NewInt(-1) },
		"negative shares":     func(p *types.Pool) { p.TotalShares = math.NewInt(-1) },
		"reserves no shares":  func(p *types.Pool) { p.TotalShares = math.ZeroInt() },
		"shares no reserves":  func(p *types.Pool) { p.ReserveA = math.ZeroInt() },
		"zero multiplier":     func(p *types.Pool) { p.RewardMultiplierBps = 0 },
	}
	for name, mutate := range cases {
		pool := validPool()
		mutate(&pool)
		require.Error(t, pool.Validate(), name)
	}

	// An unseeded pool is valid with zero everything.
	empty := validPool()
	empty.ReserveA = math.ZeroInt()
	empty.ReserveB = math.ZeroInt()
	empty.TotalShares = math.ZeroInt()
	require.NoError(t, empty.Validate())
}

func TestPositionValidate(t *testing.T) {
	pos := types.NewPosition(1, "muse1holder", 10)
	require.NoError(t, pos.Validate())

	pos.Shares = math.NewInt(-1)
	require.Error(t, pos.Validate())

	pos = types.NewPosition(0, "muse1holder", 10)
	require.Error(t, pos.Validate())

	pos = types.NewPosition(1, "", 10)
	require.Error(t, pos.Validate())
}
