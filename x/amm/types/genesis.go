package types

import (
	"fmt"
)

// GenesisState is the persisted amm module state: parameters, pools,
// positions, and the pool id counter.
type GenesisState struct {
	Params     Params     `json:"params"`
	Pools      []Pool     `json:"pools"`
	Positions  []Position `json:"positions"`
	NextPoolId uint64     `json:"next_pool_id"`
}

// DefaultGenesis returns the default genesis state for the amm module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		Pools:      []Pool{},
		Positions:  []Position{},
		NextPoolId: 1,
	}
}

// Validate ensures the genesis state is well-formed. Positions must
// reference known pools and sum exactly to each pool's total shares.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if gs.NextPoolId == 0 {
		return fmt.Errorf("next pool id must be positive")
	}

	pools := make(map[uint64]*Pool, len(gs.Pools))
	pairs := make(map[string]struct{}, len(gs.Pools))
	for i := range gs.Pools {
		p := &gs.Pools[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid pool %d: %w", p.Id, err)
		}
		if p.Id >= gs.NextPoolId {
			return fmt.Errorf("pool %d not below next pool id %d", p.Id, gs.NextPoolId)
		}
		if _, dup := pools[p.Id]; dup {
			return fmt.Errorf("duplicate pool id %d", p.Id)
		}
		pools[p.Id] = p

		if p.Active {
			pairKey := p.DenomA + "/" + p.DenomB
			if _, dup := pairs[pairKey]; dup {
				return fmt.Errorf("duplicate active pool for pair %s", pairKey)
			}
			pairs[pairKey] = struct{}{}
		}
	}

	// Subtract every position's shares from its pool; all remainders
	// must hit zero exactly.
	seen := make(map[string]struct{}, len(gs.Positions))
	remaining := make(map[uint64]Pool, len(pools))
	for id, p := range pools {
		remaining[id] = *p
	}

	for i := range gs.Positions {
		pos := &gs.Positions[i]
		if err := pos.Validate(); err != nil {
			return fmt.Errorf("invalid position (%d, %s): %w", pos.PoolId, pos.Address, err)
		}
		pool, ok := remaining[pos.PoolId]
		if !ok {
			return fmt.Errorf("position references unknown pool %d", pos.PoolId)
		}
		key := fmt.Sprintf("%d/%s", pos.PoolId, pos.Address)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate position %s", key)
		}
		seen[key] = struct{}{}

		pool.TotalShares = pool.TotalShares.Sub(pos.Shares)
		remaining[pos.PoolId] = pool
	}

	for id, pool := range remaining {
		if !pool.TotalShares.IsZero() {
			return fmt.Errorf("pool %d: position shares do not sum to total shares (off by %s)", id, pool.TotalShares)
		}
	}

	return nil
}
