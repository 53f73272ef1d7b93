package types

import (
	"cosmossdk.io/math"
)

// AssetSide identifies one of the two assets in a pool. Swap and deposit
// math resolve the side once per call and thread it through explicitly
// instead of re-comparing denoms at every step.
type AssetSide int8

const (
	SideA AssetSide = iota
	SideB
)

// Opposite returns the other side of the pair.
func (s AssetSide) Opposite() AssetSide {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s AssetSide) String() string {
	if s == SideA {
		return "a"
	}
	return "b"
}

// CanonicalPair returns the pair in canonical (lexicographic) order.
// One pool exists per unordered pair, so every lookup and index goes
// through this ordering.
func CanonicalPair(denomA, denomB string) (string, string) {
	if denomA > denomB {
		return denomB, denomA
	}
	return denomA, denomB
}

// Pool is the shared reserve of two assets plus the bookkeeping that
// prices exchanges between them. Persisted as JSON in the module store.
type Pool struct {
	Id       uint64 `json:"id"`
	DenomA   string `json:"denom_a"`
	DenomB   string `json:"denom_b"`
	ReserveA math.Int `json:"reserve_a"`
	ReserveB math.Int `json:"reserve_b"`

	// TotalShares includes the retired minimum liquidity. It equals the
	// sum of all recorded position shares at all times.
	TotalShares math.Int `json:"total_shares"`

	Creator     string `json:"creator"`
	DisplayName string `json:"display_name,omitempty"`
	AssetTitle  string `json:"asset_title,omitempty"`

	Active   bool `json:"active"`
	Featured bool `json:"featured"`

	// RewardMultiplierBps scales reward accrual, 10000 = 1.0x.
	RewardMultiplierBps uint32   `json:"reward_multiplier_bps"`
	RewardRatePerBlock  math.Int `json:"reward_rate_per_block"`

	Volume        math.Int `json:"volume"`
	FeesCollected math.Int `json:"fees_collected"`

	CreatedAt int64 `json:"created_at"`

	// BonusPaid latches after the one-time creator bonus has been routed
	// (or skipped) on the pool's first deposit.
	BonusPaid bool `json:"bonus_paid"`
}

// SideOf resolves which side of the pool a denom is on.
func (p *Pool) SideOf(denom string) (AssetSide, bool) {
	switch denom {
	case p.DenomA:
		return SideA, true
	case p.DenomB:
		return SideB, true
	default:
		return SideA, false
	}
}

// Denom returns the denom on the given side.
func (p *Pool) Denom(side AssetSide) string {
	if side == SideA {
		return p.DenomA
	}
	return p.DenomB
}

// Reserve returns the reserve on the given side.
func (p *Pool) Reserve(side AssetSide) math.Int {
	if side == SideA {
		return p.ReserveA
	}
	return p.ReserveB
}

// SetReserve sets the reserve on the given side.
func (p *Pool) SetReserve(side AssetSide, amount math.Int) {
	if side == SideA {
		p.ReserveA = amount
	} else {
		p.ReserveB = amount
	}
}

// Product returns the constant-product value k = reserveA * reserveB.
func (p *Pool) Product() math.Int {
	return p.ReserveA.Mul(p.ReserveB)
}

// Validate checks structural consistency of a pool record.
func (p *Pool) Validate() error {
	if p.Id == 0 {
		return ErrInvalidPoolState.Wrap("pool id cannot be zero")
	}
	if p.DenomA == "" || p.DenomB == "" {
		return ErrInvalidDenomPair.Wrap("denoms cannot be empty")
	}
	if p.DenomA == p.DenomB {
		return ErrInvalidDenomPair.Wrap("denoms must be different")
	}
	if p.DenomA > p.DenomB {
		return ErrInvalidPoolState.Wrap("denoms not in canonical order")
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvalidPoolState.Wrap("nil reserve or share amount")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidPoolState.Wrap("negative reserve")
	}
	if p.TotalShares.IsNegative() {
		return ErrInvalidPoolState.Wrap("negative total shares")
	}
	// Reserves and shares are zero together only before the first deposit.
	hasReserves := !p.ReserveA.IsZero() || !p.ReserveB.IsZero()
	if hasReserves && p.TotalShares.IsZero() {
		return ErrInvalidPoolState.Wrap("pool has reserves but no shares")
	}
	if !p.TotalShares.IsZero() && (p.ReserveA.IsZero() || p.ReserveB.IsZero()) {
		return ErrInvalidPoolState.Wrap("pool has shares but missing reserves")
	}
	if p.RewardMultiplierBps == 0 {
		return ErrInvalidPoolState.Wrap("reward multiplier cannot be zero")
	}
	return nil
}

// Position records a holder's ownership of a pool: shares plus the lazy
// reward accrual bookkeeping. Persisted as JSON keyed by (pool, holder).
type Position struct {
	PoolId  uint64 `json:"pool_id"`
	Address string `json:"address"`
	Shares  math.Int `json:"shares"`

	// LastAccrualHeight is the block height up to which rewards have been
	// realized into Claimable.
	LastAccrualHeight int64    `json:"last_accrual_height"`
	Claimable         math.Int `json:"claimable"`
	TotalClaimed      math.Int `json:"total_claimed"`
}

// NewPosition returns an empty position for a holder at the given height.
func NewPosition(poolID uint64, address string, height int64) Position {
	return Position{
		PoolId:            poolID,
		Address:           address,
		Shares:            math.ZeroInt(),
		LastAccrualHeight: height,
		Claimable:         math.ZeroInt(),
		TotalClaimed:      math.ZeroInt(),
	}
}

// Validate checks structural consistency of a position record.
func (pos *Position) Validate() error {
	if pos.PoolId == 0 {
		return ErrInvalidPoolState.Wrap("position pool id cannot be zero")
	}
	if pos.Address == "" {
		return ErrInvalidAddress.Wrap("position address cannot be empty")
	}
	if pos.Shares.IsNil() || pos.Shares.IsNegative() {
		return ErrInvalidPoolState.Wrap("position shares must be non-negative")
	}
	if pos.Claimable.IsNil() || pos.Claimable.IsNegative() {
		return ErrInvalidPoolState.Wrap("position claimable must be non-negative")
	}
	if pos.TotalClaimed.IsNil() || pos.TotalClaimed.IsNegative() {
		return ErrInvalidPoolState.Wrap("position total claimed must be non-negative")
	}
	return nil
}

// CreatorMetadata is the cosmetic branding looked up from the registry
// module when a pool is created. Lookup failures are tolerated; the pool
// simply carries empty branding.
type CreatorMetadata struct {
	DisplayName string `json:"display_name"`
	AssetTitle  string `json:"asset_title"`
}
