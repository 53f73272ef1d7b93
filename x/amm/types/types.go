package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// RewardPoolName is the sub-account holding the pre-funded reward reserve.
	// Reward and bonus payouts are capped by this account's balance.
	RewardPoolName = "amm_rewards"

	// RetiredSharesName is the sub-account that permanently holds the
	// minimum liquidity retired on a pool's first deposit. Shares assigned
	// to it are unclaimable, which keeps TotalShares from ever returning
	// to zero once a pool has been seeded.
	RetiredSharesName = "amm_retired"
)

const (
	// BasisPointsDenom is the divisor for basis-point scaled values.
	BasisPointsDenom = 10_000

	// DefaultRewardMultiplierBps is the 1.0x reward multiplier.
	DefaultRewardMultiplierBps = uint32(10_000)
)

// Event attribute keys shared across amm events
const (
	AttributeKeyPoolID      = "pool_id"
	AttributeKeyCreator     = "creator"
	AttributeKeyProvider    = "provider"
	AttributeKeyTrader      = "trader"
	AttributeKeyHolder      = "holder"
	AttributeKeyDenomA      = "denom_a"
	AttributeKeyDenomB      = "denom_b"
	AttributeKeyDenomIn     = "denom_in"
	AttributeKeyDenomOut    = "denom_out"
	AttributeKeyAmountA     = "amount_a"
	AttributeKeyAmountB     = "amount_b"
	AttributeKeyAmountIn    = "amount_in"
	AttributeKeyAmountOut   = "amount_out"
	AttributeKeyShares      = "shares"
	AttributeKeyFee         = "fee"
	AttributeKeyAmount      = "amount"
	AttributeKeyShortfall   = "shortfall"
	AttributeKeyFeatured    = "featured"
	AttributeKeyRewardRate  = "reward_rate"
	AttributeKeyDisplayName = "display_name"
	AttributeKeyReason      = "reason"
)
