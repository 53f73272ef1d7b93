package types

// Event types emitted by the amm module
const (
	EventTypePoolCreated    = "amm_pool_created"
	EventTypeDeposit        = "amm_deposit"
	EventTypeWithdraw       = "amm_withdraw"
	EventTypeSwap           = "amm_swap"
	EventTypeFeesCollected  = "amm_fees_collected"
	EventTypeRewardsClaimed = "amm_rewards_claimed"
	EventTypeRewardsFunded  = "amm_rewards_funded"
	EventTypeRewardRateSet  = "amm_reward_rate_set"
	EventTypePoolFeatured   = "amm_pool_featured"

	// Creator incentives. A skipped bonus is observable only through the
	// skipped event, never through an error on the underlying operation.
	EventTypeCreatorBonus        = "amm_creator_bonus"
	EventTypeCreatorBonusSkipped = "amm_creator_bonus_skipped"
)
