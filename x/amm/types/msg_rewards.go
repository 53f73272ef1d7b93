package types

import (
	"encoding/json"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgClaimRewards{}
	_ sdk.Msg = &MsgFundRewards{}
	_ sdk.Msg = &MsgSetFeatured{}
	_ sdk.Msg = &MsgSetRewardRate{}
)

// MsgClaimRewards defines a message to realize and pay out a holder's
// accrued rewards for a pool. Payout is capped by the reward fund.
type MsgClaimRewards struct {
	Holder string `json:"holder"`
	PoolId uint64 `json:"pool_id"`
}

// NewMsgClaimRewards creates a new MsgClaimRewards instance
func NewMsgClaimRewards(holder string, poolID uint64) *MsgClaimRewards {
	return &MsgClaimRewards{Holder: holder, PoolId: poolID}
}

// Route implements the sdk.Msg interface
func (msg MsgClaimRewards) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgClaimRewards) Type() string { return "claim_rewards" }

// GetSigners implements the sdk.Msg interface
func (msg MsgClaimRewards) GetSigners() []sdk.AccAddress {
	holder, err := sdk.AccAddressFromBech32(msg.Holder)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{holder}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgClaimRewards) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgClaimRewards) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Holder); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid holder address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "pool id cannot be zero")
	}
	return nil
}

func (msg *MsgClaimRewards) Reset()        { *msg = MsgClaimRewards{} }
func (msg *MsgClaimRewards) ProtoMessage() {}
func (msg *MsgClaimRewards) String() string {
	bz, _ := json.Marshal(msg)
	return string(bz)
}

// MsgFundRewards defines a message to top up the reward funding reserve.
type MsgFundRewards struct {
	Funder string   `json:"funder"`
	Amount math.Int `json:"amount"`
}

// NewMsgFundRewards creates a new MsgFundRewards instance
func NewMsgFundRewards(funder string, amount math.Int) *MsgFundRewards {
	return &MsgFundRewards{Funder: funder, Amount: amount}
}

// Route implements the sdk.Msg interface
func (msg MsgFundRewards) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgFundRewards) Type() string { return "fund_rewards" }

// GetSigners implements the sdk.Msg interface
func (msg MsgFundRewards) GetSigners() []sdk.AccAddress {
	funder, err := sdk.AccAddressFromBech32(msg.Funder)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{funder}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgFundRewards) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgFundRewards) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Funder); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid funder address: %s", err)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "amount must be positive")
	}
	return nil
}

func (msg *MsgFundRewards) Reset()        { *msg = MsgFundRewards{} }
func (msg *MsgFundRewards) ProtoMessage() {}
func (msg *MsgFundRewards) String() string {
	bz, _ := json.Marshal(msg)
	return string(bz)
}

// MsgSetFeatured defines an authority-gated message toggling a pool's
// featured flag and, with it, the reward multiplier used for future
// accrual.
type MsgSetFeatured struct {
	Authority string `json:"authority"`
	PoolId    uint64 `json:"pool_id"`
	Featured  bool   `json:"featured"`
}

// NewMsgSetFeatured creates a new MsgSetFeatured instance
func NewMsgSetFeatured(authority string, poolID uint64, featured bool) *MsgSetFeatured {
	return &MsgSetFeatured{Authority: authority, PoolId: poolID, Featured: featured}
}

// Route implements the sdk.Msg interface
func (msg MsgSetFeatured) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSetFeatured) Type() string { return "set_featured" }

// GetSigners implements the sdk.Msg interface
func (msg MsgSetFeatured) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetFeatured) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetFeatured) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "pool id cannot be zero")
	}
	return nil
}

func (msg *MsgSetFeatured) Reset()        { *msg = MsgSetFeatured{} }
func (msg *MsgSetFeatured) ProtoMessage() {}
func (msg *MsgSetFeatured) String() string {
	bz, _ := json.Marshal(msg)
	return string(bz)
}

// MsgSetRewardRate defines an authority-gated message setting a pool's
// per-block reward emission rate.
type MsgSetRewardRate struct {
	Authority string   `json:"authority"`
	PoolId    uint64   `json:"pool_id"`
	Rate      math.Int `json:"rate"`
}

// NewMsgSetRewardRate creates a new MsgSetRewardRate instance
func NewMsgSetRewardRate(authority string, poolID uint64, rate math.Int) *MsgSetRewardRate {
	return &MsgSetRewardRate{Authority: authority, PoolId: poolID, Rate: rate}
}

// Route implements the sdk.Msg interface
func (msg MsgSetRewardRate) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgSetRewardRate) Type() string { return "set_reward_rate" }

// GetSigners implements the sdk.Msg interface
func (msg MsgSetRewardRate) GetSigners() []sdk.AccAddress {
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{authority}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSetRewardRate) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSetRewardRate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid authority address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "pool id cannot be zero")
	}
	if msg.Rate.IsNil() || msg.Rate.IsNegative() {
		return sdkerrors.Wrap(ErrInvalidInput, "rate must be non-negative")
	}
	return nil
}

func (msg *MsgSetRewardRate) Reset()        { *msg = MsgSetRewardRate{} }
func (msg *MsgSetRewardRate) ProtoMessage() {}
func (msg *MsgSetRewardRate) String() string {
	bz, _ := json.Marshal(msg)
	return string(bz)
}
