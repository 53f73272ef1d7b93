package types

import (
	"encoding/json"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgWithdraw{}
)

// MsgDeposit defines a message to deposit both assets into a pool in
// exchange for ownership shares.
type MsgDeposit struct {
	Provider string   `json:"provider"`
	PoolId   uint64   `json:"pool_id"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
}

// NewMsgDeposit creates a new MsgDeposit instance
func NewMsgDeposit(provider string, poolID uint64, amountA, amountB math.Int) *MsgDeposit {
	return &MsgDeposit{
		Provider: provider,
		PoolId:   poolID,
		AmountA:  amountA,
		AmountB:  amountB,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgDeposit) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgDeposit) Type() string { return "deposit" }

// GetSigners implements the sdk.Msg interface
func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgDeposit) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "pool id cannot be zero")
	}
	if msg.AmountA.IsNil() || !msg.AmountA.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "amount A must be positive")
	}
	if msg.AmountB.IsNil() || !msg.AmountB.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "amount B must be positive")
	}
	return nil
}

func (msg *MsgDeposit) Reset()        { *msg = MsgDeposit{} }
func (msg *MsgDeposit) ProtoMessage() {}
func (msg *MsgDeposit) String() string {
	bz, _ := json.Marshal(msg)
	return string(bz)
}

// MsgWithdraw defines a message to burn shares and withdraw the
// proportional amounts of both assets.
type MsgWithdraw struct {
	Provider string   `json:"provider"`
	PoolId   uint64   `json:"pool_id"`
	Shares   math.Int `json:"shares"`
}

// NewMsgWithdraw creates a new MsgWithdraw instance
func NewMsgWithdraw(provider string, poolID uint64, shares math.Int) *MsgWithdraw {
	return &MsgWithdraw{
		Provider: provider,
		PoolId:   poolID,
		Shares:   shares,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgWithdraw) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgWithdraw) Type() string { return "withdraw" }

// GetSigners implements the sdk.Msg interface
func (msg MsgWithdraw) GetSigners() []sdk.AccAddress {
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{provider}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgWithdraw) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid provider address: %s", err)
	}
	if msg.PoolId == 0 {
		return sdkerrors.Wrap(ErrInvalidInput, "pool id cannot be zero")
	}
	if msg.Shares.IsNil() || !msg.Shares.IsPositive() {
		return sdkerrors.Wrap(ErrInvalidInput, "shares must be positive")
	}
	return nil
}

func (msg *MsgWithdraw) Reset()        { *msg = MsgWithdraw{} }
func (msg *MsgWithdraw) ProtoMessage() {}
func (msg *MsgWithdraw) String() string {
	bz, _ := json.Marshal(msg)
	return string(bz)
}
