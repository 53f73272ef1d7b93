package types

import (
	"encoding/json"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.Msg = &MsgCreatePool{}

// MsgCreatePool defines a message to create a new, empty liquidity pool
// for an unordered asset pair. Reserves are seeded by the first deposit.
type MsgCreatePool struct {
	Creator string `json:"creator"`
	DenomA  string `json:"denom_a"`
	DenomB  string `json:"denom_b"`
}

// NewMsgCreatePool creates a new MsgCreatePool instance
func NewMsgCreatePool(creator, denomA, denomB string) *MsgCreatePool {
	return &MsgCreatePool{
		Creator: creator,
		DenomA:  denomA,
		DenomB:  denomB,
	}
}

// Route implements the sdk.Msg interface
func (msg MsgCreatePool) Route() string { return RouterKey }

// Type implements the sdk.Msg interface
func (msg MsgCreatePool) Type() string { return "create_pool" }

// GetSigners implements the sdk.Msg interface
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{creator}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgCreatePool) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid creator address: %s", err)
	}
	if msg.DenomA == "" || msg.DenomB == "" {
		return sdkerrors.Wrap(ErrInvalidDenomPair, "denoms cannot be empty")
	}
	if msg.DenomA == msg.DenomB {
		return sdkerrors.Wrap(ErrInvalidDenomPair, "denoms must be different")
	}
	return nil
}

func (msg *MsgCreatePool) Reset()      { *msg = MsgCreatePool{} }
func (msg *MsgCreatePool) ProtoMessage() {}
func (msg *MsgCreatePool) String() string {
	bz, _ := json.Marshal(msg)
	return string(bz)
}
