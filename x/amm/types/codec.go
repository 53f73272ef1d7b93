package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the necessary interfaces and concrete types
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, "amm/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgDeposit{}, "amm/MsgDeposit", nil)
	cdc.RegisterConcrete(&MsgWithdraw{}, "amm/MsgWithdraw", nil)
	cdc.RegisterConcrete(&MsgSwap{}, "amm/MsgSwap", nil)
	cdc.RegisterConcrete(&MsgClaimRewards{}, "amm/MsgClaimRewards", nil)
	cdc.RegisterConcrete(&MsgFundRewards{}, "amm/MsgFundRewards", nil)
	cdc.RegisterConcrete(&MsgSetFeatured{}, "amm/MsgSetFeatured", nil)
	cdc.RegisterConcrete(&MsgSetRewardRate{}, "amm/MsgSetRewardRate", nil)
}

// RegisterInterfaces registers the module's interfaces with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgCreatePool{},
		&MsgDeposit{},
		&MsgWithdraw{},
		&MsgSwap{},
		&MsgClaimRewards{},
		&MsgFundRewards{},
		&MsgSetFeatured{},
		&MsgSetRewardRate{},
	)
}

var (
	amino     = codec.NewLegacyAmino()
	ModuleCdc = codec.NewAminoCodec(amino)
)

func init() {
	RegisterCodec(amino)
	amino.Seal()
}
