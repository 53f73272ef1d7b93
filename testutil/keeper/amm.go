package keeper

import (
	"context"
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/muse-chain/muse/x/amm/keeper"
	"github.com/muse-chain/muse/x/amm/types"
)

// MockBankKeeper is an in-memory bank backing the test keeper. Balances
// live in a map keyed by address string. TransferHook, when set, runs on
// every SendCoins before the balances move; reentrancy tests use it to
// call back into the keeper mid-transfer.
type MockBankKeeper struct {
	balances     map[string]sdk.Coins
	TransferHook func(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error
}

// NewMockBankKeeper returns an empty in-memory bank.
func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{balances: make(map[string]sdk.Coins)}
}

// SetBalance overwrites an account's balance.
func (m *MockBankKeeper) SetBalance(addr sdk.AccAddress, coins sdk.Coins) {
	m.balances[addr.String()] = coins
}

// SendCoins moves coins between accounts, failing on insufficient funds.
func (m *MockBankKeeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.TransferHook != nil {
		if err := m.TransferHook(ctx, fromAddr, toAddr, amt); err != nil {
			return err
		}
	}

	fromBalance := m.balances[fromAddr.String()]
	if !amt.IsAllLTE(fromBalance) {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", fromAddr, fromBalance, amt)
	}
	m.balances[fromAddr.String()] = fromBalance.Sub(amt...)
	m.balances[toAddr.String()] = m.balances[toAddr.String()].Add(amt...)
	return nil
}

// GetBalance returns an account's balance of a single denom.
func (m *MockBankKeeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	balance := m.balances[addr.String()]
	return sdk.NewCoin(denom, balance.AmountOf(denom))
}

// SpendableCoins returns an account's full balance.
func (m *MockBankKeeper) SpendableCoins(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	return m.balances[addr.String()]
}

// MockRegistryKeeper serves creator branding from a fixed map.
type MockRegistryKeeper struct {
	Metadata map[string]types.CreatorMetadata
}

// CreatorMetadata returns the branding recorded for a creator, if any.
func (m *MockRegistryKeeper) CreatorMetadata(ctx context.Context, creator sdk.AccAddress) (types.CreatorMetadata, bool) {
	if m == nil || m.Metadata == nil {
		return types.CreatorMetadata{}, false
	}
	meta, ok := m.Metadata[creator.String()]
	return meta, ok
}

// TestAuthority is the administrative authority wired into test keepers.
var TestAuthority = sdk.AccAddress("amm_test_authority__").String()

// AmmKeeper creates a test keeper for the amm module backed by an
// in-memory multistore and the mock bank.
func AmmKeeper(t testing.TB) (keeper.Keeper, sdk.Context, *MockBankKeeper) {
	return AmmKeeperWithRegistry(t, nil)
}

// AmmKeeperWithRegistry is AmmKeeper with creator branding records.
func AmmKeeperWithRegistry(t testing.TB, registry *MockRegistryKeeper) (keeper.Keeper, sdk.Context, *MockBankKeeper) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	bank := NewMockBankKeeper()

	var registryKeeper types.RegistryKeeper
	if registry != nil {
		registryKeeper = registry
	}

	k := keeper.NewKeeper(
		cdc,
		storeKey,
		bank,
		registryKeeper,
		TestAuthority,
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1}, false, log.NewNopLogger())

	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ctx, bank
}
