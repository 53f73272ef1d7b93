package keeper

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	// PoolKeyPrefix is the prefix for pool store keys
	PoolKeyPrefix = []byte{0x01}

	// PoolCountKey is the key for the next pool ID counter
	PoolCountKey = []byte{0x02}

	// PoolByDenomsKeyPrefix is the prefix for indexing pools by denom pair
	PoolByDenomsKeyPrefix = []byte{0x03}

	// PositionKeyPrefix is the prefix for liquidity position store keys
	PositionKeyPrefix = []byte{0x04}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x05}

	// PoolLockKeyPrefix is the prefix for per-pool reentrancy locks
	PoolLockKeyPrefix = []byte{0x06}

	// TotalPoolsCountKey is the key for the O(1) active pool counter
	TotalPoolsCountKey = []byte{0x07}

	// PoolValueKeyPrefix is the prefix for tracked pool valuations
	PoolValueKeyPrefix = []byte{0x08}
)

// PoolKey returns the store key for a pool by ID
func PoolKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PoolKeyPrefix, poolIDBytes...)
}

// PoolByDenomsKey returns the store key for indexing a pool by its
// canonical denom pair.
func PoolByDenomsKey(denomA, denomB string) []byte {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	key := append(PoolByDenomsKeyPrefix, []byte(denomA)...)
	key = append(key, []byte("/")...)
	key = append(key, []byte(denomB)...)
	return key
}

// PositionKey returns the store key for a liquidity position
func PositionKey(poolID uint64, holder sdk.AccAddress) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	key := append(PositionKeyPrefix, poolIDBytes...)
	key = append(key, holder.Bytes()...)
	return key
}

// PositionByPoolPrefix returns the prefix for all positions in a pool
func PositionByPoolPrefix(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PositionKeyPrefix, poolIDBytes...)
}

// PoolLockKey returns the store key for a pool's reentrancy lock
func PoolLockKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PoolLockKeyPrefix, poolIDBytes...)
}

// PoolValueKey returns the store key for a pool's tracked valuation
func PoolValueKey(poolID uint64) []byte {
	poolIDBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(poolIDBytes, poolID)
	return append(PoolValueKeyPrefix, poolIDBytes...)
}
