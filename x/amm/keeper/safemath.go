package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/muse-chain/muse/x/amm/types"
)

// maxSafeInt bounds every computed value at 2^256; anything above it
// aborts with ErrOverflow instead of wrapping.
var maxSafeInt = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxSafeInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("addition overflow: %s + %s", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts two math.Int values with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SafeMul multiplies two math.Int values with overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.Cmp(maxSafeInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("multiplication overflow: %s * %s", a, b)
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeMulDiv performs floor((a * b) / c) with overflow protection. This
// is the workhorse of share and reward math.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.Cmp(maxSafeInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("overflow in multiplication step: %s * %s", a, b)
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(intermediate, c.BigInt())), nil
}

// SafeMulDivCeil performs ceil((a * b) / c) with overflow protection.
// Used where rounding down would short-change existing share holders,
// such as computing the assets owed for a subsequent deposit.
func SafeMulDivCeil(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.Cmp(maxSafeInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("overflow in multiplication step: %s * %s", a, b)
	}
	quo, rem := new(big.Int).QuoRem(intermediate, c.BigInt(), new(big.Int))
	if rem.Sign() != 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return math.NewIntFromBigInt(quo), nil
}

// IntSqrt returns floor(sqrt(v)) for a non-negative value.
func IntSqrt(v math.Int) (math.Int, error) {
	if v.IsNegative() {
		return math.Int{}, types.ErrOverflow.Wrap("square root of negative value")
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(v.BigInt())), nil
}
