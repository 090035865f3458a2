// Package safe provides numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math/big"
)

// BigUint64 converts an arbitrary precision integer, such as an ABI uint256, to uint64.
func BigUint64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, fmt.Errorf("nil value")
	}
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("value %s out of uint64 range", v.String())
	}
	return v.Uint64(), nil
}
