package oracle

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// IVDecimals is the number of decimals of the fixed-point mark IV.
const IVDecimals = 8

// RescaleIV turns the mark IV into an integer with IVDecimals decimals.
// The value is rounded half to even on the decimal representation of iv,
// so 0.54321 becomes 54321000.
func RescaleIV(iv float64) (*uint256.Int, error) {
	if math.IsNaN(iv) || math.IsInf(iv, 0) {
		return nil, fmt.Errorf("%w: mark_iv is not finite", ErrFetch)
	}
	if iv < 0 {
		return nil, fmt.Errorf("%w: negative mark_iv %v", ErrInvalidParameter, iv)
	}
	scaled := decimal.NewFromFloat(iv).RoundBank(IVDecimals).Shift(IVDecimals)
	out, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, fmt.Errorf("%w: mark_iv %v does not fit 256 bits", ErrInvalidParameter, iv)
	}
	return out, nil
}
