package oracle

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/holiman/uint256"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/bindings"
)

// OptionType is the side of the option, as encoded in Order.option_type.
type OptionType uint8

const (
	Call OptionType = 0
	Put  OptionType = 1
)

// Letter returns the instrument suffix of the option type.
func (o OptionType) Letter() string {
	if o == Put {
		return "P"
	}
	return "C"
}

func (o OptionType) String() string {
	switch o {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(o))
	}
}

// MaxExpiry is the last second a four digit year can express, 9999-12-31T23:59:59Z.
const MaxExpiry = 253402300799

// DecodedRequest is a validated Order.
type DecodedRequest struct {
	Market string
	Expiry time.Time
	Strike *uint256.Int
	Option OptionType
}

// Decode validates order. Only the low 64 bits of exp_date are used as the unix timestamp,
// any value past MaxExpiry is rejected.
func Decode(order bindings.Order) (DecodedRequest, error) {
	if order.ExpDate == nil || order.StrikePrice == nil {
		return DecodedRequest{}, fmt.Errorf("%w: order is missing exp_date or strike_price", ErrInvalidParameter)
	}
	if order.ExpDate.Sign() < 0 || order.StrikePrice.Sign() < 0 {
		return DecodedRequest{}, fmt.Errorf("%w: negative order field", ErrInvalidParameter)
	}

	var opt OptionType
	switch order.OptionType {
	case uint8(Call):
		opt = Call
	case uint8(Put):
		opt = Put
	default:
		return DecodedRequest{}, fmt.Errorf("%w: option type %d", ErrInvalidParameter, order.OptionType)
	}

	low := lowUint64(order.ExpDate)
	if low > MaxExpiry {
		return DecodedRequest{}, fmt.Errorf("%w: expiry %d is out of range", ErrInvalidParameter, low)
	}

	strike, overflow := uint256.FromBig(order.StrikePrice)
	if overflow {
		return DecodedRequest{}, fmt.Errorf("%w: strike price does not fit 256 bits", ErrInvalidParameter)
	}

	return DecodedRequest{
		Market: order.MarketId,
		Expiry: time.Unix(int64(low), 0).UTC(),
		Strike: strike,
		Option: opt,
	}, nil
}

func lowUint64(v *big.Int) uint64 {
	return new(big.Int).And(v, new(big.Int).SetUint64(math.MaxUint64)).Uint64()
}
