package bindings

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ErrEmptyOrder = errors.New("empty order params")

// Order is the request record the receiver contract forwards with every oracle request:
// struct Order { string market_id; uint256 exp_date; uint256 strike_price; uint8 option_type; }
type Order struct {
	MarketId    string
	ExpDate     *big.Int
	StrikePrice *big.Int
	OptionType  uint8
}

var orderArguments = func() abi.Arguments {
	orderTy, err := abi.NewType("tuple", "struct Order", []abi.ArgumentMarshaling{
		{Name: "market_id", Type: "string"},
		{Name: "exp_date", Type: "uint256"},
		{Name: "strike_price", Type: "uint256"},
		{Name: "option_type", Type: "uint8"},
	})
	if err != nil {
		panic(fmt.Errorf("invalid order abi type: %w", err))
	}
	return abi.Arguments{{Name: "order", Type: orderTy}}
}()

// EncodeOrder returns abi.encode(order), the params blob attached to a request.
func EncodeOrder(order Order) ([]byte, error) {
	if order.ExpDate == nil || order.StrikePrice == nil {
		return nil, errors.New("order is missing exp_date or strike_price")
	}
	return orderArguments.Pack(order)
}

// DecodeOrder is the inverse of EncodeOrder.
func DecodeOrder(params []byte) (Order, error) {
	if len(params) == 0 {
		return Order{}, ErrEmptyOrder
	}
	out, err := orderArguments.Unpack(params)
	if err != nil {
		return Order{}, fmt.Errorf("failed to unpack order: %w", err)
	}
	if len(out) != 1 {
		return Order{}, fmt.Errorf("expected 1 order value, got %d", len(out))
	}
	return *abi.ConvertType(out[0], new(Order)).(*Order), nil
}
