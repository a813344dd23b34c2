package oracle

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/bindings"
)

const (
	// CallbacksPerRequest is the number of callbacks emitted for every successful request.
	CallbacksPerRequest = 3
	// PayloadSize is the length of each callback payload.
	PayloadSize = 3
)

// Callback is a prepared call to receiver.callback(requestId, index, payload).
// It is handed back to the host, which signs and submits it.
type Callback struct {
	To        common.Address
	RequestID common.Address
	Index     uint64
	Payload   [PayloadSize]*uint256.Int
}

// Calldata returns the ABI-encoded method call, selector included.
func (c Callback) Calldata() ([]byte, error) {
	payload := make([]*big.Int, len(c.Payload))
	for i, v := range c.Payload {
		if v == nil {
			return nil, fmt.Errorf("callback %d has no payload word %d", c.Index, i)
		}
		payload[i] = v.ToBig()
	}
	return bindings.PackCallback(c.RequestID, new(big.Int).SetUint64(c.Index), payload)
}

// BuildCallbacks returns the callbacks for the rescaled value x:
// callback i carries [x+i+1, x+i+2, x+i+3]. Any overflow fails the whole set.
func BuildCallbacks(receiver, requestID common.Address, x *uint256.Int) ([]Callback, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: missing rescaled value", ErrInvalidParameter)
	}
	out := make([]Callback, 0, CallbacksPerRequest)
	for i := uint64(0); i < CallbacksPerRequest; i++ {
		cb := Callback{
			To:        receiver,
			RequestID: requestID,
			Index:     i,
		}
		for j := uint64(0); j < PayloadSize; j++ {
			v, overflow := new(uint256.Int).AddOverflow(x, uint256.NewInt(i+j+1))
			if overflow {
				return nil, fmt.Errorf("%w: payload of callback %d overflows", ErrInvalidParameter, i)
			}
			cb.Payload[j] = v
		}
		out = append(out, cb)
	}
	return out, nil
}
