package bindings

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// CallbackMethod is the receiver method every oracle response is delivered to.
const CallbackMethod = "callback"

// ReceiverABI is the part of the receiver contract the oracle talks to:
// function callback(address requestId, uint256 index, uint256[] payload)
const ReceiverABI = `[
	{
		"type": "function",
		"name": "callback",
		"inputs": [
			{"name": "requestId", "type": "address", "internalType": "address"},
			{"name": "index", "type": "uint256", "internalType": "uint256"},
			{"name": "payload", "type": "uint256[]", "internalType": "uint256[]"}
		],
		"outputs": [],
		"stateMutability": "nonpayable"
	}
]`

var (
	receiverOnce   sync.Once
	receiverParsed abi.ABI
	receiverErr    error
)

// GetReceiverABI returns the parsed receiver ABI.
func GetReceiverABI() (*abi.ABI, error) {
	receiverOnce.Do(func() {
		receiverParsed, receiverErr = abi.JSON(strings.NewReader(ReceiverABI))
	})
	if receiverErr != nil {
		return nil, receiverErr
	}
	return &receiverParsed, nil
}

// PackCallback ABI-encodes a call to callback(requestId, index, payload), selector included.
func PackCallback(requestID common.Address, index *big.Int, payload []*big.Int) ([]byte, error) {
	parsed, err := GetReceiverABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack(CallbackMethod, requestID, index, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", CallbackMethod, err)
	}
	return data, nil
}

// UnpackCallback decodes calldata produced by PackCallback.
func UnpackCallback(data []byte) (requestID common.Address, index *big.Int, payload []*big.Int, err error) {
	parsed, err := GetReceiverABI()
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	method, err := parsed.MethodById(data)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	if method.Name != CallbackMethod {
		return common.Address{}, nil, nil, fmt.Errorf("unexpected method %s", method.Name)
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return common.Address{}, nil, nil, fmt.Errorf("failed to unpack %s: %w", CallbackMethod, err)
	}
	requestID = *abi.ConvertType(args[0], new(common.Address)).(*common.Address)
	index = *abi.ConvertType(args[1], new(*big.Int)).(**big.Int)
	payload = *abi.ConvertType(args[2], new([]*big.Int)).(*[]*big.Int)
	return requestID, index, payload, nil
}
