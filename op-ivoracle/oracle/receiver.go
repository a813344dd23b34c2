package oracle

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ReceiverAddress is the receiver contract every callback targets.
// It is set at link time:
//
//	go build -ldflags "-X github.com/mantlenetworkio/iv-oracle/op-ivoracle/oracle.ReceiverAddress=$CALLBACK_ADDRESS"
var ReceiverAddress = ""

var ErrNoReceiver = errors.New("no receiver address was linked into this binary, rebuild with CALLBACK_ADDRESS set")

// ParseReceiver validates a receiver address as linked into the binary.
func ParseReceiver(addr string) (common.Address, error) {
	if addr == "" {
		return common.Address{}, ErrNoReceiver
	}
	if !common.IsHexAddress(addr) {
		return common.Address{}, fmt.Errorf("invalid receiver address %q", addr)
	}
	receiver := common.HexToAddress(addr)
	if receiver == (common.Address{}) {
		return common.Address{}, fmt.Errorf("receiver address must not be zero")
	}
	return receiver, nil
}

// Receiver returns the linked receiver address.
func Receiver() (common.Address, error) {
	return ParseReceiver(ReceiverAddress)
}
