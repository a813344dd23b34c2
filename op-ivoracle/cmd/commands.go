package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/bindings"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/flags"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/oracle"
	"github.com/mantlenetworkio/iv-oracle/op-service/cliutil"
)

func orderFromFlags(cliCtx *cli.Context) (bindings.Order, error) {
	expDate, err := cliutil.U256Flag(cliCtx, flags.ExpDateFlag.Name)
	if err != nil {
		return bindings.Order{}, fmt.Errorf("invalid %s: %w", flags.ExpDateFlag.Name, err)
	}
	strike, err := cliutil.U256Flag(cliCtx, flags.StrikeFlag.Name)
	if err != nil {
		return bindings.Order{}, fmt.Errorf("invalid %s: %w", flags.StrikeFlag.Name, err)
	}
	optionType := cliCtx.Uint(flags.OptionTypeFlag.Name)
	if optionType > math.MaxUint8 {
		return bindings.Order{}, fmt.Errorf("invalid %s: %d does not fit uint8", flags.OptionTypeFlag.Name, optionType)
	}
	return bindings.Order{
		MarketId:    cliCtx.String(flags.MarketFlag.Name),
		ExpDate:     expDate.ToBig(),
		StrikePrice: strike.ToBig(),
		OptionType:  uint8(optionType),
	}, nil
}

// EncodeRequest prints abi.encode(order), the params a receiver forwards with a request.
func EncodeRequest(cliCtx *cli.Context) error {
	order, err := orderFromFlags(cliCtx)
	if err != nil {
		return err
	}
	params, err := bindings.EncodeOrder(order)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cliCtx.App.Writer, hexutil.Encode(params))
	return err
}

// PrintSymbol prints the instrument the oracle would query for the order.
func PrintSymbol(cliCtx *cli.Context) error {
	order, err := orderFromFlags(cliCtx)
	if err != nil {
		return err
	}
	req, err := oracle.Decode(order)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cliCtx.App.Writer, oracle.Symbol(req))
	return err
}

// CodeReader is the part of an L2 client check-receiver needs.
type CodeReader interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
}

// CheckReceiver fails unless contract code is deployed at the linked receiver address.
func CheckReceiver(cliCtx *cli.Context) error {
	receiver, err := oracle.Receiver()
	if err != nil {
		return err
	}
	client, err := ethclient.DialContext(cliCtx.Context, cliCtx.String(flags.L2EthRpcFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to dial L2 rpc: %w", err)
	}
	defer client.Close()
	return checkReceiverCode(cliCtx.Context, client, receiver, cliCtx.App.Writer)
}

func checkReceiverCode(ctx context.Context, client CodeReader, receiver common.Address, w io.Writer) error {
	code, err := client.CodeAt(ctx, receiver, nil)
	if err != nil {
		return fmt.Errorf("failed to read code of receiver %s: %w", receiver, err)
	}
	if len(code) == 0 {
		return fmt.Errorf("no contract deployed at receiver %s", receiver)
	}
	_, err = fmt.Fprintf(w, "receiver %s has %d bytes of code\n", receiver, len(code))
	return err
}
