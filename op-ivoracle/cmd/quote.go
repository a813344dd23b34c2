package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/deribit"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/flags"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/oracle"
	oplog "github.com/mantlenetworkio/iv-oracle/op-service/log"
)

// Quote fetches the order book of one option and prints what the oracle would deliver for it.
func Quote(cliCtx *cli.Context) error {
	order, err := orderFromFlags(cliCtx)
	if err != nil {
		return err
	}
	req, err := oracle.Decode(order)
	if err != nil {
		return err
	}
	symbol := oracle.Symbol(req)

	l := oplog.NewLogger(oplog.AppOut(cliCtx), oplog.ReadCLIConfig(cliCtx))
	client := deribit.NewClient(l, cliCtx.String(flags.DeribitURLFlag.Name))
	book, err := client.OrderBook(cliCtx.Context, symbol)
	if err != nil {
		return fmt.Errorf("%w: %w", oracle.ErrFetch, err)
	}
	x, err := oracle.RescaleIV(book.MarkIV)
	if err != nil {
		return err
	}
	cbs, err := oracle.BuildCallbacks(common.Address{}, common.Address{}, x)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cliCtx.App.Writer)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.Append([]string{"instrument", symbol})
	table.Append([]string{"state", book.State})
	table.Append([]string{"mark_iv", formatFloat(book.MarkIV)})
	table.Append([]string{"mark_price", formatFloat(book.MarkPrice)})
	table.Append([]string{"underlying_price", formatFloat(book.UnderlyingPrice)})
	table.Append([]string{"bid_iv", formatFloat(book.BidIV)})
	table.Append([]string{"ask_iv", formatFloat(book.AskIV)})
	table.Append([]string{"rescaled", x.Dec()})
	for _, cb := range cbs {
		words := make([]string, len(cb.Payload))
		for i, v := range cb.Payload {
			words[i] = v.Dec()
		}
		table.Append([]string{fmt.Sprintf("payload[%d]", cb.Index), strings.Join(words, ", ")})
	}
	table.Render()
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
