package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/flags"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/metrics"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/oracle"
	opservice "github.com/mantlenetworkio/iv-oracle/op-service"
	oplog "github.com/mantlenetworkio/iv-oracle/op-service/log"
	"github.com/mantlenetworkio/iv-oracle/op-service/metrics/doc"
)

var (
	Version   = "v0.0.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	oplog.SetupDefaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Failed to load .env", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp().RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Version = opservice.FormatVersion(Version, GitCommit, GitDate, "")
	app.Name = "op-ivoracle"
	app.Usage = "Deribit mark IV oracle worker"
	app.Description = "Reads a batch of oracle requests, fetches the deribit mark IV of each option and prepares the receiver callbacks"
	app.Action = oracle.Main(Version)
	app.Commands = []*cli.Command{
		{
			Name:        "doc",
			Subcommands: doc.NewSubcommands(metrics.NewMetrics("default")),
		},
		{
			Name:   "encode-request",
			Usage:  "Prints the abi-encoded Order params of an option",
			Flags:  flags.OrderFlags,
			Action: EncodeRequest,
		},
		{
			Name:   "symbol",
			Usage:  "Prints the deribit instrument name of an option",
			Flags:  flags.OrderFlags,
			Action: PrintSymbol,
		},
		{
			Name:   "quote",
			Usage:  "Fetches an option's order book and prints the value and payloads the oracle would deliver",
			Flags:  append([]cli.Flag{flags.DeribitURLFlag}, flags.OrderFlags...),
			Action: Quote,
		},
		{
			Name:   "check-receiver",
			Usage:  "Checks that the linked receiver contract is deployed on the L2 chain",
			Flags:  []cli.Flag{flags.L2EthRpcFlag},
			Action: CheckReceiver,
		},
	}
	return app
}
