package oracle

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/deribit"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/flags"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/metrics"
	oplog "github.com/mantlenetworkio/iv-oracle/op-service/log"
	opmetrics "github.com/mantlenetworkio/iv-oracle/op-service/metrics"
)

// Main is the entrypoint into the oracle. It reads one request batch, handles it
// and writes the results.
func Main(version string) cli.ActionFunc {
	return func(cliCtx *cli.Context) error {
		if err := flags.CheckRequired(cliCtx); err != nil {
			return err
		}
		cfg := NewConfig(cliCtx)
		if err := cfg.Check(); err != nil {
			return fmt.Errorf("invalid CLI flags: %w", err)
		}
		receiver, err := Receiver()
		if err != nil {
			return err
		}

		l := oplog.NewLogger(oplog.AppOut(cliCtx), cfg.LogConfig)
		oplog.SetGlobalLogHandler(l.Handler())
		l.Info("Initializing iv oracle", "version", version, "receiver", receiver)

		m := metrics.NewMetrics("default")
		m.RecordInfo(version)
		m.RecordUp()

		err = Run(cliCtx, l, m, cfg, receiver)
		if cfg.MetricsConfig.Enabled() {
			if merr := opmetrics.WriteTextfile(cfg.MetricsConfig.TextfilePath, m.Registry()); merr != nil {
				l.Error("Failed to write metrics textfile", "path", cfg.MetricsConfig.TextfilePath, "err", merr)
			}
		}
		return err
	}
}

// Run handles the batch read from cfg.Input and writes the results to cfg.Output.
func Run(cliCtx *cli.Context, l log.Logger, m metrics.Metricer, cfg *CLIConfig, receiver common.Address) error {
	in, closeIn, err := openInput(cliCtx, cfg.Input)
	if err != nil {
		return err
	}
	reqs, err := ReadBatch(in)
	closeIn()
	if err != nil {
		return err
	}

	client := deribit.NewClient(l.New("module", "deribit"), cfg.DeribitURL)
	fetcher := NewRateLimitedFetcher(client, cfg.RateLimit, cfg.MaxConcurrency)
	handler := NewHandler(l.New("module", "handler"), m, fetcher, receiver)
	runner := NewRunner(l, handler, cfg.Expiration, cfg.MaxConcurrency)
	results := runner.Run(cliCtx.Context, reqs)

	out, closeOut, err := openOutput(cliCtx, cfg.Output)
	if err != nil {
		return err
	}
	if err := WriteBatch(out, NewBatchOutput(receiver, cfg.L2EthRpc, cfg.GasLimit, results)); err != nil {
		_ = closeOut()
		return fmt.Errorf("failed to write results: %w", err)
	}
	return closeOut()
}

func openInput(cliCtx *cli.Context, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cliCtx.App.Reader, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(cliCtx *cli.Context, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cliCtx.App.Writer, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}
