package flags

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	opservice "github.com/mantlenetworkio/iv-oracle/op-service"
	oplog "github.com/mantlenetworkio/iv-oracle/op-service/log"
	opmetrics "github.com/mantlenetworkio/iv-oracle/op-service/metrics"
)

const EnvVarPrefix = "OP_IVORACLE"

const (
	DefaultDeribitURL = "https://www.deribit.com"
	DefaultL2EthRpc   = "https://goerli-rollup.arbitrum.io/rpc"
	DefaultGasLimit   = 5_500_000
)

func prefixEnvVars(name string) []string {
	return opservice.PrefixEnvVar(EnvVarPrefix, name)
}

var (
	// Optional Flags
	InputFlag = &cli.StringFlag{
		Name:    "input",
		Usage:   "Path of the JSON request batch, '-' reads stdin",
		Value:   "-",
		EnvVars: prefixEnvVars("INPUT"),
	}
	OutputFlag = &cli.StringFlag{
		Name:    "output",
		Usage:   "Path the JSON results are written to, '-' writes stdout",
		Value:   "-",
		EnvVars: prefixEnvVars("OUTPUT"),
	}
	DeribitURLFlag = &cli.StringFlag{
		Name:    "deribit-url",
		Usage:   "Base URL of the deribit public API",
		Value:   DefaultDeribitURL,
		EnvVars: prefixEnvVars("DERIBIT_URL"),
	}
	L2EthRpcFlag = &cli.StringFlag{
		Name:    "l2-eth-rpc",
		Usage:   "RPC URL of the L2 chain the callbacks are submitted to",
		Value:   DefaultL2EthRpc,
		EnvVars: prefixEnvVars("L2_ETH_RPC"),
	}
	ExpirationFlag = &cli.DurationFlag{
		Name:    "expiration",
		Usage:   "Wall-clock limit of one run, requests still in flight when it passes fail",
		Value:   120 * time.Second,
		EnvVars: prefixEnvVars("EXPIRATION"),
	}
	GasLimitFlag = &cli.Uint64Flag{
		Name:    "gas-limit",
		Usage:   "Gas ceiling the host applies to the callbacks of one run",
		Value:   DefaultGasLimit,
		EnvVars: prefixEnvVars("GAS_LIMIT"),
	}
	MaxConcurrencyFlag = &cli.IntFlag{
		Name:    "max-concurrency",
		Usage:   "Maximum number of requests handled at the same time",
		Value:   8,
		EnvVars: prefixEnvVars("MAX_CONCURRENCY"),
	}
	RateLimitFlag = &cli.Float64Flag{
		Name:    "rate-limit",
		Usage:   "Maximum order book requests per second to deribit, 0 disables the limit",
		Value:   20,
		EnvVars: prefixEnvVars("RATE_LIMIT"),
	}
)

// Order flags, used by the encode-request and symbol commands.
var (
	MarketFlag = &cli.StringFlag{
		Name:     "market",
		Usage:    "Underlying of the option, e.g. ETH",
		Required: true,
	}
	ExpDateFlag = &cli.StringFlag{
		Name:     "exp-date",
		Usage:    "Expiry as unix seconds, decimal or 0x hex",
		Required: true,
	}
	StrikeFlag = &cli.StringFlag{
		Name:     "strike",
		Usage:    "Integer strike price, decimal or 0x hex",
		Required: true,
	}
	OptionTypeFlag = &cli.UintFlag{
		Name:  "option-type",
		Usage: "0 for a call, 1 for a put",
	}
)

var requiredFlags = []cli.Flag{}

var optionalFlags = []cli.Flag{
	InputFlag,
	OutputFlag,
	DeribitURLFlag,
	L2EthRpcFlag,
	ExpirationFlag,
	GasLimitFlag,
	MaxConcurrencyFlag,
	RateLimitFlag,
}

var OrderFlags = []cli.Flag{
	MarketFlag,
	ExpDateFlag,
	StrikeFlag,
	OptionTypeFlag,
}

func init() {
	optionalFlags = append(optionalFlags, oplog.CLIFlags(EnvVarPrefix)...)
	optionalFlags = append(optionalFlags, opmetrics.CLIFlags(EnvVarPrefix)...)

	Flags = append(requiredFlags, optionalFlags...)
}

var Flags []cli.Flag

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
