package oracle

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/flags"
	oplog "github.com/mantlenetworkio/iv-oracle/op-service/log"
	opmetrics "github.com/mantlenetworkio/iv-oracle/op-service/metrics"
)

type CLIConfig struct {
	Input          string
	Output         string
	DeribitURL     string
	L2EthRpc       string
	Expiration     time.Duration
	GasLimit       uint64
	MaxConcurrency int
	RateLimit      float64
	LogConfig      oplog.CLIConfig
	MetricsConfig  opmetrics.CLIConfig
}

// Check reports every invalid field at once.
func (c *CLIConfig) Check() error {
	var result *multierror.Error
	if err := c.MetricsConfig.Check(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Input == "" {
		result = multierror.Append(result, errors.New("input is required"))
	}
	if c.Output == "" {
		result = multierror.Append(result, errors.New("output is required"))
	}
	if err := checkURL(c.DeribitURL); err != nil {
		result = multierror.Append(result, fmt.Errorf("deribit url: %w", err))
	}
	if err := checkURL(c.L2EthRpc); err != nil {
		result = multierror.Append(result, fmt.Errorf("l2 rpc: %w", err))
	}
	if c.Expiration <= 0 {
		result = multierror.Append(result, errors.New("expiration must be positive"))
	}
	if c.GasLimit == 0 {
		result = multierror.Append(result, errors.New("gas limit must be positive"))
	}
	if c.MaxConcurrency < 1 {
		result = multierror.Append(result, errors.New("max concurrency must be at least 1"))
	}
	if c.RateLimit < 0 {
		result = multierror.Append(result, errors.New("rate limit must not be negative"))
	}
	return result.ErrorOrNil()
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

func NewConfig(ctx *cli.Context) *CLIConfig {
	return &CLIConfig{
		Input:          ctx.String(flags.InputFlag.Name),
		Output:         ctx.String(flags.OutputFlag.Name),
		DeribitURL:     ctx.String(flags.DeribitURLFlag.Name),
		L2EthRpc:       ctx.String(flags.L2EthRpcFlag.Name),
		Expiration:     ctx.Duration(flags.ExpirationFlag.Name),
		GasLimit:       ctx.Uint64(flags.GasLimitFlag.Name),
		MaxConcurrency: ctx.Int(flags.MaxConcurrencyFlag.Name),
		RateLimit:      ctx.Float64(flags.RateLimitFlag.Name),
		LogConfig:      oplog.ReadCLIConfig(ctx),
		MetricsConfig:  opmetrics.ReadCLIConfig(ctx),
	}
}
