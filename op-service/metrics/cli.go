package metrics

import (
	"errors"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	opservice "github.com/mantlenetworkio/iv-oracle/op-service"
)

const TextfileFlagName = "metrics.textfile"

// ErrTextfileExtension is returned when the textfile target would not be picked up
// by the node-exporter textfile collector.
var ErrTextfileExtension = errors.New("metrics textfile must end in .prom")

func CLIFlags(envPrefix string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    TextfileFlagName,
			Usage:   "Write the metrics of the run to this file (node-exporter textfile collector format). Disabled if empty.",
			EnvVars: opservice.PrefixEnvVar(envPrefix, "METRICS_TEXTFILE"),
		},
	}
}

type CLIConfig struct {
	TextfilePath string
}

func (m CLIConfig) Enabled() bool {
	return m.TextfilePath != ""
}

func (m CLIConfig) Check() error {
	if !m.Enabled() {
		return nil
	}
	if filepath.Ext(m.TextfilePath) != ".prom" {
		return ErrTextfileExtension
	}
	return nil
}

func ReadCLIConfig(ctx *cli.Context) CLIConfig {
	return CLIConfig{
		TextfilePath: ctx.String(TextfileFlagName),
	}
}

// WriteTextfile atomically writes everything gathered from g to path.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
