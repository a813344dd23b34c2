package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-ethereum/log"
)

func TestJSONHandlerNumbers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, CLIConfig{Level: log.LevelDebug, Format: FormatJSON})

	var nilU256 *uint256.Int
	big256 := new(big.Int).Lsh(big.NewInt(1), 200)
	logger.Info("Prepared callbacks",
		"value", uint256.NewInt(54321000),
		"strike", big256,
		"iv", decimal.RequireFromString("0.54321"),
		"missing", nilU256)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "Prepared callbacks", rec["msg"])
	require.Equal(t, "info", rec["lvl"])
	require.Contains(t, rec, "t")
	require.Equal(t, "54321000", rec["value"])
	require.Equal(t, big256.String(), rec["strike"])
	require.Equal(t, "0.54321", rec["iv"])
	require.Equal(t, "<nil>", rec["missing"])
}

func TestLogfmtHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, CLIConfig{Level: log.LevelInfo, Format: FormatLogFmt})
	logger.Debug("hidden")
	logger.Warn("Request failed", "kind", "FetchError")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "lvl=warn")
	require.Contains(t, out, "kind=FetchError")
	require.True(t, strings.HasPrefix(out, "t="))
}

func TestFormatType(t *testing.T) {
	var ft FormatType
	for _, v := range []string{"text", "terminal", "logfmt", "json"} {
		require.NoError(t, ft.Set(v))
		require.Equal(t, v, ft.String())
	}
	require.Error(t, ft.Set("yaml"))
}

func TestLevelFlagValue(t *testing.T) {
	lvl := NewLevelFlagValue(log.LevelInfo)
	require.NoError(t, lvl.Set("DEBUG"))
	require.Equal(t, slog.LevelDebug, lvl.Level())
	require.NoError(t, lvl.Set("crit"))
	require.Equal(t, log.LevelCrit, lvl.Level())
	require.Error(t, lvl.Set("loud"))
	require.Equal(t, log.LevelCrit, lvl.Level())
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in  string
		lvl slog.Level
	}{
		{in: "trace", lvl: log.LevelTrace},
		{in: "TRCE", lvl: log.LevelTrace},
		{in: "debug", lvl: log.LevelDebug},
		{in: "dbug", lvl: log.LevelDebug},
		{in: "Info", lvl: log.LevelInfo},
		{in: "warn", lvl: log.LevelWarn},
		{in: "error", lvl: log.LevelError},
		{in: "eror", lvl: log.LevelError},
		{in: "CRIT", lvl: log.LevelCrit},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lvl, err := LevelFromString(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.lvl, lvl)
		})
	}

	lvl, err := LevelFromString("verbose")
	require.ErrorContains(t, err, "unknown level")
	require.Equal(t, log.LevelDebug, lvl)
}

func TestReadCLIConfigLevel(t *testing.T) {
	app := cli.NewApp()
	app.Flags = CLIFlags("OP_IVORACLE")
	var cfg CLIConfig
	app.Action = func(ctx *cli.Context) error {
		cfg = ReadCLIConfig(ctx)
		return nil
	}
	require.NoError(t, app.Run([]string{"test", "--log.level", "crit", "--log.format", "json"}))
	require.Equal(t, log.LevelCrit, cfg.Level)
	require.Equal(t, FormatJSON, cfg.Format)

	require.Error(t, app.Run([]string{"test", "--log.level", "loud"}))
}
