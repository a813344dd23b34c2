package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-ethereum/log"

	opservice "github.com/mantlenetworkio/iv-oracle/op-service"
)

const (
	LevelFlagName  = "log.level"
	FormatFlagName = "log.format"
	ColorFlagName  = "log.color"
)

// FormatType defines a type of log format.
// Supported formats: 'text', 'terminal', 'logfmt', 'json'
type FormatType string

const (
	FormatText     FormatType = "text"
	FormatTerminal FormatType = "terminal"
	FormatLogFmt   FormatType = "logfmt"
	FormatJSON     FormatType = "json"
)

func (ft FormatType) String() string {
	return string(ft)
}

// Set implements cli.Generic
func (ft *FormatType) Set(value string) error {
	switch FormatType(value) {
	case FormatText, FormatTerminal, FormatLogFmt, FormatJSON:
		*ft = FormatType(value)
		return nil
	default:
		return fmt.Errorf("unrecognized log-format: %q", value)
	}
}

// LevelFlagValue is a cli.Generic wrapping a slog level, parsed the geth way.
type LevelFlagValue slog.Level

func (fv *LevelFlagValue) String() string {
	return log.LevelAlignedString(slog.Level(*fv))
}

func (fv *LevelFlagValue) Set(value string) error {
	v, err := LevelFromString(value)
	if err != nil {
		return err
	}
	*fv = LevelFlagValue(v)
	return nil
}

func (fv LevelFlagValue) Level() slog.Level {
	return slog.Level(fv)
}

// LevelFromString returns the level named by lvlString, ignoring case.
// Unknown names return LevelDebug together with an error.
func LevelFromString(lvlString string) (slog.Level, error) {
	switch strings.ToLower(lvlString) {
	case "trace", "trce":
		return log.LevelTrace, nil
	case "debug", "dbug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error", "eror":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	default:
		return log.LevelDebug, fmt.Errorf("unknown level: %v", lvlString)
	}
}

func CLIFlags(envPrefix string) []cli.Flag {
	return CLIFlagsWithCategory(envPrefix, "")
}

func CLIFlagsWithCategory(envPrefix string, category string) []cli.Flag {
	return []cli.Flag{
		&cli.GenericFlag{
			Name:     LevelFlagName,
			Usage:    "The lowest log level that will be output",
			Value:    NewLevelFlagValue(log.LevelInfo),
			EnvVars:  opservice.PrefixEnvVar(envPrefix, "LOG_LEVEL"),
			Category: category,
		},
		&cli.GenericFlag{
			Name:     FormatFlagName,
			Usage:    "Format the log output. Supported formats: 'text', 'terminal', 'logfmt', 'json'",
			Value:    NewFormatFlagValue(FormatText),
			EnvVars:  opservice.PrefixEnvVar(envPrefix, "LOG_FORMAT"),
			Category: category,
		},
		&cli.BoolFlag{
			Name:     ColorFlagName,
			Usage:    "Color the log output if in terminal mode",
			EnvVars:  opservice.PrefixEnvVar(envPrefix, "LOG_COLOR"),
			Category: category,
		},
	}
}

func NewLevelFlagValue(lvl slog.Level) *LevelFlagValue {
	return (*LevelFlagValue)(&lvl)
}

func NewFormatFlagValue(fmtType FormatType) *FormatType {
	return &fmtType
}

type CLIConfig struct {
	Level  slog.Level
	Color  bool
	Format FormatType
}

// DefaultCLIConfig creates a default log configuration.
// Color defaults to true if terminal is detected.
func DefaultCLIConfig() CLIConfig {
	return CLIConfig{
		Level:  log.LevelInfo,
		Format: FormatText,
		Color:  isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func ReadCLIConfig(ctx *cli.Context) CLIConfig {
	cfg := DefaultCLIConfig()
	cfg.Level = ctx.Generic(LevelFlagName).(*LevelFlagValue).Level()
	cfg.Format = *ctx.Generic(FormatFlagName).(*FormatType)
	if ctx.IsSet(ColorFlagName) {
		cfg.Color = ctx.Bool(ColorFlagName)
	}
	return cfg
}

// NewLogger creates a new configured logger.
// The log handler of the logger is a LvlSetter, i.e. the log level can be changed as needed.
func NewLogger(wr io.Writer, cfg CLIConfig) log.Logger {
	return log.NewLogger(NewLogHandler(wr, cfg))
}

func NewLogHandler(wr io.Writer, cfg CLIConfig) slog.Handler {
	switch cfg.Format {
	case FormatJSON:
		return JSONMsHandlerWithLevel(wr, cfg.Level)
	case FormatLogFmt:
		return LogfmtMsHandlerWithLevel(wr, cfg.Level)
	case FormatTerminal:
		return log.NewTerminalHandlerWithLevel(wr, cfg.Level, cfg.Color)
	default:
		return log.NewTerminalHandlerWithLevel(wr, cfg.Level, false)
	}
}

// AppOut returns the writer logs of the app go to. Stdout is left to command output.
func AppOut(ctx *cli.Context) io.Writer {
	if ctx == nil || ctx.App == nil || ctx.App.ErrWriter == nil {
		return os.Stderr
	}
	return ctx.App.ErrWriter
}

// SetGlobalLogHandler sets the log handles as the handler of the global default logger.
func SetGlobalLogHandler(h slog.Handler) {
	log.SetDefault(log.NewLogger(h))
}

// SetupDefaults installs a terminal logger on stderr until the CLI config is read.
func SetupDefaults() {
	SetGlobalLogHandler(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, false))
}
