package log

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	elog "github.com/ethereum/go-ethereum/log"
)

const (
	timeFormatMs                 = "2006-01-02T15:04:05.000-0700"
	levelMaxVerbosity slog.Level = math.MinInt
)

type leveler struct{ minLevel slog.Level }

func (l *leveler) Level() slog.Level {
	return l.minLevel
}

func JSONMsHandler(wr io.Writer) slog.Handler {
	return JSONMsHandlerWithLevel(wr, levelMaxVerbosity)
}

func JSONMsHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceJSONMs,
		Level:       &leveler{level},
	})
}

func LogfmtMsHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceLogfmtMs,
		Level:       &leveler{level},
	})
}

func replaceLogfmtMs(_ []string, attr slog.Attr) slog.Attr {
	return replaceMs(attr, true)
}

func replaceJSONMs(_ []string, attr slog.Attr) slog.Attr {
	return replaceMs(attr, false)
}

// replaceMs renames the time and level keys to the short geth forms and
// renders the numeric types used by the oracle as plain decimal strings,
// so that 256-bit values never end up in scientific notation.
func replaceMs(attr slog.Attr, logfmt bool) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			if logfmt {
				return slog.String("t", attr.Value.Time().Format(timeFormatMs))
			}
			return slog.Attr{Key: "t", Value: attr.Value}
		}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.Any("lvl", elog.LevelString(l))
		}
	}

	switch v := attr.Value.Any().(type) {
	case time.Time:
		if logfmt {
			attr = slog.String(attr.Key, v.Format(timeFormatMs))
		}
	case *big.Int:
		attr.Value = slog.StringValue(bigString(v))
	case *uint256.Int:
		if v == nil {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.Dec())
		}
	case decimal.Decimal:
		attr.Value = slog.StringValue(v.String())
	case fmt.Stringer:
		if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
			attr.Value = slog.StringValue("<nil>")
		} else {
			attr.Value = slog.StringValue(v.String())
		}
	}
	return attr
}

func bigString(v *big.Int) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
