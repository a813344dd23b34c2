package cliutil

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

var (
	ErrFlagBlank    = errors.New("cannot parse blank uint256 flag")
	ErrFlagOverflow = errors.New("uint256 flag value does not fit in 256 bits")
)

// U256Flag reads a decimal or 0x-prefixed hex flag value as an unsigned 256-bit integer.
func U256Flag(cliCtx *cli.Context, flagName string) (*uint256.Int, error) {
	return ParseU256(cliCtx.String(flagName))
}

func ParseU256(intStr string) (*uint256.Int, error) {
	if intStr == "" {
		return nil, ErrFlagBlank
	}
	base := 10
	if strings.HasPrefix(intStr, "0x") {
		base = 16
		intStr = intStr[2:]
	}
	b, ok := new(big.Int).SetString(intStr, base)
	if !ok || b.Sign() < 0 {
		return nil, fmt.Errorf("error parsing uint256 flag '%s'", intStr)
	}
	out, overflow := uint256.FromBig(b)
	if overflow {
		return nil, ErrFlagOverflow
	}
	return out, nil
}
