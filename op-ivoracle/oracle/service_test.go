package oracle

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/flags"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	prev := ReceiverAddress
	t.Cleanup(func() { ReceiverAddress = prev })
	ReceiverAddress = testReceiver.Hex()

	var stdout bytes.Buffer
	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = Main("v0.0.0-test")
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"op-ivoracle"}, args...))
	return stdout.String(), err
}

func batchInput(t *testing.T) string {
	params := encodeOrder(t, order("ETH", big.NewInt(1695945600), big.NewInt(2000), 0))
	in := BatchInput{Requests: []BatchRequest{
		{RequestID: testRequestID, Params: params},
		{RequestID: testReceiver, Params: hexutil.Bytes{0xff}},
	}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	return string(data)
}

func TestMainAction(t *testing.T) {
	srv := newExchange(t, map[string]string{"ETH-29SEP23-2000-C": "0.54321"})
	dir := t.TempDir()
	textfile := filepath.Join(dir, "oracle.prom")

	stdout, err := runApp(t, batchInput(t), "--deribit-url", srv.URL, "--metrics.textfile", textfile, "--log.level", "debug")
	require.NoError(t, err)

	var out BatchOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Equal(t, testReceiver, out.Receiver)
	require.Equal(t, flags.DefaultL2EthRpc, out.ChainRPC)
	require.Equal(t, uint64(flags.DefaultGasLimit), out.GasLimit)
	require.Len(t, out.Results, 2)
	require.Len(t, out.Results[0].Callbacks, 3)
	require.Equal(t, []string{"54321003", "54321004", "54321005"}, out.Results[0].Callbacks[2].Payload)
	require.Equal(t, KindInvalidParameter, out.Results[1].Error)

	metrics, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(metrics), `op_ivoracle_default_requests_total{outcome="success"} 1`)
	require.Contains(t, string(metrics), `op_ivoracle_default_requests_total{outcome="InvalidParameter"} 1`)
}

func TestMainFiles(t *testing.T) {
	srv := newExchange(t, map[string]string{"ETH-29SEP23-2000-C": "0.54321"})
	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	output := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(input, []byte(batchInput(t)), 0o644))

	stdout, err := runApp(t, "", "--deribit-url", srv.URL, "--input", input, "--output", output)
	require.NoError(t, err)
	require.Empty(t, stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var out BatchOutput
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Results, 2)
}

func TestMainRejectsBadConfig(t *testing.T) {
	_, err := runApp(t, batchInput(t), "--max-concurrency", "0")
	require.ErrorContains(t, err, "invalid CLI flags")
}

func TestMainRequiresReceiver(t *testing.T) {
	prev := ReceiverAddress
	t.Cleanup(func() { ReceiverAddress = prev })

	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = func(cliCtx *cli.Context) error {
		ReceiverAddress = ""
		return Main("v0.0.0-test")(cliCtx)
	}
	app.Reader = strings.NewReader(`{"requests":[]}`)
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	require.ErrorIs(t, app.Run([]string{"op-ivoracle"}), ErrNoReceiver)
}
