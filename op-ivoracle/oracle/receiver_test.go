package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseReceiver(t *testing.T) {
	addr, err := ParseReceiver("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	require.NoError(t, err)
	require.Equal(t, testReceiver, addr)

	_, err = ParseReceiver("")
	require.ErrorIs(t, err, ErrNoReceiver)

	for _, bad := range []string{"0x1234", "not an address", "0x0000000000000000000000000000000000000000"} {
		_, err = ParseReceiver(bad)
		require.Error(t, err, bad)
	}
}

func TestReceiverUnlinked(t *testing.T) {
	prev := ReceiverAddress
	t.Cleanup(func() { ReceiverAddress = prev })

	ReceiverAddress = ""
	_, err := Receiver()
	require.ErrorIs(t, err, ErrNoReceiver)

	ReceiverAddress = testReceiver.Hex()
	addr, err := Receiver()
	require.NoError(t, err)
	require.Equal(t, testReceiver, addr)
}
