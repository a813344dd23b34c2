package deribit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/log"

	"github.com/mantlenetworkio/iv-oracle/op-service/testlog"
)

const orderBookETH = `{
	"jsonrpc": "2.0",
	"result": {
		"underlying_price": 1650.12,
		"underlying_index": "ETH-29SEP23",
		"timestamp": 1695800000000,
		"stats": {"volume": 12.0},
		"state": "open",
		"mark_price": 0.0123,
		"mark_iv": 54.321,
		"instrument_name": "ETH-29SEP23-2000-C",
		"greeks": {"delta": 0.1},
		"estimated_delivery_price": "expired",
		"bids": [],
		"bid_iv": 0,
		"asks": [[0.013, 10]],
		"ask_iv": 60.1
	},
	"usIn": 1, "usOut": 2, "usDiff": 1, "testnet": false
}`

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != OrderBookHandler {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.URL.Query().Get("instrument_name") {
		case "ETH-29SEP23-2000-C":
			_, _ = w.Write([]byte(orderBookETH))
		case "XXX-01JAN24-100-C":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","error":{"message":"Invalid params","code":-32602}}`))
		case "MALFORMED-01JAN24-100-C":
			_, _ = w.Write([]byte(`{"result": {"mark_iv": 1`))
		case "NORESULT-01JAN24-100-C":
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0"}`))
		case "NOIV-01JAN24-100-C":
			_, _ = w.Write([]byte(`{"result":{"instrument_name":"NOIV-01JAN24-100-C"}}`))
		case "STRIV-01JAN24-100-C":
			_, _ = w.Write([]byte(`{"result":{"mark_iv":"54.3"}}`))
		case "SLOW-01JAN24-100-C":
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOrderBook(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client := NewClient(testlog.Logger(t, log.LevelDebug), srv.URL)

	book, err := client.OrderBook(context.Background(), "ETH-29SEP23-2000-C")
	require.NoError(t, err)
	require.Equal(t, "ETH-29SEP23-2000-C", book.InstrumentName)
	require.Equal(t, 54.321, book.MarkIV)
	require.Equal(t, 0.0123, book.MarkPrice)
	require.Equal(t, 1650.12, book.UnderlyingPrice)
	require.Equal(t, 60.1, book.AskIV)
	require.Equal(t, "open", book.State)
	require.Equal(t, uint64(1695800000000), book.Timestamp)
	require.Equal(t, int32(1), hits.Load())
}

func TestOrderBookErrors(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client := NewClient(testlog.Logger(t, log.LevelDebug), srv.URL)

	tests := []struct {
		instrument string
		err        error
	}{
		{instrument: "XXX-01JAN24-100-C", err: ErrStatus},
		{instrument: "UNKNOWN-01JAN24-100-C", err: ErrStatus},
		{instrument: "MALFORMED-01JAN24-100-C", err: ErrMalformedBody},
		{instrument: "NORESULT-01JAN24-100-C", err: ErrMissingResult},
		{instrument: "NOIV-01JAN24-100-C", err: ErrMissingMarkIV},
		{instrument: "STRIV-01JAN24-100-C", err: ErrMissingMarkIV},
		{instrument: "", err: ErrEmptyInstrument},
	}
	for _, tt := range tests {
		t.Run(tt.instrument, func(t *testing.T) {
			book, err := client.OrderBook(context.Background(), tt.instrument)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, book)
		})
	}
}

func TestOrderBookStatusMessage(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client := NewClient(testlog.Logger(t, log.LevelDebug), srv.URL)

	_, err := client.OrderBook(context.Background(), "XXX-01JAN24-100-C")
	require.ErrorContains(t, err, "Invalid params")
	require.ErrorContains(t, err, "400")
}

func TestOrderBookContextDeadline(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client := NewClient(testlog.Logger(t, log.LevelDebug), srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.OrderBook(ctx, "SLOW-01JAN24-100-C")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, int32(1), hits.Load())
}

func TestParseOrderBookLenientFields(t *testing.T) {
	book, err := ParseOrderBook([]byte(`{"result":{"mark_iv":0,"mark_price":null,"timestamp":"soon","bid_iv":[]}}`))
	require.NoError(t, err)
	require.Equal(t, 0.0, book.MarkIV)
	require.Equal(t, 0.0, book.MarkPrice)
	require.Equal(t, uint64(0), book.Timestamp)
	require.Equal(t, 0.0, book.BidIV)

	_, err = ParseOrderBook([]byte(`{"result":[1,2]}`))
	require.ErrorIs(t, err, ErrMissingResult)

	_, err = ParseOrderBook([]byte(``))
	require.ErrorIs(t, err, ErrMalformedBody)
}
