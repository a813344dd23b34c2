package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/bindings"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/deribit"
	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/metrics"
)

// Fetcher returns the order book of one instrument.
type Fetcher interface {
	OrderBook(ctx context.Context, instrument string) (*deribit.OrderBook, error)
}

// Handler turns one oracle request into the callbacks for the receiver.
// It holds no per-request state and is safe for concurrent use.
type Handler struct {
	log      log.Logger
	metrics  metrics.Metricer
	fetcher  Fetcher
	receiver common.Address
}

func NewHandler(logger log.Logger, m metrics.Metricer, fetcher Fetcher, receiver common.Address) *Handler {
	return &Handler{
		log:      logger,
		metrics:  m,
		fetcher:  fetcher,
		receiver: receiver,
	}
}

// Handle decodes params, fetches the mark IV of the instrument and builds the callbacks.
// It returns exactly CallbacksPerRequest callbacks, or nil and an error.
func (h *Handler) Handle(ctx context.Context, requestID common.Address, params bindings.Order) ([]Callback, error) {
	l := h.log.New("request_id", requestID)
	cbs, err := h.handle(ctx, l, requestID, params)
	if err != nil {
		kind := ErrorKind(err)
		l.Warn("Request failed", "kind", kind, "err", err)
		h.metrics.RecordRequest(kind)
		return nil, err
	}
	h.metrics.RecordRequest("success")
	h.metrics.RecordCallbacks(len(cbs))
	return cbs, nil
}

func (h *Handler) handle(ctx context.Context, l log.Logger, requestID common.Address, params bindings.Order) ([]Callback, error) {
	req, err := Decode(params)
	if err != nil {
		return nil, err
	}
	symbol := Symbol(req)
	l.Debug("Built instrument", "symbol", symbol, "expiry", req.Expiry, "strike", req.Strike, "option", req.Option)

	start := time.Now()
	book, err := h.fetcher.OrderBook(ctx, symbol)
	h.metrics.RecordFetch(time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	h.metrics.RecordMarkIV(book.MarkIV)

	x, err := RescaleIV(book.MarkIV)
	if err != nil {
		return nil, err
	}
	cbs, err := BuildCallbacks(h.receiver, requestID, x)
	if err != nil {
		return nil, err
	}
	l.Info("Prepared callbacks", "symbol", symbol, "mark_iv", book.MarkIV, "mark_price", book.MarkPrice,
		"underlying_price", book.UnderlyingPrice, "value", x, "callbacks", len(cbs))
	return cbs, nil
}
