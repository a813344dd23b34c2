package deribit

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/ethereum/go-ethereum/log"
)

const (
	DefaultBaseURL   = "https://www.deribit.com"
	OrderBookHandler = "/api/v2/public/get_order_book"
)

var (
	ErrStatus          = errors.New("unexpected http status")
	ErrMalformedBody   = errors.New("malformed response body")
	ErrMissingResult   = errors.New("response has no result object")
	ErrMissingMarkIV   = errors.New("result.mark_iv is missing or not a number")
	ErrEmptyInstrument = errors.New("empty instrument name")
)

// Client reads the public order book of a single instrument.
// It performs exactly one GET per call and leaves retries and timeouts to the caller's context.
type Client struct {
	log    log.Logger
	client *resty.Client
}

func NewClient(logger log.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "op-ivoracle").
		SetRetryCount(0)
	return &Client{
		log:    logger,
		client: client,
	}
}

// OrderBook fetches get_order_book?instrument_name=<instrument> and returns the decoded result.
func (c *Client) OrderBook(ctx context.Context, instrument string) (*OrderBook, error) {
	if instrument == "" {
		return nil, ErrEmptyInstrument
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("instrument_name", instrument).
		Get(OrderBookHandler)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order book of %s: %w", instrument, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %d %s for %s", ErrStatus, resp.StatusCode(), errorMessage(resp.Body()), instrument)
	}

	book, err := ParseOrderBook(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse order book of %s: %w", instrument, err)
	}
	c.log.Debug("Fetched order book", "instrument", instrument, "mark_iv", book.MarkIV, "duration", resp.Time())
	return book, nil
}

// errorMessage pulls the JSON-RPC error message deribit attaches to 4xx answers, if there is one.
func errorMessage(body []byte) string {
	msg := gjson.GetBytes(body, "error.message")
	if msg.Type != gjson.String {
		return ""
	}
	return msg.Str
}
