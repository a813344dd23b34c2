package oracle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/deribit"
)

// RateLimitedFetcher waits on the limiter before every fetch, keeping a run under the exchange's public rate limit.
type RateLimitedFetcher struct {
	Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher allows perSecond fetches a second with the given burst.
// A perSecond of zero or less returns f unchanged.
func NewRateLimitedFetcher(f Fetcher, perSecond float64, burst int) Fetcher {
	if perSecond <= 0 {
		return f
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedFetcher{
		Fetcher: f,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (r *RateLimitedFetcher) OrderBook(ctx context.Context, instrument string) (*deribit.OrderBook, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait for %s: %w", instrument, err)
	}
	return r.Fetcher.OrderBook(ctx, instrument)
}
