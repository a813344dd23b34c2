package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"

	"github.com/mantlenetworkio/iv-oracle/op-ivoracle/bindings"
)

// Request is one oracle request as delivered by the host: the request id and the abi-encoded Order.
type Request struct {
	RequestID common.Address
	Params    []byte
}

// Result holds either the callbacks of a request or the reason it failed.
type Result struct {
	RequestID common.Address
	Callbacks []Callback
	Err       error
}

// Runner processes the requests of one host run.
type Runner struct {
	log            log.Logger
	handler        *Handler
	expiration     time.Duration
	maxConcurrency int
}

func NewRunner(logger log.Logger, handler *Handler, expiration time.Duration, maxConcurrency int) *Runner {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Runner{
		log:            logger,
		handler:        handler,
		expiration:     expiration,
		maxConcurrency: maxConcurrency,
	}
}

// Run handles every request and returns the results in request order.
// A failing request never affects the others. The expiration bounds the whole run:
// once it passes, or ctx is canceled, the run is failed and no request keeps its callbacks.
func (r *Runner) Run(ctx context.Context, reqs []Request) []Result {
	if r.expiration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.expiration)
		defer cancel()
	}

	results := make([]Result, len(reqs))
	var g errgroup.Group
	g.SetLimit(r.maxConcurrency)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = r.runOne(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		r.expire(results, err)
	}

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.log.Info("Run complete", "requests", len(reqs), "failed", failed)
	return results
}

// expire fails every request that had not failed already and drops all callbacks.
// Requests rejected for their parameters keep that error.
func (r *Runner) expire(results []Result, cause error) {
	var dropped int
	for i := range results {
		if results[i].Err == nil {
			results[i].Err = fmt.Errorf("%w: run expired: %w", ErrFetch, cause)
			dropped += len(results[i].Callbacks)
		}
		results[i].Callbacks = nil
	}
	r.log.Warn("Run expired, dropping all callbacks", "err", cause, "dropped", dropped)
}

func (r *Runner) runOne(ctx context.Context, req Request) Result {
	res := Result{RequestID: req.RequestID}
	order, err := bindings.DecodeOrder(req.Params)
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		r.log.Warn("Undecodable request params", "request_id", req.RequestID, "err", err)
		r.handler.metrics.RecordRequest(ErrorKind(res.Err))
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("%w: run expired before the request started: %w", ErrFetch, err)
		r.handler.metrics.RecordRequest(ErrorKind(res.Err))
		return res
	}
	res.Callbacks, res.Err = r.handler.Handle(ctx, req.RequestID, order)
	return res
}
