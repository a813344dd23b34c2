package oracle

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BatchInput is the request batch the host hands to one run.
type BatchInput struct {
	Requests []BatchRequest `json:"requests"`
}

type BatchRequest struct {
	RequestID common.Address `json:"request_id"`
	Params    hexutil.Bytes  `json:"params"`
}

// BatchOutput is what a run hands back to the host.
type BatchOutput struct {
	Receiver common.Address `json:"receiver"`
	ChainRPC string         `json:"chain_rpc"`
	GasLimit uint64         `json:"gas_limit"`
	Results  []BatchResult  `json:"results"`
}

// BatchResult carries either callbacks or an error kind, never both.
type BatchResult struct {
	RequestID common.Address  `json:"request_id"`
	Callbacks []BatchCallback `json:"callbacks,omitempty"`
	Error     string          `json:"error,omitempty"`
	Detail    string          `json:"detail,omitempty"`
}

type BatchCallback struct {
	To      common.Address `json:"to"`
	Index   uint64         `json:"index"`
	Payload []string       `json:"payload"`
	Data    hexutil.Bytes  `json:"data"`
}

// ReadBatch decodes a BatchInput from r. Fields the batch does not define are ignored.
func ReadBatch(r io.Reader) ([]Request, error) {
	var in BatchInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode request batch: %w", err)
	}
	reqs := make([]Request, len(in.Requests))
	for i, req := range in.Requests {
		reqs[i] = Request{RequestID: req.RequestID, Params: req.Params}
	}
	return reqs, nil
}

// NewBatchOutput renders results, encoding the calldata of every callback.
// A result whose calldata cannot be encoded is reported as failed.
func NewBatchOutput(receiver common.Address, chainRPC string, gasLimit uint64, results []Result) BatchOutput {
	out := BatchOutput{
		Receiver: receiver,
		ChainRPC: chainRPC,
		GasLimit: gasLimit,
		Results:  make([]BatchResult, len(results)),
	}
	for i, res := range results {
		out.Results[i] = newBatchResult(res)
	}
	return out
}

func newBatchResult(res Result) BatchResult {
	br := BatchResult{RequestID: res.RequestID}
	if res.Err != nil {
		br.Error = ErrorKind(res.Err)
		br.Detail = res.Err.Error()
		return br
	}
	cbs := make([]BatchCallback, 0, len(res.Callbacks))
	for _, cb := range res.Callbacks {
		data, err := cb.Calldata()
		if err != nil {
			br.Error = KindUnknown
			br.Detail = err.Error()
			return br
		}
		payload := make([]string, len(cb.Payload))
		for j, v := range cb.Payload {
			payload[j] = v.Dec()
		}
		cbs = append(cbs, BatchCallback{
			To:      cb.To,
			Index:   cb.Index,
			Payload: payload,
			Data:    data,
		})
	}
	br.Callbacks = cbs
	return br
}

// WriteBatch writes out as indented JSON.
func WriteBatch(w io.Writer, out BatchOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
