package deribit

import (
	"math"

	"github.com/tidwall/gjson"
)

// OrderBook holds the fields of a get_order_book result the oracle looks at.
// MarkIV is the only required one; the rest are informational and stay zero when absent.
type OrderBook struct {
	InstrumentName  string
	MarkIV          float64
	MarkPrice       float64
	UnderlyingPrice float64
	BidIV           float64
	AskIV           float64
	State           string
	Timestamp       uint64
}

// ParseOrderBook validates body and extracts result. Unknown fields are ignored and
// the informational fields are read leniently, since deribit changes their types between states.
func ParseOrderBook(body []byte) (*OrderBook, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedBody
	}
	result := gjson.GetBytes(body, "result")
	if !result.IsObject() {
		return nil, ErrMissingResult
	}
	markIV := result.Get("mark_iv")
	if markIV.Type != gjson.Number {
		return nil, ErrMissingMarkIV
	}
	iv := markIV.Float()
	if math.IsNaN(iv) || math.IsInf(iv, 0) {
		return nil, ErrMissingMarkIV
	}

	return &OrderBook{
		InstrumentName:  stringField(result, "instrument_name"),
		MarkIV:          iv,
		MarkPrice:       numberField(result, "mark_price"),
		UnderlyingPrice: numberField(result, "underlying_price"),
		BidIV:           numberField(result, "bid_iv"),
		AskIV:           numberField(result, "ask_iv"),
		State:           stringField(result, "state"),
		Timestamp:       uintField(result, "timestamp"),
	}, nil
}

func numberField(r gjson.Result, path string) float64 {
	v := r.Get(path)
	if v.Type != gjson.Number {
		return 0
	}
	return v.Float()
}

func uintField(r gjson.Result, path string) uint64 {
	v := r.Get(path)
	if v.Type != gjson.Number {
		return 0
	}
	return v.Uint()
}

func stringField(r gjson.Result, path string) string {
	v := r.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
