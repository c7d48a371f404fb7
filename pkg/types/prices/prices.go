package prices

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrUnsupportedTicker is returned by a Fetcher that has no provider-side
// identifier for the requested ticker. Callers should not retry it.
var ErrUnsupportedTicker = errors.New("ticker not supported by provider")

const (
	SourceYahoo     = "yahoo"
	SourceCoinGecko = "coingecko"
	SourceSimulated = "simulated"
)

// Quote is a point-in-time price for a single ticker.
type Quote struct {
	Ticker         string    `json:"ticker"`
	CurrentPrice   float64   `json:"current_price"`
	PriceChange24h float64   `json:"price_change_24h"`
	LastUpdated    time.Time `json:"last_updated"`
	Source         string    `json:"source"`
	IsSimulated    bool      `json:"is_simulated"`
}

// Series is a chronological daily price curve. Dates and Values always have
// the same length.
type Series struct {
	Dates       []string  `json:"dates"`
	Values      []float64 `json:"values"`
	IsSimulated bool      `json:"is_simulated"`
}

// Fetcher retrieves live and historical prices from an external provider.
type Fetcher interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
	Daily(ctx context.Context, ticker string, days int) (*Series, error)
}
