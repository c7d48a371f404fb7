package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/RenzoMaggi16/vestra/internal/models"
	"github.com/RenzoMaggi16/vestra/internal/portfolio"
	"github.com/RenzoMaggi16/vestra/pkg/types/cache"
	"github.com/RenzoMaggi16/vestra/pkg/types/prices"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPriceResolverConfig = errors.New("invalid price resolver config")

	// ErrInvalidAssetType is the one resolver error that propagates to
	// callers; everything else degrades to simulated data.
	ErrInvalidAssetType = errors.New("invalid asset type")
)

var (
	_ portfolio.QuoteResolver   = (*PriceResolver)(nil)
	_ portfolio.HistoryResolver = (*PriceResolver)(nil)
)

// PriceResolver serves current and historical prices with caching, one
// bounded retry against the provider, and a simulated-data fallback. It
// never fails outward for a valid asset type, so a provider outage cannot
// break portfolio viewing.
type PriceResolver struct {
	logger     *slog.Logger
	stocks     prices.Fetcher
	crypto     prices.Fetcher
	quotes     cache.Cache[string, prices.Quote]
	series     cache.Cache[string, prices.Series]
	retryDelay time.Duration
	now        func() time.Time
	rng        *rand.Rand
	rngMutex   sync.Mutex
}

type PriceResolverOption func(*PriceResolver)

func WithPriceResolverLogger(l *slog.Logger) PriceResolverOption {
	return func(r *PriceResolver) {
		r.logger = l
	}
}

func WithStockFetcher(f prices.Fetcher) PriceResolverOption {
	return func(r *PriceResolver) {
		r.stocks = f
	}
}

func WithCryptoFetcher(f prices.Fetcher) PriceResolverOption {
	return func(r *PriceResolver) {
		r.crypto = f
	}
}

func WithQuoteCache(c cache.Cache[string, prices.Quote]) PriceResolverOption {
	return func(r *PriceResolver) {
		r.quotes = c
	}
}

func WithSeriesCache(c cache.Cache[string, prices.Series]) PriceResolverOption {
	return func(r *PriceResolver) {
		r.series = c
	}
}

func WithRetryDelay(d time.Duration) PriceResolverOption {
	return func(r *PriceResolver) {
		r.retryDelay = d
	}
}

// WithRand injects the random source used for simulated data, so fallback
// output is reproducible in tests.
func WithRand(rng *rand.Rand) PriceResolverOption {
	return func(r *PriceResolver) {
		r.rng = rng
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) PriceResolverOption {
	return func(r *PriceResolver) {
		r.now = now
	}
}

func (r *PriceResolver) IsValid() error {
	switch {
	case r.logger == nil:
		return errors.Wrap(ErrInvalidPriceResolverConfig, "logger cannot be nil")
	case r.stocks == nil:
		return errors.Wrap(ErrInvalidPriceResolverConfig, "stock fetcher cannot be nil")
	case r.crypto == nil:
		return errors.Wrap(ErrInvalidPriceResolverConfig, "crypto fetcher cannot be nil")
	case r.quotes == nil:
		return errors.Wrap(ErrInvalidPriceResolverConfig, "quote cache cannot be nil")
	case r.series == nil:
		return errors.Wrap(ErrInvalidPriceResolverConfig, "series cache cannot be nil")
	default:
		return nil
	}
}

func NewPriceResolver(opts ...PriceResolverOption) (*PriceResolver, error) {
	r := &PriceResolver{
		retryDelay: time.Second,
		now:        time.Now,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.IsValid(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *PriceResolver) fetcherFor(assetType models.AssetType) prices.Fetcher {
	if assetType == models.AssetTypeCrypto {
		return r.crypto
	}
	return r.stocks
}

func quoteKey(assetType models.AssetType, ticker string) string {
	return fmt.Sprintf("%s:%s", assetType, ticker)
}

func seriesKey(assetType models.AssetType, ticker string, days int) string {
	return fmt.Sprintf("%s:%s:%d", assetType, ticker, days)
}

// ResolveQuote returns the current price for a ticker. Cache hit first
// unless forceRefresh; then provider, one retry after a fixed delay, then a
// simulated quote. Errors only for an invalid asset type.
func (r *PriceResolver) ResolveQuote(ctx context.Context, ticker string, assetType models.AssetType, forceRefresh bool) (prices.Quote, error) {
	if !assetType.Valid() {
		return prices.Quote{}, errors.Wrap(ErrInvalidAssetType, string(assetType))
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	key := quoteKey(assetType, ticker)

	if !forceRefresh {
		if quote, ok := r.quotes.Get(key); ok {
			return quote, nil
		}
	}

	fetcher := r.fetcherFor(assetType)
	quote, err := fetchWithRetry(ctx, r.retryDelay, func() (*prices.Quote, error) {
		return fetcher.Quote(ctx, ticker)
	})
	if err != nil {
		r.logger.Warn("quote fetch failed, falling back to simulated data",
			"ticker", ticker,
			"asset_type", assetType,
			"error", err,
		)
		return r.simulateQuote(ticker), nil
	}

	r.quotes.Set(key, *quote)
	return *quote, nil
}

// ResolveHistory returns a daily price series spanning `days` back from
// now. Same degradation rules as ResolveQuote.
func (r *PriceResolver) ResolveHistory(ctx context.Context, ticker string, assetType models.AssetType, days int) (prices.Series, error) {
	if !assetType.Valid() {
		return prices.Series{}, errors.Wrap(ErrInvalidAssetType, string(assetType))
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	key := seriesKey(assetType, ticker, days)

	if series, ok := r.series.Get(key); ok {
		return series, nil
	}

	fetcher := r.fetcherFor(assetType)
	series, err := fetchWithRetry(ctx, r.retryDelay, func() (*prices.Series, error) {
		return fetcher.Daily(ctx, ticker, days)
	})
	if err != nil {
		r.logger.Warn("history fetch failed, falling back to simulated data",
			"ticker", ticker,
			"asset_type", assetType,
			"days", days,
			"error", err,
		)
		return r.SimulateHistory(days), nil
	}

	r.series.Set(key, *series)
	return *series, nil
}

// fetchWithRetry runs one attempt and, for retryable failures, a second one
// after a fixed delay. Unsupported tickers and cancelled contexts skip the
// retry.
func fetchWithRetry[T any](ctx context.Context, delay time.Duration, fetch func() (*T, error)) (*T, error) {
	result, err := fetch()
	if err == nil {
		return result, nil
	}
	if errors.Is(err, prices.ErrUnsupportedTicker) {
		return nil, err
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, err
	case <-timer.C:
	}

	return fetch()
}

func (r *PriceResolver) uniform(min, max float64) float64 {
	r.rngMutex.Lock()
	defer r.rngMutex.Unlock()
	return min + r.rng.Float64()*(max-min)
}

func (r *PriceResolver) simulateQuote(ticker string) prices.Quote {
	return prices.Quote{
		Ticker:         ticker,
		CurrentPrice:   r.uniform(10, 1000),
		PriceChange24h: r.uniform(-5, 5),
		LastUpdated:    r.now(),
		Source:         prices.SourceSimulated,
		IsSimulated:    true,
	}
}

// SimulateHistory generates a plausible-looking price curve: a random base
// with per-day volatility and trend compounding day over day, days+1 points
// in chronological order.
func (r *PriceResolver) SimulateHistory(days int) prices.Series {
	base := r.uniform(50, 500)
	volatility := r.uniform(0.005, 0.03)
	trend := r.uniform(-0.01, 0.01)

	now := r.now()
	series := prices.Series{
		Dates:       make([]string, 0, days+1),
		Values:      make([]float64, 0, days+1),
		IsSimulated: true,
	}

	price := base
	for i := days; i >= 0; i-- {
		price = price * (1 + trend + r.uniform(-volatility, volatility))
		series.Dates = append(series.Dates, now.AddDate(0, 0, -i).Format("2006-01-02"))
		series.Values = append(series.Values, math.Round(price*100)/100)
	}

	return series
}
