package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/RenzoMaggi16/vestra/internal/models"
	"github.com/RenzoMaggi16/vestra/pkg/types/prices"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoteResolver struct {
	quotes map[string]prices.Quote
	err    error
	calls  int
}

func (f *fakeQuoteResolver) ResolveQuote(_ context.Context, ticker string, _ models.AssetType, _ bool) (prices.Quote, error) {
	f.calls++
	if f.err != nil {
		return prices.Quote{}, f.err
	}
	quote, ok := f.quotes[ticker]
	if !ok {
		return prices.Quote{Ticker: ticker, CurrentPrice: 100, LastUpdated: time.Now(), IsSimulated: true}, nil
	}
	return quote, nil
}

func TestSummarize_EmptyLedger(t *testing.T) {
	resolver := &fakeQuoteResolver{}

	summary, err := Summarize(context.Background(), nil, resolver)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalValue)
	assert.Zero(t, summary.DailyChangePercent)
	assert.Empty(t, summary.Assets)
	assert.Zero(t, resolver.calls)
}

func TestSummarize_SingleAsset(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200, PriceChange24h: 1.5},
	}}

	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "AAPL", 150, 10, 60),
		tx(models.AssetTypeStock, "AAPL", 160, 5, 45),
	}, resolver)
	require.NoError(t, err)

	require.Len(t, summary.Assets, 1)
	asset := summary.Assets[0]

	assert.Equal(t, "AAPL", asset.Ticker)
	assert.Equal(t, 15.0, asset.Quantity)
	assert.InDelta(t, 153.3333, asset.AvgBuyPrice, 1e-3)
	assert.Equal(t, 200.0, asset.CurrentPrice)
	assert.InDelta(t, 3000.0, asset.TotalValue, 1e-9)
	assert.InDelta(t, 700.0, asset.ProfitLoss, 1e-9)
	assert.InDelta(t, 700.0/2300.0*100, asset.ProfitLossPercent, 1e-9)

	assert.InDelta(t, 3000.0, summary.TotalValue, 1e-9)
	assert.InDelta(t, 1.5, summary.DailyChangePercent, 1e-9)
}

func TestSummarize_FullySoldAssetExcluded(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"X":    {Ticker: "X", CurrentPrice: 130},
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200},
	}}

	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "X", 100, 10, 20),
		tx(models.AssetTypeStock, "X", 120, -10, 5),
		tx(models.AssetTypeStock, "AAPL", 150, 1, 10),
	}, resolver)
	require.NoError(t, err)

	require.Len(t, summary.Assets, 1)
	assert.Equal(t, "AAPL", summary.Assets[0].Ticker)
	// no quote is fetched for the sold-out asset
	assert.Equal(t, 1, resolver.calls)
}

func TestSummarize_TotalIsSumOfAssetValues(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200, PriceChange24h: 2},
		"BTC":  {Ticker: "BTC", CurrentPrice: 60000, PriceChange24h: -3},
		"ETH":  {Ticker: "ETH", CurrentPrice: 3000, PriceChange24h: 1},
	}}

	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "AAPL", 150, 10, 60),
		tx(models.AssetTypeCrypto, "BTC", 35000, 0.5, 90),
		tx(models.AssetTypeCrypto, "ETH", 2400, 3, 75),
	}, resolver)
	require.NoError(t, err)

	var sum float64
	for _, asset := range summary.Assets {
		sum += asset.TotalValue
	}
	assert.InDelta(t, summary.TotalValue, sum, 1e-9)
}

func TestSummarize_WeightedDailyChange(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"A": {Ticker: "A", CurrentPrice: 100, PriceChange24h: 10},
		"B": {Ticker: "B", CurrentPrice: 100, PriceChange24h: -2},
	}}

	// A is worth 300, B is worth 100: change = (10*300 + -2*100) / 400 = 7
	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "A", 90, 3, 10),
		tx(models.AssetTypeStock, "B", 90, 1, 10),
	}, resolver)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, summary.DailyChangePercent, 1e-9)
}

func TestSummarize_SortedByValueDescending(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"SMALL": {Ticker: "SMALL", CurrentPrice: 10},
		"BIG":   {Ticker: "BIG", CurrentPrice: 1000},
		"MID":   {Ticker: "MID", CurrentPrice: 100},
	}}

	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "SMALL", 10, 1, 10),
		tx(models.AssetTypeStock, "BIG", 900, 1, 10),
		tx(models.AssetTypeStock, "MID", 90, 1, 10),
	}, resolver)
	require.NoError(t, err)

	require.Len(t, summary.Assets, 3)
	assert.Equal(t, "BIG", summary.Assets[0].Ticker)
	assert.Equal(t, "MID", summary.Assets[1].Ticker)
	assert.Equal(t, "SMALL", summary.Assets[2].Ticker)
}

func TestSummarize_TiesKeepInputOrder(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"FIRST":  {Ticker: "FIRST", CurrentPrice: 100},
		"SECOND": {Ticker: "SECOND", CurrentPrice: 100},
	}}

	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "FIRST", 90, 1, 10),
		tx(models.AssetTypeStock, "SECOND", 90, 1, 10),
	}, resolver)
	require.NoError(t, err)

	require.Len(t, summary.Assets, 2)
	assert.Equal(t, "FIRST", summary.Assets[0].Ticker)
	assert.Equal(t, "SECOND", summary.Assets[1].Ticker)
}

func TestSummarize_ZeroCostProfitPercent(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"FREE": {Ticker: "FREE", CurrentPrice: 50},
	}}

	// a buy and a sell leaving positive quantity but non-positive cost
	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "FREE", 10, 10, 20),
		tx(models.AssetTypeStock, "FREE", 50, -8, 5),
	}, resolver)
	require.NoError(t, err)

	require.Len(t, summary.Assets, 1)
	assert.Zero(t, summary.Assets[0].ProfitLossPercent)
}

func TestSummarize_ResolverErrorPropagates(t *testing.T) {
	wantErr := errors.New("invalid asset type")
	resolver := &fakeQuoteResolver{err: wantErr}

	_, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "AAPL", 150, 10, 60),
	}, resolver)
	require.Error(t, err)
	assert.True(t, errors.Is(err, wantErr))
}

func TestAllocate_PercentagesSumTo100(t *testing.T) {
	resolver := &fakeQuoteResolver{quotes: map[string]prices.Quote{
		"AAPL": {Ticker: "AAPL", CurrentPrice: 200},
		"BTC":  {Ticker: "BTC", CurrentPrice: 60000},
		"ETH":  {Ticker: "ETH", CurrentPrice: 3000},
	}}

	summary, err := Summarize(context.Background(), []models.Transaction{
		tx(models.AssetTypeStock, "AAPL", 150, 10, 60),
		tx(models.AssetTypeCrypto, "BTC", 35000, 0.5, 90),
		tx(models.AssetTypeCrypto, "ETH", 2400, 3, 75),
	}, resolver)
	require.NoError(t, err)

	allocations := Allocate(summary)
	require.Len(t, allocations, 3)

	var sum float64
	for i, allocation := range allocations {
		sum += allocation.Percentage
		if i > 0 {
			assert.LessOrEqual(t, allocation.Percentage, allocations[i-1].Percentage)
		}
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestAllocate_EmptyWhenNoValue(t *testing.T) {
	allocations := Allocate(&Summary{Assets: make([]Asset, 0)})
	assert.Empty(t, allocations)
}
