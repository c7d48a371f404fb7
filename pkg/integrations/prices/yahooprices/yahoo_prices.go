package yahooprices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/RenzoMaggi16/vestra/pkg/types/prices"

	"github.com/pkg/errors"
)

var (
	_ prices.Fetcher = (*PriceFetcher)(nil)

	ErrNoChartResult = errors.New("no chart result for ticker")
)

// PriceFetcher reads quotes and daily closes from the Yahoo Finance v8
// chart API.
type PriceFetcher struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewPriceFetcher() *PriceFetcher {
	return &PriceFetcher{
		BaseURL:   "https://query2.finance.yahoo.com/v8/finance/chart",
		UserAgent: "vestra/1.0",
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

func (f *PriceFetcher) fetchChart(ctx context.Context, ticker, rangeParam string) (*chartResponse, error) {
	endpoint := fmt.Sprintf("%s/%s?interval=1d&range=%s", f.BaseURL, strings.ToUpper(ticker), rangeParam)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chart")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var raw chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	if len(raw.Chart.Result) == 0 {
		return nil, errors.Wrap(ErrNoChartResult, ticker)
	}

	return &raw, nil
}

// Quote fetches the latest market price and derives the 24h change from the
// previous close.
func (f *PriceFetcher) Quote(ctx context.Context, ticker string) (*prices.Quote, error) {
	raw, err := f.fetchChart(ctx, ticker, "1d")
	if err != nil {
		return nil, err
	}

	meta := raw.Chart.Result[0].Meta

	var change float64
	if meta.ChartPreviousClose != 0 {
		change = (meta.RegularMarketPrice - meta.ChartPreviousClose) / meta.ChartPreviousClose * 100
	}

	return &prices.Quote{
		Ticker:         strings.ToUpper(ticker),
		CurrentPrice:   meta.RegularMarketPrice,
		PriceChange24h: change,
		LastUpdated:    time.Now(),
		Source:         prices.SourceYahoo,
	}, nil
}

// Daily fetches one close per trading day over the last `days` days.
func (f *PriceFetcher) Daily(ctx context.Context, ticker string, days int) (*prices.Series, error) {
	raw, err := f.fetchChart(ctx, ticker, fmt.Sprintf("%dd", days))
	if err != nil {
		return nil, err
	}

	result := raw.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, errors.Wrap(ErrNoChartResult, ticker)
	}

	closes := result.Indicators.Quote[0].Close
	series := &prices.Series{
		Dates:  make([]string, 0, len(result.Timestamp)),
		Values: make([]float64, 0, len(result.Timestamp)),
	}
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == 0 {
			continue
		}
		series.Dates = append(series.Dates, time.Unix(ts, 0).Format("2006-01-02"))
		series.Values = append(series.Values, closes[i])
	}

	if len(series.Dates) == 0 {
		return nil, errors.Wrap(ErrNoChartResult, ticker)
	}

	return series, nil
}
