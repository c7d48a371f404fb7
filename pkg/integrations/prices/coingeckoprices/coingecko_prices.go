package coingeckoprices

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

var _ prices.Fetcher = (*PriceFetcher)(nil)

// coinIDs maps ticker symbols to CoinGecko coin identifiers. Tickers outside
// this table are rejected with prices.ErrUnsupportedTicker before any
// network call.
var coinIDs = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"sol":   "solana",
	"ada":   "cardano",
	"dot":   "polkadot",
	"bnb":   "binancecoin",
	"xrp":   "ripple",
	"doge":  "dogecoin",
	"shib":  "shiba-inu",
	"avax":  "avalanche-2",
	"matic": "matic-network",
	"link":  "chainlink",
	"uni":   "uniswap",
	"ltc":   "litecoin",
}

// CoinID resolves a ticker symbol to its CoinGecko identifier.
func CoinID(ticker string) (string, bool) {
	id, ok := coinIDs[strings.ToLower(strings.TrimSpace(ticker))]
	return id, ok
}

type PriceFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewPriceFetcher() *PriceFetcher {
	return &PriceFetcher{
		BaseURL: "https://api.coingecko.com/api/v3",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Quote fetches the current USD price and 24h change for a ticker.
func (c *PriceFetcher) Quote(ctx context.Context, ticker string) (*prices.Quote, error) {
	id, ok := CoinID(ticker)
	if !ok {
		return nil, errors.Wrap(prices.ErrUnsupportedTicker, ticker)
	}

	endpoint := fmt.Sprintf(
		"%s/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false",
		c.BaseURL, id,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch coin data")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result struct {
		MarketData struct {
			CurrentPrice map[string]float64 `json:"current_price"`
			Change24h    float64            `json:"price_change_percentage_24h"`
		} `json:"market_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	usd, ok := result.MarketData.CurrentPrice["usd"]
	if !ok {
		return nil, errors.Errorf("no usd price for coin: %s", id)
	}

	return &prices.Quote{
		Ticker:         strings.ToUpper(ticker),
		CurrentPrice:   usd,
		PriceChange24h: result.MarketData.Change24h,
		LastUpdated:    time.Now(),
		Source:         prices.SourceCoinGecko,
	}, nil
}

// Daily fetches the USD market chart for the last `days` days.
func (c *PriceFetcher) Daily(ctx context.Context, ticker string, days int) (*prices.Series, error) {
	id, ok := CoinID(ticker)
	if !ok {
		return nil, errors.Wrap(prices.ErrUnsupportedTicker, ticker)
	}

	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d", c.BaseURL, id, days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch market chart")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result struct {
		Prices [][2]float64 `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	if len(result.Prices) == 0 {
		return nil, errors.Errorf("empty market chart for coin: %s", id)
	}

	series := &prices.Series{
		Dates:  make([]string, 0, len(result.Prices)),
		Values: make([]float64, 0, len(result.Prices)),
	}
	for _, point := range result.Prices {
		ts := time.UnixMilli(int64(point[0]))
		series.Dates = append(series.Dates, ts.Format("2006-01-02"))
		series.Values = append(series.Values, point[1])
	}

	return series, nil
}
