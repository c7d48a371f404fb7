package yahooprices

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RenzoMaggi16/vestra/pkg/types/prices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartBody(price, prevClose float64, timestamps []int64, closes []float64) string {
	ts := ""
	cl := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
			cl += ","
		}
		ts += fmt.Sprintf("%d", t)
		cl += fmt.Sprintf("%g", closes[i])
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"regularMarketPrice": %g, "chartPreviousClose": %g},
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}]
		}
	}`, price, prevClose, ts, cl)
}

func TestPriceFetcher_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chartBody(210, 200, nil, nil))
	}))
	defer server.Close()

	fetcher := NewPriceFetcher()
	fetcher.BaseURL = server.URL

	quote, err := fetcher.Quote(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Ticker)
	assert.Equal(t, 210.0, quote.CurrentPrice)
	assert.InDelta(t, 5.0, quote.PriceChange24h, 1e-9)
	assert.Equal(t, prices.SourceYahoo, quote.Source)
	assert.False(t, quote.IsSimulated)
}

func TestPriceFetcher_Quote_ZeroPreviousClose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody(210, 0, nil, nil))
	}))
	defer server.Close()

	fetcher := NewPriceFetcher()
	fetcher.BaseURL = server.URL

	quote, err := fetcher.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Zero(t, quote.PriceChange24h)
}

func TestPriceFetcher_Quote_NoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": []}}`)
	}))
	defer server.Close()

	fetcher := NewPriceFetcher()
	fetcher.BaseURL = server.URL

	_, err := fetcher.Quote(context.Background(), "AAPL")
	require.Error(t, err)
}

func TestPriceFetcher_Quote_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewPriceFetcher()
	fetcher.BaseURL = server.URL

	_, err := fetcher.Quote(context.Background(), "AAPL")
	require.Error(t, err)
}

func TestPriceFetcher_Daily(t *testing.T) {
	day := int64(24 * 60 * 60)
	base := time.Now().Unix() - 3*day

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/MSFT", r.URL.Path)
		assert.Equal(t, "3d", r.URL.Query().Get("range"))

		fmt.Fprint(w, chartBody(0, 0,
			[]int64{base, base + day, base + 2*day},
			[]float64{290.10, 0, 295.55},
		))
	}))
	defer server.Close()

	fetcher := NewPriceFetcher()
	fetcher.BaseURL = server.URL

	series, err := fetcher.Daily(context.Background(), "MSFT", 3)
	require.NoError(t, err)

	// the zero close is a data gap and gets skipped
	require.Len(t, series.Dates, 2)
	require.Len(t, series.Values, 2)
	assert.Equal(t, time.Unix(base, 0).Format("2006-01-02"), series.Dates[0])
	assert.Equal(t, 290.10, series.Values[0])
	assert.Equal(t, 295.55, series.Values[1])
}
