package portfolio

import (
	"context"
	"sort"

	"github.com/RenzoMaggi16/vestra/internal/models"
	"github.com/RenzoMaggi16/vestra/pkg/types/prices"
)

// QuoteResolver supplies current prices. Implementations never fail for a
// valid asset type; degraded data is signalled via Quote.IsSimulated.
type QuoteResolver interface {
	ResolveQuote(ctx context.Context, ticker string, assetType models.AssetType, forceRefresh bool) (prices.Quote, error)
}

// Asset is one valued holding inside a summary.
type Asset struct {
	Ticker            string           `json:"ticker"`
	AssetType         models.AssetType `json:"asset_type"`
	Quantity          float64          `json:"quantity"`
	AvgBuyPrice       float64          `json:"avg_buy_price"`
	CurrentPrice      float64          `json:"current_price"`
	PriceChange24h    float64          `json:"price_change_24h"`
	TotalValue        float64          `json:"total_value"`
	ProfitLoss        float64          `json:"profit_loss"`
	ProfitLossPercent float64          `json:"profit_loss_percent"`
	IsSimulated       bool             `json:"is_simulated"`
}

// Summary is the valued portfolio: total value, value-weighted daily change
// and per-asset breakdown sorted by value descending.
type Summary struct {
	TotalValue         float64 `json:"total_value"`
	DailyChangePercent float64 `json:"daily_change_percent"`
	Assets             []Asset `json:"assets"`
}

// Allocation is one asset's share of the portfolio value.
type Allocation struct {
	Ticker     string  `json:"ticker"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Summarize values the ledger against current prices. Positions that are
// fully or over-sold are excluded. An empty ledger yields a zero summary.
// The only error case is an invalid asset type reaching the resolver.
func Summarize(ctx context.Context, transactions []models.Transaction, resolver QuoteResolver) (*Summary, error) {
	summary := &Summary{Assets: make([]Asset, 0)}

	for _, pos := range Aggregate(transactions).Positions() {
		if !pos.Held() {
			continue
		}

		quote, err := resolver.ResolveQuote(ctx, pos.Ticker, pos.AssetType, false)
		if err != nil {
			return nil, err
		}

		value := quote.CurrentPrice * pos.Quantity
		profitLoss := value - pos.Cost

		var profitLossPercent float64
		if pos.Cost > 0 {
			profitLossPercent = profitLoss / pos.Cost * 100
		}

		summary.TotalValue += value
		summary.Assets = append(summary.Assets, Asset{
			Ticker:            pos.Ticker,
			AssetType:         pos.AssetType,
			Quantity:          pos.Quantity,
			AvgBuyPrice:       pos.AvgBuyPrice(),
			CurrentPrice:      quote.CurrentPrice,
			PriceChange24h:    quote.PriceChange24h,
			TotalValue:        value,
			ProfitLoss:        profitLoss,
			ProfitLossPercent: profitLossPercent,
			IsSimulated:       quote.IsSimulated,
		})
	}

	if summary.TotalValue > 0 {
		var weighted float64
		for _, asset := range summary.Assets {
			weighted += asset.PriceChange24h * asset.TotalValue
		}
		summary.DailyChangePercent = weighted / summary.TotalValue
	}

	sort.SliceStable(summary.Assets, func(i, j int) bool {
		return summary.Assets[i].TotalValue > summary.Assets[j].TotalValue
	})

	return summary, nil
}

// Allocate derives the percentage split from a summary. Empty when the
// portfolio has no value.
func Allocate(summary *Summary) []Allocation {
	allocations := make([]Allocation, 0, len(summary.Assets))
	if summary.TotalValue <= 0 {
		return allocations
	}

	for _, asset := range summary.Assets {
		allocations = append(allocations, Allocation{
			Ticker:     asset.Ticker,
			Value:      asset.TotalValue,
			Percentage: asset.TotalValue / summary.TotalValue * 100,
		})
	}

	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].Percentage > allocations[j].Percentage
	})

	return allocations
}
