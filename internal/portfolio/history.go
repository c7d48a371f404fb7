package portfolio

import (
	"context"
	"sort"
	"time"

	"github.com/RenzoMaggi16/vestra/internal/models"
	"github.com/RenzoMaggi16/vestra/pkg/types/prices"
)

// HistoryResolver supplies historical price series and the simulated
// fallback curve used when the ledger is empty.
type HistoryResolver interface {
	ResolveHistory(ctx context.Context, ticker string, assetType models.AssetType, days int) (prices.Series, error)
	SimulateHistory(days int) prices.Series
}

// priceIndex is a price series re-indexed by parsed date for nearest-date
// lookup.
type priceIndex struct {
	dates  []time.Time
	values []float64
}

func newPriceIndex(series prices.Series) priceIndex {
	type point struct {
		date  time.Time
		value float64
	}
	points := make([]point, 0, len(series.Dates))
	for i, d := range series.Dates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		points = append(points, point{date: parsed, value: series.Values[i]})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].date.Before(points[j].date)
	})

	idx := priceIndex{
		dates:  make([]time.Time, len(points)),
		values: make([]float64, len(points)),
	}
	for i, p := range points {
		idx.dates[i] = p.date
		idx.values[i] = p.value
	}
	return idx
}

// nearest returns the price whose date is closest to t.
func (idx priceIndex) nearest(t time.Time) (float64, bool) {
	if len(idx.dates) == 0 {
		return 0, false
	}

	i := sort.Search(len(idx.dates), func(i int) bool {
		return !idx.dates[i].Before(t)
	})

	switch i {
	case 0:
		return idx.values[0], true
	case len(idx.dates):
		return idx.values[len(idx.dates)-1], true
	default:
		if t.Sub(idx.dates[i-1]) <= idx.dates[i].Sub(t) {
			return idx.values[i-1], true
		}
		return idx.values[i], true
	}
}

// ledgerReplay answers "how much was held at instant t" for one asset via
// binary search over date-sorted transactions and their prefix quantity
// sums.
type ledgerReplay struct {
	dates  []time.Time
	cumQty []float64
}

func newLedgerReplay(transactions []models.Transaction) ledgerReplay {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate.Before(sorted[j].TransactionDate)
	})

	replay := ledgerReplay{
		dates:  make([]time.Time, len(sorted)),
		cumQty: make([]float64, len(sorted)),
	}
	var cum float64
	for i, tx := range sorted {
		cum += tx.Quantity
		replay.dates[i] = tx.TransactionDate
		replay.cumQty[i] = cum
	}
	return replay
}

func (r ledgerReplay) quantityAt(t time.Time) float64 {
	// first transaction strictly after t
	i := sort.Search(len(r.dates), func(i int) bool {
		return r.dates[i].After(t)
	})
	if i == 0 {
		return 0
	}
	return r.cumQty[i-1]
}

// History replays the ledger against historical prices to produce a daily
// portfolio value curve spanning `days` back from `now`, both endpoints
// included. An empty ledger yields a fully simulated curve so charts are
// never degenerate.
func History(ctx context.Context, transactions []models.Transaction, days int, now time.Time, resolver HistoryResolver) (*prices.Series, error) {
	if len(transactions) == 0 {
		simulated := resolver.SimulateHistory(days)
		return &simulated, nil
	}

	grouped := make(map[AssetKey][]models.Transaction)
	var order []AssetKey
	for _, tx := range transactions {
		key := AssetKey{Ticker: tx.Ticker, AssetType: tx.AssetType}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], tx)
	}

	result := &prices.Series{
		Dates:  make([]string, 0, days+1),
		Values: make([]float64, days+1),
	}
	for i := days; i >= 0; i-- {
		result.Dates = append(result.Dates, now.AddDate(0, 0, -i).Format("2006-01-02"))
	}

	for _, key := range order {
		series, err := resolver.ResolveHistory(ctx, key.Ticker, key.AssetType, days)
		if err != nil {
			return nil, err
		}
		if series.IsSimulated {
			result.IsSimulated = true
		}

		index := newPriceIndex(series)
		replay := newLedgerReplay(grouped[key])

		for i := days; i >= 0; i-- {
			day := now.AddDate(0, 0, -i)
			quantity := replay.quantityAt(day)
			if quantity <= 0 {
				continue
			}
			if price, ok := index.nearest(day); ok {
				result.Values[days-i] += price * quantity
			}
		}
	}

	return result, nil
}
