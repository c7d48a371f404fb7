package portfolio

import "github.com/RenzoMaggi16/vestra/internal/models"

// AssetKey identifies one asset in the ledger.
type AssetKey struct {
	Ticker    string
	AssetType models.AssetType
}

// Position is the net holding in one asset, folded from the ledger.
// Quantity and Cost accumulate signed contributions, so Cost is not rebased
// when a sell reduces the holding; AvgBuyPrice stays the weighted average
// over the signed sums.
type Position struct {
	Ticker    string
	AssetType models.AssetType
	Quantity  float64
	Cost      float64
}

// AvgBuyPrice returns Cost/Quantity for open positions, 0 otherwise.
func (p *Position) AvgBuyPrice() float64 {
	if p.Quantity <= 0 {
		return 0
	}
	return p.Cost / p.Quantity
}

// Held reports whether any quantity remains.
func (p *Position) Held() bool {
	return p.Quantity > 0
}

// Book holds aggregated positions in first-appearance ledger order.
type Book struct {
	byKey map[AssetKey]*Position
	order []AssetKey
}

// Aggregate folds a transaction ledger into per-asset positions. The fold is
// a plain signed sum, so the result does not depend on ledger order.
func Aggregate(transactions []models.Transaction) *Book {
	b := &Book{byKey: make(map[AssetKey]*Position)}

	for _, tx := range transactions {
		key := AssetKey{Ticker: tx.Ticker, AssetType: tx.AssetType}
		pos, ok := b.byKey[key]
		if !ok {
			pos = &Position{Ticker: tx.Ticker, AssetType: tx.AssetType}
			b.byKey[key] = pos
			b.order = append(b.order, key)
		}
		pos.Quantity += tx.Quantity
		pos.Cost += tx.Price * tx.Quantity
	}

	return b
}

// Position looks up one aggregated position.
func (b *Book) Position(key AssetKey) (*Position, bool) {
	pos, ok := b.byKey[key]
	return pos, ok
}

// Positions returns all positions, fully and over-sold ones included, in
// first-appearance order.
func (b *Book) Positions() []*Position {
	out := make([]*Position, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.byKey[key])
	}
	return out
}

// Len returns the number of distinct assets seen in the ledger.
func (b *Book) Len() int {
	return len(b.order)
}
