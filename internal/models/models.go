package models

import "time"

type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
)

func (t AssetType) Valid() bool {
	return t == AssetTypeStock || t == AssetTypeCrypto
}

// Transaction is one append-only ledger row. Quantity is signed: positive
// for buys, negative for sells. Price is the unit cost at execution.
type Transaction struct {
	ID              int64     `json:"id"               gorm:"primaryKey"`
	UserID          string    `json:"user_id"          gorm:"index:idx_user_asset"`
	AssetType       AssetType `json:"asset_type"       gorm:"index:idx_user_asset"`
	Ticker          string    `json:"ticker"           gorm:"index:idx_user_asset"`
	Price           float64   `json:"price"`
	Quantity        float64   `json:"quantity"`
	TransactionDate time.Time `json:"transaction_date" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
}

// AssetRef identifies one distinct (ticker, asset type) pair present in the
// ledger.
type AssetRef struct {
	Ticker    string    `json:"ticker"`
	AssetType AssetType `json:"asset_type"`
}

func (Transaction) TableName() string {
	return "transactions"
}
