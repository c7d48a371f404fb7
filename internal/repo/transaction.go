package repo

import (
	"github.com/RenzoMaggi16/vestra/internal/models"
)

type TransactionFilter struct {
	UserID    string
	AssetType string
	Ticker    string
	Limit     int
	Offset    int
}

type TransactionListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

func (r *Repository) CreateTransaction(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

// GetTransactionsByUser returns the user's full ledger in transaction-date
// order.
func (r *Repository) GetTransactionsByUser(userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).Order("transaction_date ASC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *Repository) ListTransactions(filter TransactionFilter) (*TransactionListResult, error) {
	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", filter.UserID)

	if filter.AssetType != "" {
		query = query.Where("asset_type = ?", filter.AssetType)
	}
	if filter.Ticker != "" {
		query = query.Where("ticker = ?", filter.Ticker)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var transactions []models.Transaction
	if err := query.Order("transaction_date DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}

	return &TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}, nil
}

// DistinctAssets lists every (ticker, asset_type) pair present in the
// ledger, across all users.
func (r *Repository) DistinctAssets() ([]models.AssetRef, error) {
	var refs []models.AssetRef
	if err := r.db.Model(&models.Transaction{}).
		Distinct("ticker", "asset_type").
		Order("ticker ASC").
		Find(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}
