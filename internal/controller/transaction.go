package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/RenzoMaggi16/vestra/internal/models"
	"github.com/RenzoMaggi16/vestra/internal/repo"

	"github.com/gin-gonic/gin"
)

type CreateTransactionRequest struct {
	AssetType       models.AssetType `json:"asset_type"`
	Ticker          string           `json:"ticker"`
	Price           float64          `json:"price"`
	Quantity        float64          `json:"quantity"`
	TransactionDate *time.Time       `json:"transaction_date"`
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Description Append a buy (positive quantity) or sell (negative quantity) to the ledger
// @Tags transactions
// @Accept json
// @Produce json
// @Success 201 {object} models.Transaction
// @Failure 400 {object} APIError
// @Router /api/transactions [post]
func (c *Controller) CreateTransaction(ctx *gin.Context) {
	var req CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequestWithDetails(ctx, "invalid input", err.Error())
		return
	}

	if !req.AssetType.Valid() {
		badRequest(ctx, "asset_type must be stock or crypto")
		return
	}
	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	if req.Ticker == "" {
		badRequest(ctx, "ticker is required")
		return
	}
	if req.Price <= 0 {
		badRequest(ctx, "price must be positive")
		return
	}
	if req.Quantity == 0 {
		badRequest(ctx, "quantity cannot be zero")
		return
	}

	tx := models.Transaction{
		UserID:          userID(ctx),
		AssetType:       req.AssetType,
		Ticker:          req.Ticker,
		Price:           req.Price,
		Quantity:        req.Quantity,
		TransactionDate: c.now(),
	}
	if req.TransactionDate != nil {
		tx.TransactionDate = *req.TransactionDate
	}

	if err := c.repo.CreateTransaction(&tx); err != nil {
		c.logger.Error("failed to create transaction", "error", err)
		internalError(ctx, "failed to create transaction")
		return
	}

	ctx.JSON(http.StatusCreated, tx)
}

// ListTransactions godoc
// @Summary List transactions
// @Description List the caller's ledger, newest first
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} repo.TransactionListResult
// @Router /api/transactions [get]
func (c *Controller) ListTransactions(ctx *gin.Context) {
	filter := repo.TransactionFilter{UserID: userID(ctx)}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}
	if assetType := ctx.Query("asset_type"); assetType != "" {
		filter.AssetType = assetType
	}
	if ticker := ctx.Query("ticker"); ticker != "" {
		filter.Ticker = strings.ToUpper(ticker)
	}

	result, err := c.repo.ListTransactions(filter)
	if err != nil {
		c.logger.Error("failed to list transactions", "error", err)
		internalError(ctx, "failed to fetch transactions")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ExportTransactions godoc
// @Summary Export the ledger
// @Description Export the caller's transactions as CSV or JSON file
// @Tags transactions
// @Produce octet-stream
// @Param format query string false "Export format (csv or json)"
// @Success 200 {file} file
// @Failure 400 {object} APIError
// @Router /api/transactions/export [get]
func (c *Controller) ExportTransactions(ctx *gin.Context) {
	format := strings.ToLower(ctx.DefaultQuery("format", "csv"))
	if format != "csv" && format != "json" {
		badRequest(ctx, "format must be csv or json")
		return
	}

	transactions, err := c.repo.GetTransactionsByUser(userID(ctx))
	if err != nil {
		c.logger.Error("failed to export transactions", "error", err)
		internalError(ctx, "failed to fetch transactions")
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", c.now().Format("2006-01-02"), format)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if format == "json" {
		ctx.Header("Content-Type", "application/json")
		ctx.JSON(http.StatusOK, transactions)
		return
	}

	ctx.Data(http.StatusOK, "text/csv", transactionsToCSV(transactions))
}

func transactionsToCSV(transactions []models.Transaction) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"id", "asset_type", "ticker", "price", "quantity", "transaction_date"})
	for _, tx := range transactions {
		_ = w.Write([]string{
			strconv.FormatInt(tx.ID, 10),
			string(tx.AssetType),
			tx.Ticker,
			strconv.FormatFloat(tx.Price, 'f', -1, 64),
			strconv.FormatFloat(tx.Quantity, 'f', -1, 64),
			tx.TransactionDate.Format(time.RFC3339),
		})
	}
	w.Flush()

	return buf.Bytes()
}
