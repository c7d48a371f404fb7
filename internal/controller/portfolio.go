package controller

import (
	"net/http"
	"strconv"

	"github.com/RenzoMaggi16/vestra/internal/portfolio"
	"github.com/RenzoMaggi16/vestra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// PortfolioSummary godoc
// @Summary Get portfolio summary
// @Description Current holdings valued at market prices, with P/L and weighted daily change
// @Tags portfolio
// @Produce json
// @Success 200 {object} portfolio.Summary
// @Failure 400 {object} APIError
// @Router /api/portfolio/summary [get]
func (c *Controller) PortfolioSummary(ctx *gin.Context) {
	transactions, err := c.repo.GetTransactionsByUser(userID(ctx))
	if err != nil {
		c.logger.Error("failed to load ledger", "error", err)
		internalError(ctx, "failed to fetch transactions")
		return
	}

	summary, err := portfolio.Summarize(ctx, transactions, c.resolver)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAssetType) {
			badRequest(ctx, "invalid asset type")
			return
		}
		c.logger.Error("failed to summarize portfolio", "error", err)
		internalError(ctx, "failed to compute summary")
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// PortfolioHistory godoc
// @Summary Get portfolio value history
// @Description Day-by-day total portfolio value reconstructed from the ledger and historical prices
// @Tags portfolio
// @Produce json
// @Param days query int false "Number of days of history (default 30)"
// @Success 200 {object} prices.Series
// @Failure 400 {object} APIError
// @Router /api/portfolio/history [get]
func (c *Controller) PortfolioHistory(ctx *gin.Context) {
	days := 30
	if d := ctx.Query("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			badRequest(ctx, "days must be a positive integer")
			return
		}
		days = parsed
	}

	transactions, err := c.repo.GetTransactionsByUser(userID(ctx))
	if err != nil {
		c.logger.Error("failed to load ledger", "error", err)
		internalError(ctx, "failed to fetch transactions")
		return
	}

	series, err := portfolio.History(ctx, transactions, days, c.now(), c.resolver)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAssetType) {
			badRequest(ctx, "invalid asset type")
			return
		}
		c.logger.Error("failed to reconstruct history", "error", err)
		internalError(ctx, "failed to compute history")
		return
	}

	ctx.JSON(http.StatusOK, series)
}

// PortfolioAllocation godoc
// @Summary Get portfolio allocation
// @Description Percentage split of the portfolio by asset, largest first
// @Tags portfolio
// @Produce json
// @Success 200 {array} portfolio.Allocation
// @Failure 400 {object} APIError
// @Router /api/portfolio/allocation [get]
func (c *Controller) PortfolioAllocation(ctx *gin.Context) {
	transactions, err := c.repo.GetTransactionsByUser(userID(ctx))
	if err != nil {
		c.logger.Error("failed to load ledger", "error", err)
		internalError(ctx, "failed to fetch transactions")
		return
	}

	summary, err := portfolio.Summarize(ctx, transactions, c.resolver)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAssetType) {
			badRequest(ctx, "invalid asset type")
			return
		}
		c.logger.Error("failed to summarize portfolio", "error", err)
		internalError(ctx, "failed to compute allocation")
		return
	}

	ctx.JSON(http.StatusOK, portfolio.Allocate(summary))
}
