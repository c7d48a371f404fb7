package controller

import (
	"net/http"

	"github.com/RenzoMaggi16/vestra/internal/models"

	"github.com/gin-gonic/gin"
)

// GetPrice godoc
// @Summary Get the current price of an asset
// @Description Current price and 24h change; falls back to simulated data when providers are unavailable
// @Tags prices
// @Produce json
// @Param asset_type path string true "Asset type (stock or crypto)"
// @Param ticker path string true "Ticker symbol (e.g. AAPL, BTC)"
// @Param refresh query bool false "Bypass the quote cache"
// @Success 200 {object} prices.Quote
// @Failure 400 {object} APIError
// @Router /api/prices/{asset_type}/{ticker} [get]
func (c *Controller) GetPrice(ctx *gin.Context) {
	assetType := models.AssetType(ctx.Param("asset_type"))
	if !assetType.Valid() {
		badRequest(ctx, "asset_type must be stock or crypto")
		return
	}

	forceRefresh := ctx.Query("refresh") == "true"

	quote, err := c.resolver.ResolveQuote(ctx, ctx.Param("ticker"), assetType, forceRefresh)
	if err != nil {
		badRequest(ctx, "invalid asset type")
		return
	}

	ctx.JSON(http.StatusOK, quote)
}
