package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RenzoMaggi16/vestra/internal/config"
	"github.com/RenzoMaggi16/vestra/internal/handler"
	"github.com/RenzoMaggi16/vestra/internal/repo"
	"github.com/RenzoMaggi16/vestra/internal/service"
	"github.com/RenzoMaggi16/vestra/pkg/database"
	"github.com/RenzoMaggi16/vestra/pkg/integrations/memcache"
	"github.com/RenzoMaggi16/vestra/pkg/integrations/prices/coingeckoprices"
	"github.com/RenzoMaggi16/vestra/pkg/integrations/prices/yahooprices"
	"github.com/RenzoMaggi16/vestra/pkg/types/prices"

	"github.com/gin-gonic/gin"
)

// @title Vestra Portfolio API
// @version 1.0
// @description Investment portfolio tracking API for stocks and cryptocurrencies

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(database.WithPath(cfg.DBPath))
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	repository, err := repo.New(db.Get())
	if err != nil {
		log.Fatal("Failed to create repository:", err)
	}
	if err := repository.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	resolver, err := service.NewPriceResolver(
		service.WithPriceResolverLogger(logger),
		service.WithStockFetcher(yahooprices.NewPriceFetcher()),
		service.WithCryptoFetcher(coingeckoprices.NewPriceFetcher()),
		service.WithQuoteCache(memcache.New(memcache.WithTTL[string, prices.Quote](cfg.QuoteTTL))),
		service.WithSeriesCache(memcache.New(memcache.WithTTL[string, prices.Series](cfg.HistoryTTL))),
		service.WithRetryDelay(cfg.RetryDelay),
	)
	if err != nil {
		log.Fatal("Failed to create price resolver:", err)
	}

	if cfg.RefreshEnabled {
		refresher, err := service.NewQuoteRefresher(
			service.WithQuoteRefresherContext(ctx),
			service.WithQuoteRefresherLogger(logger),
			service.WithQuoteRefresherRepo(repository),
			service.WithQuoteRefresherResolver(resolver),
			service.WithQuoteRefresherInterval(cfg.RefreshInterval),
		)
		if err != nil {
			log.Fatal("Failed to create quote refresher:", err)
		}
		if err := refresher.Start(); err != nil {
			log.Fatal("Failed to start quote refresher:", err)
		}
		defer refresher.Stop()
	}

	engine := gin.Default()

	h, err := handler.New(
		handler.WithEngine(engine),
		handler.WithRepository(repository),
		handler.WithPriceResolver(resolver),
		handler.WithLogger(logger),
		handler.WithCORSOrigin(cfg.CORSOrigin),
	)
	if err != nil {
		log.Fatal("Failed to create handler:", err)
	}
	if err := h.Setup(); err != nil {
		log.Fatal("Failed to set up routes:", err)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
