package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/RenzoMaggi16/vestra/internal/models"
	tickerScheduler "github.com/RenzoMaggi16/vestra/pkg/integrations/scheduler"
	"github.com/RenzoMaggi16/vestra/pkg/types/prices"
	"github.com/RenzoMaggi16/vestra/pkg/types/scheduler"

	"github.com/pkg/errors"
)

var ErrInvalidQuoteRefresherConfig = errors.New("invalid quote refresher config")

type LedgerAssetRepository interface {
	DistinctAssets() ([]models.AssetRef, error)
}

type QuoteSource interface {
	ResolveQuote(ctx context.Context, ticker string, assetType models.AssetType, forceRefresh bool) (prices.Quote, error)
}

// QuoteRefresher periodically force-refreshes quotes for every distinct
// asset in the ledger so dashboard reads hit a warm cache. Failures are
// logged, never surfaced.
type QuoteRefresher struct {
	ctx       context.Context
	logger    *slog.Logger
	repo      LedgerAssetRepository
	resolver  QuoteSource
	interval  time.Duration
	scheduler scheduler.Scheduler
}

type QuoteRefresherOption func(*QuoteRefresher)

func WithQuoteRefresherContext(ctx context.Context) QuoteRefresherOption {
	return func(s *QuoteRefresher) {
		s.ctx = ctx
	}
}

func WithQuoteRefresherLogger(l *slog.Logger) QuoteRefresherOption {
	return func(s *QuoteRefresher) {
		s.logger = l
	}
}

func WithQuoteRefresherRepo(r LedgerAssetRepository) QuoteRefresherOption {
	return func(s *QuoteRefresher) {
		s.repo = r
	}
}

func WithQuoteRefresherResolver(r QuoteSource) QuoteRefresherOption {
	return func(s *QuoteRefresher) {
		s.resolver = r
	}
}

func WithQuoteRefresherInterval(d time.Duration) QuoteRefresherOption {
	return func(s *QuoteRefresher) {
		s.interval = d
	}
}

func (s *QuoteRefresher) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidQuoteRefresherConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidQuoteRefresherConfig, "logger cannot be nil")
	case s.repo == nil:
		return errors.Wrap(ErrInvalidQuoteRefresherConfig, "repo cannot be nil")
	case s.resolver == nil:
		return errors.Wrap(ErrInvalidQuoteRefresherConfig, "resolver cannot be nil")
	default:
		return nil
	}
}

func NewQuoteRefresher(opts ...QuoteRefresherOption) (*QuoteRefresher, error) {
	s := &QuoteRefresher{
		interval: scheduler.IntervalMinute,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.IsValid(); err != nil {
		return nil, err
	}

	sched, err := tickerScheduler.New(
		tickerScheduler.WithContext(s.ctx),
		tickerScheduler.WithLogger(s.logger),
		tickerScheduler.WithInterval(s.interval),
		tickerScheduler.WithHandler(s.tick),
		tickerScheduler.WithImmediate(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}
	s.scheduler = sched

	return s, nil
}

func (s *QuoteRefresher) Start() error {
	return s.scheduler.Start()
}

func (s *QuoteRefresher) Stop() {
	s.scheduler.Stop()
}

func (s *QuoteRefresher) tick() error {
	assets, err := s.repo.DistinctAssets()
	if err != nil {
		return errors.Wrap(err, "failed to list ledger assets")
	}

	if len(assets) == 0 {
		return nil
	}

	refreshed := 0
	for _, asset := range assets {
		if _, err := s.resolver.ResolveQuote(s.ctx, asset.Ticker, asset.AssetType, true); err != nil {
			s.logger.Error("failed to refresh quote",
				"ticker", asset.Ticker,
				"asset_type", asset.AssetType,
				"error", err,
			)
			continue
		}
		refreshed++
	}

	s.logger.Debug("refreshed quotes", "count", refreshed)
	return nil
}
