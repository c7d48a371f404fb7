package handler

import (
	"errors"
	"log/slog"

	"github.com/RenzoMaggi16/vestra/internal/controller"
	"github.com/RenzoMaggi16/vestra/internal/repo"

	"github.com/gin-gonic/gin"
)

var (
	ErrNilEngine     = errors.New("engine is required")
	ErrNilRepository = errors.New("repository is required")
	ErrNilResolver   = errors.New("price resolver is required")
	ErrNilLogger     = errors.New("logger is required")
)

type Handler struct {
	engine     *gin.Engine
	repository *repo.Repository
	resolver   controller.PriceResolver
	logger     *slog.Logger
	corsOrigin string
}

func (h *Handler) IsValid() error {
	switch {
	case h.engine == nil:
		return ErrNilEngine
	case h.repository == nil:
		return ErrNilRepository
	case h.resolver == nil:
		return ErrNilResolver
	case h.logger == nil:
		return ErrNilLogger
	default:
		return nil
	}
}

type Option func(*Handler)

func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		h.engine = engine
	}
}

func WithRepository(repository *repo.Repository) Option {
	return func(h *Handler) {
		h.repository = repository
	}
}

func WithPriceResolver(resolver controller.PriceResolver) Option {
	return func(h *Handler) {
		h.resolver = resolver
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithCORSOrigin(origin string) Option {
	return func(h *Handler) {
		h.corsOrigin = origin
	}
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.IsValid(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) Setup() error {
	ctrl, err := controller.New(
		controller.WithRepository(h.repository),
		controller.WithPriceResolver(h.resolver),
		controller.WithLogger(h.logger),
	)
	if err != nil {
		return err
	}

	h.engine.Use(RequestID())
	if h.corsOrigin != "" {
		h.engine.Use(CORS(h.corsOrigin))
	}

	h.engine.GET("/api/health", controller.Health)

	api := h.engine.Group("/api")
	api.Use(RequireUser())

	transactions := api.Group("/transactions")
	transactions.GET("", ctrl.ListTransactions)
	transactions.POST("", ctrl.CreateTransaction)
	transactions.GET("/export", ctrl.ExportTransactions)

	portfolio := api.Group("/portfolio")
	portfolio.GET("/summary", ctrl.PortfolioSummary)
	portfolio.GET("/history", ctrl.PortfolioHistory)
	portfolio.GET("/allocation", ctrl.PortfolioAllocation)

	prices := api.Group("/prices")
	prices.GET("/:asset_type/:ticker", ctrl.GetPrice)

	return nil
}
