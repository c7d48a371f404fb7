package controller

import (
	"log/slog"
	"time"

	"github.com/RenzoMaggi16/vestra/internal/portfolio"
	"github.com/RenzoMaggi16/vestra/internal/repo"

	"github.com/gin-gonic/gin"
)

// PriceResolver is the full resolver surface the controllers need.
type PriceResolver interface {
	portfolio.QuoteResolver
	portfolio.HistoryResolver
}

type Controller struct {
	repo     *repo.Repository
	resolver PriceResolver
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Controller)

func WithRepository(r *repo.Repository) Option {
	return func(c *Controller) {
		c.repo = r
	}
}

func WithPriceResolver(r PriceResolver) Option {
	return func(c *Controller) {
		c.resolver = r
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// UserIDKey is the gin context key the auth middleware stores the caller's
// user ID under.
const UserIDKey = "user_id"

func userID(ctx *gin.Context) string {
	return ctx.GetString(UserIDKey)
}

func New(opts ...Option) (*Controller, error) {
	c := &Controller{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	switch {
	case c.repo == nil:
		return nil, ErrNilRepository
	case c.resolver == nil:
		return nil, ErrNilResolver
	case c.logger == nil:
		return nil, ErrNilLogger
	}
	return c, nil
}
