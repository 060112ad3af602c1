// Package marketdata provides quote, history, fundamentals, and news
// retrieval behind a single Provider interface. The live Yahoo Finance
// implementation and the synthetic generator are interchangeable, so
// everything downstream of this package can be tested without network
// access.
package marketdata

import (
	"context"
	"errors"

	"stockscope/pkg/models"
)

// Provider is the read-only market data contract the report layer
// consumes. Implementations may serve a subset of symbols; unknown
// symbols yield ErrSymbolNotFound rather than fabricated data unless
// the implementation is explicitly synthetic.
type Provider interface {
	// Name returns the human-readable name of this provider.
	Name() string

	// GetQuote returns the latest quote snapshot for the symbol.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetHistory returns daily OHLCV candles covering the period.
	GetHistory(ctx context.Context, symbol string, period models.Period) ([]models.Candle, error)

	// GetFundamentals returns company profile data for the symbol.
	GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error)

	// GetNews returns up to limit recent news items for the symbol.
	GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
}

// Sentinel errors shared by all provider implementations.
var (
	// ErrSymbolNotFound means the provider does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoData means the symbol resolved but returned an empty payload.
	ErrNoData = errors.New("no data available")
)
