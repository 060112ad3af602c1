// Package models defines the core data structures used throughout stockscope.
package models

import "time"

// Quote represents a snapshot of a stock's latest trading data.
type Quote struct {
	Symbol           string    `json:"symbol"`            // e.g., "AAPL"
	Name             string    `json:"name"`              // e.g., "Apple Inc."
	Exchange         string    `json:"exchange"`          // e.g., "NASDAQ"
	CurrentPrice     float64   `json:"currentPrice"`
	PreviousClose    float64   `json:"previousClose"`
	Open             float64   `json:"open,omitempty"`
	DayHigh          float64   `json:"dayHigh,omitempty"`
	DayLow           float64   `json:"dayLow,omitempty"`
	Volume           int64     `json:"volume"`
	AverageVolume    int64     `json:"averageVolume"`
	MarketCap        float64   `json:"marketCap"`
	FiftyTwoWeekLow  float64   `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh float64   `json:"fiftyTwoWeekHigh"`
	Timestamp        time.Time `json:"timestamp"`
}

// Fundamentals holds company profile data. Every field is optional;
// a zero value means the provider did not report it.
type Fundamentals struct {
	Symbol    string  `json:"symbol"`
	Industry  string  `json:"industry,omitempty"`
	Sector    string  `json:"sector,omitempty"`
	MarketCap float64 `json:"marketCap,omitempty"`
	PERatio   float64 `json:"peRatio,omitempty"`
	Beta      float64 `json:"beta,omitempty"`
	Summary   string  `json:"summary,omitempty"`
}

// Candle represents a single OHLCV bar of daily price data.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// NewsItem represents one news article attached to a report.
// It has no identity beyond its fields and is never stored.
type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"` // "2006-01-02" or "2006-01-02 15:04:05"
	Source      string `json:"source"`
}

// Period selects the span of a historical data request.
type Period string

const (
	Period2Days  Period = "2d"
	Period1Week  Period = "1wk"
	Period1Month Period = "1mo"
	Period1Year  Period = "1y"
)
