// Package report assembles the JSON report envelopes the CLI prints:
// a detailed single-symbol analysis and a top-losers list. All provider
// failures are converted into structured envelopes here; the report
// layer never returns a Go error to its caller.
package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"stockscope/internal/analysis"
	"stockscope/internal/marketdata"
	"stockscope/pkg/models"
)

// DefaultLimit is the losers list size when the caller asks for none.
const DefaultLimit = 20

// newsPerStock caps the news items attached to any report entry.
const newsPerStock = 5

// Options configures a report Service.
type Options struct {
	// Universe is the symbol list scanned by TopLosers. When empty the
	// provider's own universe is used if it exposes one.
	Universe []string

	// BatchSize splits the universe scan into batches, purely to respect
	// the provider's rate limits. Zero means one batch.
	BatchSize int
}

// symbolLister is implemented by providers with a fixed universe.
type symbolLister interface {
	Symbols() []string
}

// Service builds reports from a market data provider.
type Service struct {
	provider  marketdata.Provider
	rss       *marketdata.RSSNews
	universe  []string
	batchSize int
}

// New creates a report service. rss may be nil; when present it backs
// up the provider for symbol news.
func New(provider marketdata.Provider, rss *marketdata.RSSNews, opts Options) *Service {
	universe := opts.Universe
	if len(universe) == 0 {
		if lister, ok := provider.(symbolLister); ok {
			universe = lister.Symbols()
		}
	}
	return &Service{
		provider:  provider,
		rss:       rss,
		universe:  universe,
		batchSize: opts.BatchSize,
	}
}

// StockDetail builds the detailed report for one symbol. The returned
// envelope is always non-nil: missing data and provider failures are
// reported inside it, never as a Go error.
func (s *Service) StockDetail(ctx context.Context, symbol string) *models.Response {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	quote, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		if isMissingData(err) {
			return models.Fail(fmt.Sprintf("No information found for %s", symbol), symbol)
		}
		log.Printf("report: quote %s: %v", symbol, err)
		return models.Errorf(fmt.Errorf("error analyzing %s: %w", symbol, err))
	}

	candles, err := s.provider.GetHistory(ctx, symbol, models.Period1Month)
	if err != nil {
		if isMissingData(err) {
			return models.Fail(fmt.Sprintf("No price history found for %s", symbol), symbol)
		}
		log.Printf("report: history %s: %v", symbol, err)
		return models.Errorf(fmt.Errorf("error analyzing %s: %w", symbol, err))
	}
	if len(candles) == 0 {
		return models.Fail(fmt.Sprintf("No price history found for %s", symbol), symbol)
	}

	// Fundamentals and news are best-effort: a failure only suppresses
	// the dependent fields and insight rules.
	fund, err := s.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		log.Printf("report: fundamentals %s: %v", symbol, err)
		fund = &models.Fundamentals{Symbol: symbol}
	}

	news, err := s.symbolNews(ctx, symbol, quote.Name)
	if err != nil {
		log.Printf("report: news %s: %v", symbol, err)
		news = nil
	}

	detail := buildDetail(quote, candles, fund, news)
	return models.OK(fmt.Sprintf("Detailed stock analysis from %s", s.provider.Name()), detail)
}

// TopLosers scans the universe and returns the stocks that declined the
// most versus their previous close, sorted ascending by percentage
// change and truncated to limit. industry filters case-insensitively;
// "all" or empty disables the filter.
func (s *Service) TopLosers(ctx context.Context, industry string, limit int) *models.Response {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(s.universe) == 0 {
		return models.Errorf(errors.New("no symbol universe configured"))
	}

	filter := strings.ToLower(strings.TrimSpace(industry))
	if filter == "all" {
		filter = ""
	}

	var losers []models.Loser

	// Sequential scan, batched only to stay inside provider rate limits.
	for _, batch := range batches(s.universe, s.batchSize) {
		for _, symbol := range batch {
			loser, ok := s.scanSymbol(ctx, symbol, filter)
			if ctx.Err() != nil {
				return models.Errorf(ctx.Err())
			}
			if !ok {
				continue
			}
			losers = append(losers, *loser)
		}
	}

	// Most negative first.
	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].PriceChangePercent < losers[j].PriceChangePercent
	})
	if len(losers) > limit {
		losers = losers[:limit]
	}

	// News only for the surviving page, to keep the request count down.
	for i := range losers {
		news, err := s.symbolNews(ctx, losers[i].Symbol, losers[i].CompanyName)
		if err != nil {
			log.Printf("report: news %s: %v", losers[i].Symbol, err)
			continue
		}
		losers[i].News = news
	}

	msg := fmt.Sprintf("Retrieved top stock losers (%d losers across %d symbols)",
		len(losers), len(s.universe))
	return models.OK(msg, losers)
}

// scanSymbol fetches one symbol for the losers scan. Any failure or a
// non-declining price drops the symbol without aborting the batch.
func (s *Service) scanSymbol(ctx context.Context, symbol, industryFilter string) (*models.Loser, bool) {
	quote, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		log.Printf("report: skipping %s: %v", symbol, err)
		return nil, false
	}

	change, changePct, ok := analysis.PriceChange(quote.CurrentPrice, quote.PreviousClose)
	if !ok || changePct >= 0 {
		return nil, false
	}

	fund, err := s.provider.GetFundamentals(ctx, symbol)
	if err != nil {
		log.Printf("report: fundamentals %s: %v", symbol, err)
		fund = &models.Fundamentals{Symbol: symbol}
	}

	industry := coalesceStr(fund.Industry, "Unknown")
	if industryFilter != "" && strings.ToLower(industry) != industryFilter {
		return nil, false
	}

	marketCap := fund.MarketCap
	if marketCap == 0 {
		marketCap = quote.MarketCap
	}

	return &models.Loser{
		Symbol:             quote.Symbol,
		CompanyName:        coalesceStr(quote.Name, symbol),
		CurrentPrice:       round2(quote.CurrentPrice),
		PreviousClose:      round2(quote.PreviousClose),
		PriceChange:        round2(change),
		PriceChangePercent: round2(changePct),
		Industry:           industry,
		Sector:             coalesceStr(fund.Sector, "Unknown"),
		MarketCap:          marketCap,
		Exchange:           quote.Exchange,
		Volume:             quote.Volume,
		AverageVolume:      quote.AverageVolume,
		FiftyTwoWeekLow:    quote.FiftyTwoWeekLow,
		FiftyTwoWeekHigh:   quote.FiftyTwoWeekHigh,
	}, true
}

// buildDetail derives metrics, classification, and insights for the
// single-symbol report.
func buildDetail(quote *models.Quote, candles []models.Candle, fund *models.Fundamentals, news []models.NewsItem) *models.StockDetail {
	detail := &models.StockDetail{
		Symbol:           quote.Symbol,
		Name:             quote.Name,
		CurrentPrice:     quote.CurrentPrice,
		PreviousClose:    quote.PreviousClose,
		Industry:         coalesceStr(fund.Industry, "Unknown"),
		Sector:           coalesceStr(fund.Sector, "Unknown"),
		MarketCap:        fund.MarketCap,
		PERatio:          fund.PERatio,
		Beta:             fund.Beta,
		Summary:          fund.Summary,
		FiftyTwoWeekLow:  quote.FiftyTwoWeekLow,
		FiftyTwoWeekHigh: quote.FiftyTwoWeekHigh,
		News:             news,
	}
	if detail.MarketCap == 0 {
		detail.MarketCap = quote.MarketCap
	}
	if detail.Summary == "" {
		detail.Summary = fmt.Sprintf("No summary available for %s.", detail.Name)
	}
	if detail.News == nil {
		detail.News = []models.NewsItem{}
	}

	input := analysis.InsightInput{MarketCap: detail.MarketCap}

	change, changePct, ok := analysis.PriceChange(quote.CurrentPrice, quote.PreviousClose)
	cls := analysis.Classify(0)
	if ok {
		detail.PriceChange = &change
		detail.PriceChangePercent = &changePct
		input.ChangePct = &changePct
		cls = analysis.Classify(changePct)
	}

	if vol, ok := analysis.Volatility(candles); ok {
		detail.Volatility = &vol
		input.Volatility = &vol
	}
	if vc, ok := analysis.VolumeChange(candles); ok {
		input.VolumeChangePct = &vc
	}

	detail.Sentiment = cls.Sentiment
	detail.RiskLevel = cls.RiskLevel
	detail.Insights = analysis.Insights(input)
	return detail
}

// symbolNews asks the provider first and falls back to the RSS source.
func (s *Service) symbolNews(ctx context.Context, symbol, companyName string) ([]models.NewsItem, error) {
	news, err := s.provider.GetNews(ctx, symbol, newsPerStock)
	if err == nil && len(news) > 0 {
		return news, nil
	}
	if s.rss != nil {
		if rssNews, rssErr := s.rss.SymbolNews(ctx, symbol, companyName, newsPerStock); rssErr == nil && len(rssNews) > 0 {
			return rssNews, nil
		}
	}
	return news, err
}

// --- Helpers ---

// isMissingData distinguishes "the symbol has no data" from transport
// failures. Missing data produces a structured failure envelope.
func isMissingData(err error) bool {
	return errors.Is(err, marketdata.ErrSymbolNotFound) || errors.Is(err, marketdata.ErrNoData)
}

func batches(symbols []string, size int) [][]string {
	if size <= 0 || size >= len(symbols) {
		return [][]string{symbols}
	}
	var out [][]string
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		out = append(out, symbols[start:end])
	}
	return out
}

func coalesceStr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
