package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stockscope/internal/infra"
	"stockscope/pkg/models"
)

// defaultYahooBaseURL serves the v8 chart, v10 quoteSummary, and
// v1 search endpoints. No API key or crumb is required for these.
const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// Yahoo implements Provider against the Yahoo Finance public JSON APIs.
type Yahoo struct {
	baseURL string
	cache   *infra.Cache
	limiter *infra.RateLimiter
}

// YahooOptions tunes the provider. Zero values fall back to defaults.
type YahooOptions struct {
	BaseURL       string
	RatePerSecond int
	CacheTTL      time.Duration
}

// NewYahoo creates a Yahoo Finance provider with default endpoints.
func NewYahoo() *Yahoo {
	return NewYahooWithOptions(YahooOptions{})
}

// NewYahooWithBaseURL creates a provider against a custom base URL.
// Tests point this at an httptest server.
func NewYahooWithBaseURL(baseURL string) *Yahoo {
	return NewYahooWithOptions(YahooOptions{BaseURL: baseURL})
}

// NewYahooWithOptions creates a provider with explicit tuning.
func NewYahooWithOptions(opts YahooOptions) *Yahoo {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYahooBaseURL
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 5
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &Yahoo{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		cache:   infra.NewCache(opts.CacheTTL),
		limiter: infra.NewRateLimiter(opts.RatePerSecond, time.Second),
	}
}

// Name returns the provider name.
func (y *Yahoo) Name() string { return "Yahoo Finance" }

// Symbols returns the default large-cap scan universe, used by the
// losers screen when no universe is configured.
func (y *Yahoo) Symbols() []string {
	out := make([]string, len(defaultListings))
	for i, l := range defaultListings {
		out[i] = l.Symbol
	}
	return out
}

// --- Yahoo Finance response types ---

// yfVal is Yahoo's formatted-number wrapper: {"raw": 123.4, "fmt": "123.40"}.
type yfVal struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yfQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yfQuoteSummaryResult `json:"result"`
		Error  *yfError               `json:"error"`
	} `json:"quoteSummary"`
}

type yfQuoteSummaryResult struct {
	Price         *yfPrice         `json:"price"`
	SummaryDetail *yfSummaryDetail `json:"summaryDetail"`
	AssetProfile  *yfAssetProfile  `json:"assetProfile"`
}

type yfPrice struct {
	Symbol                     string `json:"symbol"`
	ShortName                  string `json:"shortName"`
	LongName                   string `json:"longName"`
	ExchangeName               string `json:"exchangeName"`
	RegularMarketPrice         yfVal  `json:"regularMarketPrice"`
	RegularMarketPreviousClose yfVal  `json:"regularMarketPreviousClose"`
	RegularMarketOpen          yfVal  `json:"regularMarketOpen"`
	RegularMarketDayHigh       yfVal  `json:"regularMarketDayHigh"`
	RegularMarketDayLow        yfVal  `json:"regularMarketDayLow"`
	RegularMarketVolume        yfVal  `json:"regularMarketVolume"`
	MarketCap                  yfVal  `json:"marketCap"`
	RegularMarketTime          int64  `json:"regularMarketTime"`
}

type yfSummaryDetail struct {
	PreviousClose    yfVal `json:"previousClose"`
	AverageVolume    yfVal `json:"averageVolume"`
	FiftyTwoWeekLow  yfVal `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh yfVal `json:"fiftyTwoWeekHigh"`
	TrailingPE       yfVal `json:"trailingPE"`
	Beta             yfVal `json:"beta"`
	MarketCap        yfVal `json:"marketCap"`
}

type yfAssetProfile struct {
	Industry            string `json:"industry"`
	Sector              string `json:"sector"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []yfOHLCV `json:"quote"`
	} `json:"indicators"`
}

type yfOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type yfSearchResponse struct {
	News []yfSearchNews `json:"news"`
}

type yfSearchNews struct {
	Title               string `json:"title"`
	Publisher           string `json:"publisher"`
	Link                string `json:"link"`
	ProviderPublishTime int64  `json:"providerPublishTime"`
}

// --- Provider implementation ---

// GetQuote returns the latest quote assembled from the price and
// summaryDetail modules of the quoteSummary endpoint.
func (y *Yahoo) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	cacheKey := "quote:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.Quote), nil
	}

	result, err := y.quoteSummary(ctx, symbol, "price,summaryDetail")
	if err != nil {
		return nil, err
	}
	if result.Price == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	p := result.Price
	quote := &models.Quote{
		Symbol:        strings.ToUpper(symbol),
		Name:          coalesce(p.LongName, p.ShortName, symbol),
		Exchange:      p.ExchangeName,
		CurrentPrice:  p.RegularMarketPrice.Raw,
		PreviousClose: p.RegularMarketPreviousClose.Raw,
		Open:          p.RegularMarketOpen.Raw,
		DayHigh:       p.RegularMarketDayHigh.Raw,
		DayLow:        p.RegularMarketDayLow.Raw,
		Volume:        int64(p.RegularMarketVolume.Raw),
		MarketCap:     p.MarketCap.Raw,
	}
	if p.RegularMarketTime > 0 {
		quote.Timestamp = time.Unix(p.RegularMarketTime, 0)
	} else {
		quote.Timestamp = time.Now()
	}
	if sd := result.SummaryDetail; sd != nil {
		quote.AverageVolume = int64(sd.AverageVolume.Raw)
		quote.FiftyTwoWeekLow = sd.FiftyTwoWeekLow.Raw
		quote.FiftyTwoWeekHigh = sd.FiftyTwoWeekHigh.Raw
		if quote.PreviousClose == 0 {
			quote.PreviousClose = sd.PreviousClose.Raw
		}
		if quote.MarketCap == 0 {
			quote.MarketCap = sd.MarketCap.Raw
		}
	}

	if quote.CurrentPrice == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	y.cache.Set(cacheKey, quote)
	return quote, nil
}

// GetHistory returns daily candles from the v8 chart endpoint.
func (y *Yahoo) GetHistory(ctx context.Context, symbol string, period models.Period) ([]models.Candle, error) {
	cacheKey := fmt.Sprintf("hist:%s:%s", symbol, period)
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.([]models.Candle), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		y.baseURL, url.PathEscape(strings.ToUpper(symbol)), period)

	var resp yfChartResponse
	if err := infra.FetchJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	candles := parseCandles(resp.Chart.Result[0])
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	y.cache.SetWithTTL(cacheKey, candles, 15*time.Minute)
	return candles, nil
}

// GetFundamentals returns the company profile from the assetProfile and
// summaryDetail modules.
func (y *Yahoo) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	cacheKey := "fund:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(*models.Fundamentals), nil
	}

	result, err := y.quoteSummary(ctx, symbol, "assetProfile,summaryDetail")
	if err != nil {
		return nil, err
	}

	fund := &models.Fundamentals{Symbol: strings.ToUpper(symbol)}
	if ap := result.AssetProfile; ap != nil {
		fund.Industry = ap.Industry
		fund.Sector = ap.Sector
		fund.Summary = ap.LongBusinessSummary
	}
	if sd := result.SummaryDetail; sd != nil {
		fund.MarketCap = sd.MarketCap.Raw
		fund.PERatio = sd.TrailingPE.Raw
		fund.Beta = sd.Beta.Raw
	}

	y.cache.SetWithTTL(cacheKey, fund, time.Hour)
	return fund, nil
}

// GetNews returns recent symbol news from the v1 search endpoint.
func (y *Yahoo) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = 5
	}

	cacheKey := fmt.Sprintf("news:%s:%d", symbol, limit)
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.([]models.NewsItem), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=0&newsCount=%d",
		y.baseURL, url.QueryEscape(strings.ToUpper(symbol)), limit)

	var resp yfSearchResponse
	if err := infra.FetchJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yahoo news %s: %w", symbol, err)
	}

	items := make([]models.NewsItem, 0, len(resp.News))
	for _, n := range resp.News {
		item := models.NewsItem{
			Title:  n.Title,
			URL:    n.Link,
			Source: coalesce(n.Publisher, "Yahoo Finance"),
		}
		if n.ProviderPublishTime > 0 {
			item.PublishedAt = time.Unix(n.ProviderPublishTime, 0).UTC().Format("2006-01-02 15:04:05")
		}
		items = append(items, item)
		if len(items) >= limit {
			break
		}
	}

	y.cache.SetWithTTL(cacheKey, items, 10*time.Minute)
	return items, nil
}

// --- Helpers ---

// quoteSummary calls the v10 quoteSummary endpoint with the given modules.
func (y *Yahoo) quoteSummary(ctx context.Context, symbol, modules string) (*yfQuoteSummaryResult, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		y.baseURL, url.PathEscape(strings.ToUpper(symbol)), url.QueryEscape(modules))

	var resp yfQuoteSummaryResponse
	if err := infra.FetchJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", symbol, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	return &resp.QuoteSummary.Result[0], nil
}

func parseCandles(result yfChartResult) []models.Candle {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	q := result.Indicators.Quote[0]
	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := models.Candle{Timestamp: time.Unix(ts, 0)}
		if i < len(q.Open) && q.Open[i] != nil {
			c.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			c.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			c.Low = *q.Low[i]
		}
		if i < len(q.Close) && q.Close[i] != nil {
			c.Close = *q.Close[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			c.Volume = *q.Volume[i]
		}
		candles = append(candles, c)
	}
	return candles
}

// coalesce returns the first non-blank string.
func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
