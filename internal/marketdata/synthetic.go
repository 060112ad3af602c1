package marketdata

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"time"

	"stockscope/pkg/models"
)

// listing is one row of the fixed synthetic ticker table.
type listing struct {
	Symbol   string
	Name     string
	Industry string
	Sector   string
}

// defaultListings is the universe the synthetic provider knows by name.
// Symbols outside this table still resolve, with a generic profile.
var defaultListings = []listing{
	{"AAPL", "Apple Inc.", "Technology", "Consumer Electronics"},
	{"MSFT", "Microsoft Corporation", "Technology", "Software"},
	{"AMZN", "Amazon.com Inc.", "Consumer Cyclical", "Internet Retail"},
	{"GOOGL", "Alphabet Inc.", "Communication Services", "Internet Content & Information"},
	{"TSLA", "Tesla Inc.", "Consumer Cyclical", "Auto Manufacturers"},
	{"NVDA", "NVIDIA Corporation", "Technology", "Semiconductors"},
	{"META", "Meta Platforms Inc.", "Communication Services", "Internet Content & Information"},
	{"NFLX", "Netflix Inc.", "Communication Services", "Entertainment"},
	{"PYPL", "PayPal Holdings Inc.", "Financial Services", "Credit Services"},
	{"INTC", "Intel Corporation", "Technology", "Semiconductors"},
	{"CSCO", "Cisco Systems Inc.", "Technology", "Communication Equipment"},
	{"ADBE", "Adobe Inc.", "Technology", "Software"},
	{"CMCSA", "Comcast Corporation", "Communication Services", "Entertainment"},
	{"PEP", "PepsiCo Inc.", "Consumer Defensive", "Beverages - Non-Alcoholic"},
	{"AVGO", "Broadcom Inc.", "Technology", "Semiconductors"},
	{"TXN", "Texas Instruments Incorporated", "Technology", "Semiconductors"},
	{"COST", "Costco Wholesale Corporation", "Consumer Defensive", "Discount Stores"},
	{"TMUS", "T-Mobile US Inc.", "Communication Services", "Telecom Services"},
	{"DHR", "Danaher Corporation", "Healthcare", "Diagnostics & Research"},
	{"AMAT", "Applied Materials Inc.", "Technology", "Semiconductor Equipment & Materials"},
	{"AMGN", "Amgen Inc.", "Healthcare", "Biotechnology"},
	{"SBUX", "Starbucks Corporation", "Consumer Cyclical", "Restaurants"},
	{"QCOM", "QUALCOMM Incorporated", "Technology", "Semiconductors"},
	{"AMD", "Advanced Micro Devices Inc.", "Technology", "Semiconductors"},
	{"SHOP", "Shopify Inc.", "Technology", "Software - Application"},
	{"UBER", "Uber Technologies, Inc.", "Technology", "Software - Application"},
	{"ZM", "Zoom Video Communications Inc.", "Technology", "Software - Application"},
	{"ROKU", "Roku Inc.", "Communication Services", "Entertainment"},
	{"DDOG", "Datadog Inc.", "Technology", "Software - Application"},
	{"ABNB", "Airbnb Inc.", "Consumer Cyclical", "Travel Services"},
	{"COIN", "Coinbase Global Inc.", "Financial Services", "Financial Data & Stock Exchanges"},
	{"RBLX", "Roblox Corporation", "Communication Services", "Electronic Gaming & Multimedia"},
	{"SQ", "Block Inc.", "Financial Services", "Software - Infrastructure"},
	{"ETSY", "Etsy Inc.", "Consumer Cyclical", "Internet Retail"},
	{"NET", "Cloudflare Inc.", "Technology", "Software - Infrastructure"},
	{"MDB", "MongoDB Inc.", "Technology", "Software - Infrastructure"},
	{"SNOW", "Snowflake Inc.", "Technology", "Software - Infrastructure"},
	{"SOFI", "SoFi Technologies Inc.", "Financial Services", "Credit Services"},
	{"TWLO", "Twilio Inc.", "Technology", "Software - Infrastructure"},
	{"OKTA", "Okta Inc.", "Technology", "Software - Infrastructure"},
	{"ZS", "Zscaler Inc.", "Technology", "Software - Infrastructure"},
	{"FTNT", "Fortinet Inc.", "Technology", "Software - Infrastructure"},
	{"PANW", "Palo Alto Networks Inc.", "Technology", "Software - Infrastructure"},
	{"U", "Unity Software Inc.", "Technology", "Software - Application"},
	{"DOCN", "DigitalOcean Holdings Inc.", "Technology", "Software - Infrastructure"},
	{"DKNG", "DraftKings Inc.", "Consumer Cyclical", "Gambling"},
}

// headlinePool feeds the fabricated news generator.
var headlinePool = []string{
	"%s Reports Q1 Earnings Below Expectations",
	"Analyst Downgrades %s Citing Growth Concerns",
	"%s Faces Increased Competition in Core Markets",
	"Industry Slowdown Impacts %s's Revenue Forecast",
	"%s Announces Restructuring Plan, Shares Drop",
	"Key Executive Departures at %s Worry Investors",
	"%s Delays Product Launch, Stock Falls",
	"Regulatory Scrutiny Weighs on %s",
	"Supply Chain Issues Continue to Impact %s",
	"%s Reduces Full-Year Guidance",
	"Investors React to %s's Disappointing Outlook",
	"Market Selloff Hits %s Shares Hard",
	"%s Faces Margin Pressure Amid Rising Costs",
	"Technical Selloff Continues for %s",
	"Short Sellers Target %s After Recent Earnings",
}

var newsSourcePool = []string{
	"Market Watch", "Financial Times", "Bloomberg", "Reuters",
	"CNBC", "Wall Street Journal", "Investor's Business Daily",
}

// Synthetic implements Provider with fabricated but plausible data.
// All values for a symbol are derived deterministically from the
// provider seed and the symbol, so repeated calls agree with each other
// and tests can pin exact outputs.
type Synthetic struct {
	seed int64
	now  func() time.Time

	mu       sync.Mutex
	profiles map[string]*syntheticProfile
}

// NewSynthetic creates a synthetic provider. The same seed always
// produces the same universe of prices and news.
func NewSynthetic(seed int64) *Synthetic {
	return &Synthetic{
		seed:     seed,
		now:      time.Now,
		profiles: make(map[string]*syntheticProfile),
	}
}

// Name returns the provider name.
func (s *Synthetic) Name() string { return "Synthetic" }

// Symbols returns the synthetic universe, in table order.
func (s *Synthetic) Symbols() []string {
	out := make([]string, len(defaultListings))
	for i, l := range defaultListings {
		out[i] = l.Symbol
	}
	return out
}

// syntheticProfile holds every fabricated fact about one symbol. It is
// computed in a single pass so quote, fundamentals, history, and news
// never contradict each other.
type syntheticProfile struct {
	listing       listing
	currentPrice  float64
	previousClose float64
	volume        int64
	averageVolume int64
	marketCap     float64
	peRatio       float64
	beta          float64
	news          []models.NewsItem
}

// GetQuote fabricates a quote for the symbol. Unknown symbols get a
// generic company profile, never an error.
func (s *Synthetic) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	p := s.profile(symbol)
	return &models.Quote{
		Symbol:           p.listing.Symbol,
		Name:             p.listing.Name,
		Exchange:         "NASDAQ",
		CurrentPrice:     p.currentPrice,
		PreviousClose:    p.previousClose,
		Volume:           p.volume,
		AverageVolume:    p.averageVolume,
		MarketCap:        p.marketCap,
		FiftyTwoWeekLow:  p.currentPrice * 0.7,
		FiftyTwoWeekHigh: p.currentPrice * 1.3,
		Timestamp:        s.now(),
	}, nil
}

// GetHistory fabricates a daily random walk ending at the current price.
func (s *Synthetic) GetHistory(_ context.Context, symbol string, period models.Period) ([]models.Candle, error) {
	p := s.profile(symbol)
	days := periodDays(period)

	rng := s.rng(symbol + ":history")
	today := s.now().Truncate(24 * time.Hour)

	// Walk backwards from the current price so the last candle matches
	// the quote.
	closes := make([]float64, days)
	closes[days-1] = p.currentPrice
	for i := days - 2; i >= 0; i-- {
		move := 1 + (rng.Float64()-0.5)*0.04 // ±2% daily
		closes[i] = closes[i+1] * move
	}

	candles := make([]models.Candle, days)
	for i := range candles {
		c := closes[i]
		candles[i] = models.Candle{
			Timestamp: today.AddDate(0, 0, i-days+1),
			Open:      c * (1 + (rng.Float64()-0.5)*0.01),
			High:      c * (1 + rng.Float64()*0.01),
			Low:       c * (1 - rng.Float64()*0.01),
			Close:     c,
			Volume:    1_000_000 + rng.Int63n(49_000_000),
		}
	}
	candles[days-1].Volume = p.volume
	return candles, nil
}

// GetFundamentals fabricates the company profile.
func (s *Synthetic) GetFundamentals(_ context.Context, symbol string) (*models.Fundamentals, error) {
	p := s.profile(symbol)
	summary := fmt.Sprintf("%s operates in the %s industry within the %s sector.",
		p.listing.Name, p.listing.Industry, p.listing.Sector)
	if p.listing.Industry == "Various" {
		summary = fmt.Sprintf("Information for %s is limited. This company operates in various sectors and markets.",
			p.listing.Symbol)
	}
	return &models.Fundamentals{
		Symbol:    p.listing.Symbol,
		Industry:  p.listing.Industry,
		Sector:    p.listing.Sector,
		MarketCap: p.marketCap,
		PERatio:   p.peRatio,
		Beta:      p.beta,
		Summary:   summary,
	}, nil
}

// GetNews returns fabricated news items from the headline pool.
func (s *Synthetic) GetNews(_ context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	p := s.profile(symbol)
	items := p.news
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// --- Internals ---

// profile returns the memoized fabricated profile for a symbol.
func (s *Synthetic) profile(symbol string) *syntheticProfile {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[symbol]; ok {
		return p
	}

	l, known := lookupListing(symbol)
	if !known {
		l = listing{
			Symbol:   symbol,
			Name:     symbol + " Corporation",
			Industry: "Various",
			Sector:   "Various",
		}
	}

	rng := s.rng(symbol)

	// Derivation order is fixed: changing it changes every downstream
	// value for existing seeds.
	changePct := -15 + rng.Float64()*25 // −15% .. +10%
	price := 10 + rng.Float64()*490
	p := &syntheticProfile{
		listing:       l,
		currentPrice:  price,
		previousClose: price / (1 + changePct/100),
		volume:        1_000_000 + rng.Int63n(49_000_000),
		averageVolume: 2_000_000 + rng.Int63n(98_000_000),
		marketCap:     1e9 + rng.Float64()*(2e12-1e9),
		peRatio:       15 + rng.Float64()*25,
		beta:          0.8 + rng.Float64()*0.7,
	}
	p.news = s.fabricateNews(rng, l)

	s.profiles[symbol] = p
	return p
}

func (s *Synthetic) fabricateNews(rng *rand.Rand, l listing) []models.NewsItem {
	count := 2 + rng.Intn(4) // 2..5

	order := rng.Perm(len(headlinePool))
	today := s.now()

	items := make([]models.NewsItem, 0, count)
	for i := 0; i < count && i < len(order); i++ {
		daysAgo := 1 + rng.Intn(10)
		items = append(items, models.NewsItem{
			Title:       fmt.Sprintf(headlinePool[order[i]], l.Name),
			URL:         fmt.Sprintf("https://finance.example.com/news/%s-%d", strings.ToLower(l.Symbol), i),
			PublishedAt: today.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
			Source:      newsSourcePool[rng.Intn(len(newsSourcePool))],
		})
	}
	return items
}

// rng builds a deterministic per-symbol random source.
func (s *Synthetic) rng(key string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(key))
	return rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))
}

func lookupListing(symbol string) (listing, bool) {
	for _, l := range defaultListings {
		if l.Symbol == symbol {
			return l, true
		}
	}
	return listing{}, false
}

func periodDays(period models.Period) int {
	switch period {
	case models.Period2Days:
		return 2
	case models.Period1Week:
		return 5
	case models.Period1Year:
		return 252
	default: // Period1Month
		return 22
	}
}
