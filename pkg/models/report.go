package models

// Sentiment is a heuristic bucket derived from percentage price change.
type Sentiment string

const (
	SentimentBearish         Sentiment = "Bearish"
	SentimentSlightlyBearish Sentiment = "Slightly Bearish"
	SentimentNeutral         Sentiment = "Neutral"
	SentimentSlightlyBullish Sentiment = "Slightly Bullish"
	SentimentBullish         Sentiment = "Bullish"
)

// RiskLevel is a coarse risk bucket derived alongside sentiment.
type RiskLevel string

const (
	RiskMedium     RiskLevel = "Medium"
	RiskMediumHigh RiskLevel = "Medium-High"
	RiskHigh       RiskLevel = "High"
)

// StockDetail is the data payload of a single-symbol report.
type StockDetail struct {
	Symbol             string     `json:"symbol"`
	Name               string     `json:"name"`
	CurrentPrice       float64    `json:"currentPrice"`
	PreviousClose      float64    `json:"previousClose"`
	PriceChange        *float64   `json:"priceChange"`
	PriceChangePercent *float64   `json:"priceChangePercent"`
	Industry           string     `json:"industry"`
	Sector             string     `json:"sector"`
	MarketCap          float64    `json:"marketCap,omitempty"`
	PERatio            float64    `json:"peRatio,omitempty"`
	Beta               float64    `json:"beta,omitempty"`
	Summary            string     `json:"summary,omitempty"`
	Volatility         *float64   `json:"volatility"`
	FiftyTwoWeekLow    float64    `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh   float64    `json:"fiftyTwoWeekHigh"`
	News               []NewsItem `json:"news"`
	Insights           []string   `json:"insights"`
	RiskLevel          RiskLevel  `json:"riskLevel"`
	Sentiment          Sentiment  `json:"sentiment"`
}

// Loser is one entry in a top-losers report: a stock whose price
// declined versus its previous close.
type Loser struct {
	Symbol             string     `json:"symbol"`
	CompanyName        string     `json:"companyName"`
	CurrentPrice       float64    `json:"currentPrice"`
	PreviousClose      float64    `json:"previousClose"`
	PriceChange        float64    `json:"priceChange"`
	PriceChangePercent float64    `json:"priceChangePercent"`
	Industry           string     `json:"industry"`
	Sector             string     `json:"sector"`
	MarketCap          float64    `json:"marketCap"`
	Exchange           string     `json:"exchange"`
	Volume             int64      `json:"volume"`
	AverageVolume      int64      `json:"averageVolume"`
	FiftyTwoWeekLow    float64    `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh   float64    `json:"fiftyTwoWeekHigh"`
	News               []NewsItem `json:"news,omitempty"`
}

// Response is the JSON envelope emitted on stdout for every command.
// Exactly one of Message or Error is set depending on success.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data any) *Response {
	return &Response{Success: true, Message: message, Data: data}
}

// Fail builds a structured failure envelope (missing data for a symbol).
func Fail(message, symbol string) *Response {
	return &Response{Success: false, Message: message, Symbol: symbol}
}

// Errorf builds a provider/system failure envelope.
func Errorf(err error) *Response {
	return &Response{Success: false, Error: err.Error()}
}
