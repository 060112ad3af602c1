package marketdata

import (
	"context"
	"math"
	"testing"

	"stockscope/pkg/models"
)

func TestSyntheticDeterministic(t *testing.T) {
	ctx := context.Background()
	a := NewSynthetic(42)
	b := NewSynthetic(42)

	qa, err := a.GetQuote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	qb, _ := b.GetQuote(ctx, "AAPL")

	if qa.CurrentPrice != qb.CurrentPrice || qa.PreviousClose != qb.PreviousClose {
		t.Errorf("same seed must produce same prices: %v/%v vs %v/%v",
			qa.CurrentPrice, qa.PreviousClose, qb.CurrentPrice, qb.PreviousClose)
	}

	na, _ := a.GetNews(ctx, "AAPL", 5)
	nb, _ := b.GetNews(ctx, "AAPL", 5)
	if len(na) != len(nb) {
		t.Fatalf("news counts differ: %d vs %d", len(na), len(nb))
	}
	for i := range na {
		if na[i].Title != nb[i].Title {
			t.Errorf("news[%d] differs: %q vs %q", i, na[i].Title, nb[i].Title)
		}
	}
}

func TestSyntheticKnownSymbol(t *testing.T) {
	s := NewSynthetic(1)
	quote, err := s.GetQuote(context.Background(), "msft")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if quote.Symbol != "MSFT" {
		t.Errorf("symbol = %s, want MSFT", quote.Symbol)
	}
	if quote.Name != "Microsoft Corporation" {
		t.Errorf("name = %s", quote.Name)
	}
	if quote.CurrentPrice <= 0 || quote.PreviousClose <= 0 {
		t.Errorf("prices must be positive: %v / %v", quote.CurrentPrice, quote.PreviousClose)
	}
}

func TestSyntheticUnknownSymbolNeverErrors(t *testing.T) {
	s := NewSynthetic(1)
	quote, err := s.GetQuote(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("unknown symbol must not error: %v", err)
	}
	if quote.Name != "ZZZZ Corporation" {
		t.Errorf("name = %s, want generic", quote.Name)
	}

	fund, err := s.GetFundamentals(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("GetFundamentals: %v", err)
	}
	if fund.Industry != "Various" {
		t.Errorf("industry = %s, want Various", fund.Industry)
	}
}

func TestSyntheticFiftyTwoWeekRange(t *testing.T) {
	s := NewSynthetic(7)
	quote, _ := s.GetQuote(context.Background(), "NVDA")

	wantLow := quote.CurrentPrice * 0.7
	wantHigh := quote.CurrentPrice * 1.3
	if math.Abs(quote.FiftyTwoWeekLow-wantLow) > 1e-9 {
		t.Errorf("52w low = %v, want %v", quote.FiftyTwoWeekLow, wantLow)
	}
	if math.Abs(quote.FiftyTwoWeekHigh-wantHigh) > 1e-9 {
		t.Errorf("52w high = %v, want %v", quote.FiftyTwoWeekHigh, wantHigh)
	}
}

func TestSyntheticQuoteAndFundamentalsAgree(t *testing.T) {
	s := NewSynthetic(3)
	ctx := context.Background()
	quote, _ := s.GetQuote(ctx, "TSLA")
	fund, _ := s.GetFundamentals(ctx, "TSLA")
	if quote.MarketCap != fund.MarketCap {
		t.Errorf("market caps disagree: quote %v, fundamentals %v", quote.MarketCap, fund.MarketCap)
	}
}

func TestSyntheticHistoryEndsAtCurrentPrice(t *testing.T) {
	s := NewSynthetic(9)
	ctx := context.Background()
	quote, _ := s.GetQuote(ctx, "AMZN")
	candles, err := s.GetHistory(ctx, "AMZN", models.Period1Month)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(candles) != 22 {
		t.Fatalf("len = %d, want 22 for 1mo", len(candles))
	}
	last := candles[len(candles)-1]
	if last.Close != quote.CurrentPrice {
		t.Errorf("last close = %v, want quote price %v", last.Close, quote.CurrentPrice)
	}
	for i := 1; i < len(candles); i++ {
		if !candles[i].Timestamp.After(candles[i-1].Timestamp) {
			t.Fatalf("timestamps not strictly increasing at %d", i)
		}
	}
}

func TestSyntheticHistoryPeriods(t *testing.T) {
	s := NewSynthetic(9)
	tests := []struct {
		period models.Period
		want   int
	}{
		{models.Period2Days, 2},
		{models.Period1Week, 5},
		{models.Period1Month, 22},
		{models.Period1Year, 252},
	}
	for _, tt := range tests {
		candles, err := s.GetHistory(context.Background(), "AAPL", tt.period)
		if err != nil {
			t.Fatalf("GetHistory(%s): %v", tt.period, err)
		}
		if len(candles) != tt.want {
			t.Errorf("period %s: len = %d, want %d", tt.period, len(candles), tt.want)
		}
	}
}

func TestSyntheticNewsShape(t *testing.T) {
	s := NewSynthetic(11)
	news, err := s.GetNews(context.Background(), "META", 0)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(news) < 2 || len(news) > 5 {
		t.Fatalf("news count = %d, want 2..5", len(news))
	}
	for _, item := range news {
		if item.Title == "" || item.URL == "" || item.Source == "" || item.PublishedAt == "" {
			t.Errorf("incomplete news item: %+v", item)
		}
	}

	limited, _ := s.GetNews(context.Background(), "META", 1)
	if len(limited) != 1 {
		t.Errorf("limited len = %d, want 1", len(limited))
	}
}

func TestSyntheticSymbolsUniverse(t *testing.T) {
	s := NewSynthetic(1)
	symbols := s.Symbols()
	if len(symbols) != len(defaultListings) {
		t.Fatalf("len = %d, want %d", len(symbols), len(defaultListings))
	}
	if symbols[0] != "AAPL" {
		t.Errorf("first symbol = %s, want AAPL (table order)", symbols[0])
	}
}
