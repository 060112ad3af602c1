package analysis

import (
	"math"
	"testing"
	"time"

	"stockscope/pkg/models"
)

func TestPriceChange(t *testing.T) {
	tests := []struct {
		name          string
		current, prev float64
		wantChange    float64
		wantPct       float64
		wantOK        bool
	}{
		{"gain", 110, 100, 10, 10.0, true},
		{"loss", 95, 100, -5, -5.0, true},
		{"flat", 100, 100, 0, 0, true},
		{"zero previous close", 110, 0, 0, 0, false},
		{"zero current price", 0, 100, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, pct, ok := PriceChange(tt.current, tt.prev)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if change != tt.wantChange {
				t.Errorf("change = %v, want %v", change, tt.wantChange)
			}
			if pct != tt.wantPct {
				t.Errorf("pct = %v, want %v", pct, tt.wantPct)
			}
		})
	}
}

func TestPriceChangeExactArithmetic(t *testing.T) {
	// The percentage must be exactly (current − prev)/prev × 100,
	// not a rounded approximation.
	current, prev := 123.45, 118.20
	_, pct, ok := PriceChange(current, prev)
	if !ok {
		t.Fatal("expected ok")
	}
	want := (current - prev) / prev * 100
	if pct != want {
		t.Errorf("pct = %v, want %v", pct, want)
	}
}

func candleSeries(closes []float64, volumes []int64) []models.Candle {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Close:     c,
		}
		if i < len(volumes) {
			candles[i].Volume = volumes[i]
		}
	}
	return candles
}

func TestVolatilityNeedsEnoughCandles(t *testing.T) {
	candles := candleSeries([]float64{100, 101, 102, 103, 104}, nil)
	if _, ok := Volatility(candles); ok {
		t.Error("expected not ok for 5 candles")
	}
	if _, ok := Volatility(nil); ok {
		t.Error("expected not ok for nil")
	}
}

func TestVolatilityConstantSeries(t *testing.T) {
	candles := candleSeries([]float64{100, 100, 100, 100, 100, 100, 100}, nil)
	vol, ok := Volatility(candles)
	if !ok {
		t.Fatal("expected ok")
	}
	if vol != 0 {
		t.Errorf("vol = %v, want 0 for constant prices", vol)
	}
}

func TestVolatilityKnownSeries(t *testing.T) {
	// Alternating ±1% daily moves: stddev of the returns is close to 1%.
	candles := candleSeries([]float64{100, 101, 99.99, 100.99, 99.98, 100.98, 99.97}, nil)
	vol, ok := Volatility(candles)
	if !ok {
		t.Fatal("expected ok")
	}
	if vol < 0.5 || vol > 1.5 {
		t.Errorf("vol = %v, want roughly 1.0", vol)
	}
	if math.IsNaN(vol) {
		t.Error("vol is NaN")
	}
}

func TestVolumeChange(t *testing.T) {
	// Average of 100, 100, 400 is 200; latest 400 → +100%.
	candles := candleSeries(
		[]float64{1, 1, 1},
		[]int64{100, 100, 400},
	)
	pct, ok := VolumeChange(candles)
	if !ok {
		t.Fatal("expected ok")
	}
	if math.Abs(pct-100) > 1e-9 {
		t.Errorf("pct = %v, want 100", pct)
	}
}

func TestVolumeChangeUnavailable(t *testing.T) {
	if _, ok := VolumeChange(nil); ok {
		t.Error("expected not ok for empty series")
	}
	candles := candleSeries([]float64{1, 1}, []int64{0, 0})
	if _, ok := VolumeChange(candles); ok {
		t.Error("expected not ok for zero average volume")
	}
}
