// Package analysis derives metrics, classification labels, and insight
// sentences from raw quote and history data. Everything here is a pure
// function of its inputs; missing optional inputs skip the dependent
// output instead of failing.
package analysis

import (
	"math"

	"stockscope/pkg/models"
)

// PriceChange returns currentPrice − previousClose and the corresponding
// percentage change. ok is false when previousClose is zero or either
// price is absent, in which case both values are undefined.
func PriceChange(currentPrice, previousClose float64) (change, changePct float64, ok bool) {
	if previousClose == 0 || currentPrice == 0 {
		return 0, 0, false
	}
	change = currentPrice - previousClose
	changePct = change / previousClose * 100
	return change, changePct, true
}

// Volatility returns the standard deviation of daily close-to-close
// percentage changes, in percent. It needs more than 5 candles to say
// anything meaningful; ok is false otherwise.
func Volatility(candles []models.Candle) (vol float64, ok bool) {
	if len(candles) <= 5 {
		return 0, false
	}

	var changes []float64
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev == 0 {
			continue
		}
		changes = append(changes, (candles[i].Close-prev)/prev)
	}
	if len(changes) < 2 {
		return 0, false
	}

	mean := 0.0
	for _, c := range changes {
		mean += c
	}
	mean /= float64(len(changes))

	variance := 0.0
	for _, c := range changes {
		d := c - mean
		variance += d * d
	}
	// Sample standard deviation, matching the usual estimator for
	// a series of observed returns.
	variance /= float64(len(changes) - 1)

	return math.Sqrt(variance) * 100, true
}

// VolumeChange returns the percentage difference between the latest
// volume and the average volume over the series. ok is false when the
// series is empty or the average is zero.
func VolumeChange(candles []models.Candle) (pct float64, ok bool) {
	if len(candles) == 0 {
		return 0, false
	}

	var sum int64
	for _, c := range candles {
		sum += c.Volume
	}
	avg := float64(sum) / float64(len(candles))
	if avg == 0 {
		return 0, false
	}

	latest := float64(candles[len(candles)-1].Volume)
	return (latest/avg - 1) * 100, true
}
