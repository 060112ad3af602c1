package analysis

import "stockscope/pkg/models"

// Classification pairs the sentiment and risk buckets derived from a
// percentage price change.
type Classification struct {
	Sentiment models.Sentiment
	RiskLevel models.RiskLevel
}

// Classify maps a percentage price change onto sentiment and risk buckets.
// The comparisons are strict and evaluated in this order, first match wins:
//
//	< −5  → Bearish / High
//	< −2  → Slightly Bearish / Medium-High
//	> +5  → Bullish / Medium-High
//	> +2  → Slightly Bullish / Medium
//	else  → Neutral / Medium
//
// Exact boundary values (−5, −2, 2, 5) therefore fall into the band
// closer to Neutral: −5 is Slightly Bearish, −2 and 2 are Neutral,
// 5 is Slightly Bullish.
func Classify(changePct float64) Classification {
	switch {
	case changePct < -5:
		return Classification{models.SentimentBearish, models.RiskHigh}
	case changePct < -2:
		return Classification{models.SentimentSlightlyBearish, models.RiskMediumHigh}
	case changePct > 5:
		return Classification{models.SentimentBullish, models.RiskMediumHigh}
	case changePct > 2:
		return Classification{models.SentimentSlightlyBullish, models.RiskMedium}
	default:
		return Classification{models.SentimentNeutral, models.RiskMedium}
	}
}
