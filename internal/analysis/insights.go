package analysis

import "fmt"

// Market-cap bucket boundaries, in USD.
const (
	largeCapFloor   = 200_000_000_000
	smallCapCeiling = 2_000_000_000
)

// minInsights is the floor guaranteed whenever price data is present.
const minInsights = 3

// genericInsights pads the list up to the floor when too few signal
// rules fired. Order matters: they are appended in this order.
var genericInsights = []string{
	"Consider monitoring this stock's performance relative to its sector and broader market trends.",
	"Review recent earnings reports and guidance before making investment decisions.",
	"Compare valuation metrics against industry peers for additional context.",
}

// InsightInput carries the optional signals the insight rules inspect.
// A nil pointer (or zero MarketCap) means the signal is unavailable and
// its rule is skipped.
type InsightInput struct {
	ChangePct       *float64
	VolumeChangePct *float64
	Volatility      *float64
	MarketCap       float64
}

// Insights generates templated insight sentences from the available
// signals. Each rule inspects one signal independently; evaluation order
// is fixed and determines output order. When fewer than three insights
// accumulate, generic sentences pad the list to the floor.
func Insights(in InsightInput) []string {
	var insights []string

	if in.ChangePct != nil {
		pct := *in.ChangePct
		if pct < 0 {
			insights = append(insights, fmt.Sprintf(
				"The stock has declined %.2f%% recently, which may indicate selling pressure.", -pct))
		} else {
			insights = append(insights, fmt.Sprintf(
				"The stock has increased %.2f%% recently, which may indicate buying interest.", pct))
		}
	}

	if in.VolumeChangePct != nil {
		switch vc := *in.VolumeChangePct; {
		case vc > 50:
			insights = append(insights, fmt.Sprintf(
				"Trading volume is up significantly (%.2f%%), indicating increased investor interest.", vc))
		case vc < -30:
			insights = append(insights, fmt.Sprintf(
				"Trading volume is down (%.2f%%), which may indicate decreased investor interest.", -vc))
		}
	}

	if in.Volatility != nil {
		switch vol := *in.Volatility; {
		case vol > 3:
			insights = append(insights, fmt.Sprintf(
				"The stock shows high volatility (%.2f%%), suggesting potential for large price swings.", vol))
		case vol < 1:
			insights = append(insights, fmt.Sprintf(
				"The stock shows low volatility (%.2f%%), suggesting more stable price movement.", vol))
		}
	}

	switch {
	case in.MarketCap > largeCapFloor:
		insights = append(insights,
			"This is a large-cap stock, which typically offers more stability but potentially lower growth.")
	case in.MarketCap > 0 && in.MarketCap < smallCapCeiling:
		insights = append(insights,
			"This is a small-cap stock, which typically offers higher growth potential but more risk.")
	}

	for i := 0; len(insights) < minInsights && i < len(genericInsights); i++ {
		insights = append(insights, genericInsights[i])
	}

	return insights
}
