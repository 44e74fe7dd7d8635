package analytics

import "fmt"

// InsightType classifies an insight for presentation.
type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
)

// Insight is a single human-readable observation about the portfolio.
type Insight struct {
	Type InsightType `json:"type"`
	Text string      `json:"text"`
}

// Insights derives presentation-level observations from an asset snapshot
// and its computed metrics: diversification banding, crypto concentration,
// debt load, and a precious-metals nudge.
func Insights(assets []Asset, m Metrics) []Insight {
	insights := []Insight{}

	score := DiversificationScore(assets)
	switch {
	case score > 70:
		insights = append(insights, Insight{InsightSuccess,
			"Excellent diversification! Your risk is well-spread across asset classes."})
	case score > 40:
		insights = append(insights, Insight{InsightInfo,
			"Fair diversification. Consider adding non-correlated assets like Gold or Bonds."})
	default:
		insights = append(insights, Insight{InsightWarning,
			"Highly concentrated portfolio. You are vulnerable to sector-specific downturns."})
	}

	if m.TotalValue > 0 {
		cryptoRatio := m.AllocationByType[CategoryCrypto].Value / m.TotalValue
		if cryptoRatio > 0.2 {
			insights = append(insights, Insight{InsightWarning,
				fmt.Sprintf("High Crypto exposure (>%.0f%%). Ensure you can handle this level of volatility.", cryptoRatio*100)})
		}
	}

	if gross := m.TotalValue + m.Liabilities; gross > 0 {
		liabilityRatio := m.Liabilities / gross
		if liabilityRatio > 0.5 {
			insights = append(insights, Insight{InsightWarning,
				fmt.Sprintf("Debt-to-Asset ratio is high (%.0f%%). Focus on reducing high-interest liabilities.", liabilityRatio*100)})
		}
	}

	_, hasGold := m.AllocationByType[CategoryGold]
	_, hasSilver := m.AllocationByType[CategorySilver]
	if !hasGold && !hasSilver {
		insights = append(insights, Insight{InsightInfo,
			"No Precious Metals found. Adding 5-10% Gold can hedge against inflation."})
	}

	return insights
}
