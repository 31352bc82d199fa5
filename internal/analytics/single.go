package analytics

import (
	"github.com/j-veylop/siteboard/internal/models"
)

// CallButtonKey is the button key that represents a call action.
const CallButtonKey = 5

// ButtonKeys are the fixed button identifiers reported by the backend.
var ButtonKeys = [...]int{1, 2, 3, 4, 5}

// Split labels.
const (
	ConversionRateLabel = "Conversion rate"
	BounceRateLabel     = "Bounce rate"
)

// ConversionBounceSplit returns the two-entry conversion/bounce series.
func ConversionBounceSplit(data *models.SingleWebsiteAnalytics) [2]models.AggregatedPoint {
	split := [2]models.AggregatedPoint{
		{Label: ConversionRateLabel},
		{Label: BounceRateLabel},
	}
	if data == nil {
		return split
	}
	split[0].Value = data.ConversionPercentage.Float()
	split[1].Value = data.BounceRate.Float()
	return split
}

// OverviewSplit returns the conversion/bounce series averaged across websites.
func OverviewSplit(websites []models.WebsiteSummary) [2]models.AggregatedPoint {
	return [2]models.AggregatedPoint{
		{Label: ConversionRateLabel, Value: AverageConversionRate(websites)},
		{Label: BounceRateLabel, Value: AverageBounceRate(websites)},
	}
}

// DailyConversionSeries maps the history to date/conversion points in history order.
func DailyConversionSeries(data *models.SingleWebsiteAnalytics) []models.AggregatedPoint {
	if data == nil {
		return []models.AggregatedPoint{}
	}
	points := make([]models.AggregatedPoint, len(data.History))
	for i, day := range data.History {
		points[i] = models.AggregatedPoint{
			Label: day.Date,
			Value: day.ConversionPercentage.Float(),
		}
	}
	return points
}

// ButtonClickBreakdown returns counts for every button key; missing keys are 0.
func ButtonClickBreakdown(data *models.SingleWebsiteAnalytics) map[int]float64 {
	breakdown := make(map[int]float64, len(ButtonKeys))
	for _, k := range ButtonKeys {
		breakdown[k] = 0
		if data != nil && data.ButtonClicks != nil {
			breakdown[k] = data.ButtonClicks[k]
		}
	}
	return breakdown
}

// TotalCalls returns the click count of the call button.
func TotalCalls(data *models.SingleWebsiteAnalytics) float64 {
	return ButtonClickBreakdown(data)[CallButtonKey]
}

// ButtonLabel returns the display label of a button key.
func ButtonLabel(key int) string {
	switch key {
	case 1:
		return "Q1 (Yes)"
	case 2:
		return "Q1 (No)"
	case 3:
		return "Q2 (Yes)"
	case 4:
		return "Q2 (No)"
	case CallButtonKey:
		return "Call"
	default:
		return "Unknown"
	}
}
