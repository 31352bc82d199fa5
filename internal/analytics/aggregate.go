// Package analytics rolls website metrics up into chart-ready series.
//
// Every function here is pure and total: missing histories, nil inputs and
// malformed numbers contribute zero instead of failing the whole aggregation.
package analytics

import (
	"github.com/j-veylop/siteboard/internal/models"
)

// MetricSelector picks the value a daily record contributes to a series.
type MetricSelector func(day models.DailyRecord) float64

// VisitsMetric selects the total visits of a day.
func VisitsMetric(day models.DailyRecord) float64 {
	return day.TotalVisits.Float()
}

// ConversionMetric selects the conversion percentage of a day.
func ConversionMetric(day models.DailyRecord) float64 {
	return day.ConversionPercentage.Float()
}

// AverageConversionRate returns the mean conversion percentage across websites.
func AverageConversionRate(websites []models.WebsiteSummary) float64 {
	if len(websites) == 0 {
		return 0
	}
	total := 0.0
	for i := range websites {
		total += websites[i].ConversionPercentage.Float()
	}
	return total / float64(len(websites))
}

// AverageBounceRate returns the mean bounce rate across websites.
func AverageBounceRate(websites []models.WebsiteSummary) float64 {
	if len(websites) == 0 {
		return 0
	}
	total := 0.0
	for i := range websites {
		total += websites[i].BounceRate.Float()
	}
	return total / float64(len(websites))
}

// SumDerivedViews sums the "views" remainder, 100 - (conversion + bounce), per website.
// The remainder is not clamped and goes negative when upstream percentages exceed 100.
func SumDerivedViews(websites []models.WebsiteSummary) float64 {
	total := 0.0
	for i := range websites {
		w := &websites[i]
		total += 100 - (w.ConversionPercentage.Float() + w.BounceRate.Float())
	}
	return total
}

// AggregateByDay sums the selected metric per date across all websites.
// Points are emitted in the order dates were first encountered.
// Records without a date are skipped.
func AggregateByDay(websites []models.WebsiteSummary, metric MetricSelector) []models.AggregatedPoint {
	totals := make(map[string]int)
	points := make([]models.AggregatedPoint, 0)

	for i := range websites {
		for _, day := range websites[i].History {
			if day.Date == "" {
				continue
			}

			value := 0.0
			if metric != nil {
				value = metric(day)
			}

			idx, ok := totals[day.Date]
			if !ok {
				idx = len(points)
				totals[day.Date] = idx
				points = append(points, models.AggregatedPoint{Label: day.Date})
			}
			points[idx].Value += value
		}
	}

	return points
}

// AggregateVisitsByDay sums total visits per date.
func AggregateVisitsByDay(websites []models.WebsiteSummary) []models.AggregatedPoint {
	return AggregateByDay(websites, VisitsMetric)
}

// AggregateConversionByDay sums conversion percentages per date.
func AggregateConversionByDay(websites []models.WebsiteSummary) []models.AggregatedPoint {
	return AggregateByDay(websites, ConversionMetric)
}

// TopWebsitesByVisits maps each website to its total visits, keeping input order.
func TopWebsitesByVisits(websites []models.WebsiteSummary) []models.AggregatedPoint {
	points := make([]models.AggregatedPoint, len(websites))
	for i := range websites {
		points[i] = models.AggregatedPoint{
			Label: websites[i].WebsiteName,
			Value: websites[i].TotalVisits.Float(),
		}
	}
	return points
}

// Overview bundles every cross-website rollup the overview tab renders.
type Overview struct {
	ConversionByDay       []models.AggregatedPoint
	VisitsByDay           []models.AggregatedPoint
	TopWebsites           []models.AggregatedPoint
	Split                 [2]models.AggregatedPoint
	WebsiteCount          int
	AverageConversionRate float64
	AverageBounceRate     float64
	DerivedViews          float64
}

// Summarize computes all overview rollups in one pass over the list.
func Summarize(websites []models.WebsiteSummary) Overview {
	return Overview{
		WebsiteCount:          len(websites),
		AverageConversionRate: AverageConversionRate(websites),
		AverageBounceRate:     AverageBounceRate(websites),
		DerivedViews:          SumDerivedViews(websites),
		ConversionByDay:       AggregateConversionByDay(websites),
		VisitsByDay:           AggregateVisitsByDay(websites),
		TopWebsites:           TopWebsitesByVisits(websites),
		Split:                 OverviewSplit(websites),
	}
}

// Values extracts the values of a series.
func Values(points []models.AggregatedPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// Labels extracts the labels of a series.
func Labels(points []models.AggregatedPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}
