package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/siteboard/internal/analytics"
	"github.com/j-veylop/siteboard/internal/models"
	"github.com/j-veylop/siteboard/internal/services"
	"github.com/j-veylop/siteboard/internal/ui/components"
)

// writeOverview prints the cross-website report.
func writeOverview(w io.Writer, list services.WebsiteList) error {
	ov := analytics.Summarize(list.Websites)

	source := "fetched"
	if list.FromCache {
		source = "cached"
	}
	fmt.Fprintf(w, "Websites: %d (%s %s)\n", ov.WebsiteCount, source, humanize.Time(list.FetchedAt))
	fmt.Fprintf(w, "Average conversion: %s\n", components.FormatPercent(ov.AverageConversionRate))
	fmt.Fprintf(w, "Average bounce:     %s\n", components.FormatPercent(ov.AverageBounceRate))
	fmt.Fprintf(w, "Derived views:      %s\n", components.FormatNumber(ov.DerivedViews))

	if len(list.Websites) == 0 {
		_, err := fmt.Fprintln(w, "\nNo websites available")
		return err
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVISITS\tCONVERSION\tBOUNCE")
	for _, site := range list.Websites {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			site.WebsiteID,
			site.DisplayName(),
			components.FormatNumber(site.TotalVisits.Float()),
			components.FormatPercent(site.ConversionPercentage.Float()),
			components.FormatPercent(site.BounceRate.Float()),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(ov.VisitsByDay) > 0 {
		fmt.Fprintf(w, "\nVisits by day (%s → %s): %s\n",
			ov.VisitsByDay[0].Label,
			ov.VisitsByDay[len(ov.VisitsByDay)-1].Label,
			components.RenderSparkline(analytics.Values(ov.VisitsByDay), 60),
		)
	}
	return nil
}

// writeSite prints the single-website report.
func writeSite(w io.Writer, data *models.SingleWebsiteAnalytics, r models.DateRange) error {
	fmt.Fprintf(w, "Website %s · %s\n", data.WebsiteID, r)
	fmt.Fprintf(w, "Total views: %s\n", components.FormatNumber(data.TotalVisits.Float()))
	fmt.Fprintf(w, "Total calls: %s\n", components.FormatNumber(analytics.TotalCalls(data)))

	split := analytics.ConversionBounceSplit(data)
	for _, p := range split {
		fmt.Fprintf(w, "%s: %s\n", p.Label, components.FormatPercent(p.Value))
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BUTTON\tCLICKS")
	breakdown := analytics.ButtonClickBreakdown(data)
	for _, k := range analytics.ButtonKeys {
		fmt.Fprintf(tw, "%s\t%s\n", analytics.ButtonLabel(k), components.FormatNumber(breakdown[k]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	daily := analytics.DailyConversionSeries(data)
	if len(daily) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCONVERSION")
	for _, p := range daily {
		fmt.Fprintf(tw, "%s\t%s\n", p.Label, components.FormatPercent(p.Value))
	}
	return tw.Flush()
}
