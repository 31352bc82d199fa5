package query

import (
	"strings"
	"time"

	"github.com/j-veylop/siteboard/internal/models"
)

// Form holds the user's pending single-website selection.
type Form struct {
	WebsiteID string
	Start     string
	End       string
}

// SelectStart sets the start date and moves the end date to the following day.
// An unparseable date only replaces the start.
func (f *Form) SelectStart(date string) {
	date = strings.TrimSpace(date)
	f.Start = date
	if t, err := parseDate(date); err == nil {
		f.End = t.AddDate(0, 0, 1).Format(models.DateLayout)
	}
}

// SelectEnd sets the end date.
func (f *Form) SelectEnd(date string) {
	f.End = strings.TrimSpace(date)
}

// ApplyPreset fills both dates from a preset relative to now.
func (f *Form) ApplyPreset(p models.RangePreset, now time.Time) {
	r := p.Range(now)
	f.Start, f.End = r.Start, r.End
}

// ClearDates empties the date selection.
func (f *Form) ClearDates() {
	f.Start, f.End = "", ""
}

// Range returns the range to request. All-time ignores the form's dates.
func (f Form) Range(allTime bool) models.DateRange {
	if allTime {
		return models.DateRange{}
	}
	return models.DateRange{Start: f.Start, End: f.End}
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, s, time.Local)
}
