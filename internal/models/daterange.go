package models

import "time"

// DateLayout is the calendar day format used on the wire.
const DateLayout = "2006-01-02"

// DateRange bounds a single-website query. An empty range means all-time data.
type DateRange struct {
	Start string
	End   string
}

// IsAllTime reports whether the range carries no bounds.
func (r DateRange) IsAllTime() bool {
	return r.Start == "" || r.End == ""
}

// String returns a display form of the range.
func (r DateRange) String() string {
	if r.IsAllTime() {
		return "All Time"
	}
	return r.Start + " → " + r.End
}

// RangePreset is a quick date-range selection on the website tab.
type RangePreset int

const (
	// RangePreset7Days covers the last 7 days.
	RangePreset7Days RangePreset = iota
	// RangePreset30Days covers the last 30 days.
	RangePreset30Days
	// RangePreset90Days covers the last 90 days.
	RangePreset90Days
)

// String returns the display name for a preset.
func (p RangePreset) String() string {
	switch p {
	case RangePreset7Days:
		return "7 Days"
	case RangePreset30Days:
		return "30 Days"
	case RangePreset90Days:
		return "90 Days"
	default:
		return "Unknown"
	}
}

// Days returns the number of days the preset spans.
func (p RangePreset) Days() int {
	switch p {
	case RangePreset7Days:
		return 7
	case RangePreset30Days:
		return 30
	case RangePreset90Days:
		return 90
	default:
		return 7
	}
}

// Next cycles to the next preset.
func (p RangePreset) Next() RangePreset {
	return (p + 1) % 3
}

// Range returns the preset as a date range ending today.
func (p RangePreset) Range(now time.Time) DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return DateRange{
		Start: today.AddDate(0, 0, -p.Days()).Format(DateLayout),
		End:   today.Format(DateLayout),
	}
}
