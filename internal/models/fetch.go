package models

import "time"

// FetchKind identifies which backend endpoint a fetch hit.
type FetchKind string

const (
	// FetchWebsites is a website list fetch.
	FetchWebsites FetchKind = "websites"
	// FetchSingleWebsite is a single-website analytics fetch.
	FetchSingleWebsite FetchKind = "single"
)

// FetchRecord is one logged backend request.
type FetchRecord struct {
	Timestamp  time.Time
	Kind       FetchKind
	WebsiteID  string
	StartDate  string
	EndDate    string
	Error      string
	ID         int64
	DurationMs int64
	StatusCode int
}

// Failed reports whether the request ended in an error.
func (r FetchRecord) Failed() bool {
	return r.Error != "" || r.StatusCode >= 400
}

// FetchStats summarizes the fetch log.
type FetchStats struct {
	TotalFetches  int64
	ErrorCount    int64
	AvgDurationMs float64
}

// ErrorRate returns the failed share of fetches in percent.
func (s FetchStats) ErrorRate() float64 {
	if s.TotalFetches == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.TotalFetches) * 100
}
