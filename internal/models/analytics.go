// Package models defines data structures and domain types.
package models

// DailyRecord is one day of metrics for a single website.
type DailyRecord struct {
	Date                 string `json:"date"`
	TotalVisits          Number `json:"totalVisits"`
	ConversionPercentage Number `json:"conversionPercentage"`
}

// WebsiteSummary is the per-website entry of the website listing.
type WebsiteSummary struct {
	WebsiteID            string  `json:"websiteId"`
	WebsiteName          string  `json:"websiteName"`
	History              History `json:"history"`
	ConversionPercentage Number  `json:"conversionPercentage"`
	BounceRate           Number  `json:"bounceRate"`
	TotalVisits          Number  `json:"totalVisits"`
}

// DisplayName returns the website name, falling back to its ID.
func (w WebsiteSummary) DisplayName() string {
	if w.WebsiteName != "" {
		return w.WebsiteName
	}
	return "Website " + w.WebsiteID
}

// SingleWebsiteAnalytics is the result of a single-website query.
type SingleWebsiteAnalytics struct {
	WebsiteID            string       `json:"websiteId"`
	ButtonClicks         ButtonClicks `json:"buttonClicks"`
	History              History      `json:"history"`
	ConversionPercentage Number       `json:"conversionPercentage"`
	BounceRate           Number       `json:"bounceRate"`
	TotalVisits          Number       `json:"totalVisits"`
}

// AggregatedPoint is the uniform shape of every chart-ready series.
type AggregatedPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// WebsiteListResponse is the envelope returned by the website listing endpoint.
type WebsiteListResponse struct {
	Data    []WebsiteSummary `json:"data"`
	Success bool             `json:"success"`
}

// SingleWebsiteResponse is the envelope returned by the single-website endpoint.
type SingleWebsiteResponse struct {
	Data    *SingleWebsiteAnalytics `json:"data"`
	Success bool                    `json:"success"`
}
