package models

import (
	"bytes"
	"encoding/json"
)

// History is a website's daily records in backend order.
// Entries that are not objects are dropped while decoding.
type History []DailyRecord

// UnmarshalJSON never returns an error. Anything but an array decodes to nil.
func (h *History) UnmarshalJSON(data []byte) error {
	*h = nil

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil
	}

	out := make(History, 0, len(raw))
	for _, item := range raw {
		if !isObject(item) {
			continue
		}
		var rec DailyRecord
		_ = json.Unmarshal(item, &rec)
		out = append(out, rec)
	}
	*h = out
	return nil
}

type dailyRecordWire struct {
	Date                 json.RawMessage `json:"date"`
	TotalVisits          Number          `json:"totalVisits"`
	ConversionPercentage Number          `json:"conversionPercentage"`
}

// UnmarshalJSON decodes leniently: a non-string date keeps its literal text.
func (d *DailyRecord) UnmarshalJSON(data []byte) error {
	*d = DailyRecord{}

	var w dailyRecordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil
	}
	*d = DailyRecord{
		Date:                 lenientString(w.Date),
		TotalVisits:          w.TotalVisits,
		ConversionPercentage: w.ConversionPercentage,
	}
	return nil
}

type websiteSummaryWire struct {
	WebsiteID            json.RawMessage `json:"websiteId"`
	WebsiteName          json.RawMessage `json:"websiteName"`
	History              History         `json:"history"`
	ConversionPercentage Number          `json:"conversionPercentage"`
	BounceRate           Number          `json:"bounceRate"`
	TotalVisits          Number          `json:"totalVisits"`
}

// UnmarshalJSON decodes leniently. A record that is not an object becomes
// the zero summary, which every aggregate counts as zero.
func (w *WebsiteSummary) UnmarshalJSON(data []byte) error {
	*w = WebsiteSummary{}

	var wire websiteSummaryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}
	*w = WebsiteSummary{
		WebsiteID:            lenientString(wire.WebsiteID),
		WebsiteName:          lenientString(wire.WebsiteName),
		History:              wire.History,
		ConversionPercentage: wire.ConversionPercentage,
		BounceRate:           wire.BounceRate,
		TotalVisits:          wire.TotalVisits,
	}
	return nil
}

type singleWebsiteWire struct {
	WebsiteID            json.RawMessage `json:"websiteId"`
	ButtonClicks         ButtonClicks    `json:"buttonClicks"`
	History              History         `json:"history"`
	ConversionPercentage Number          `json:"conversionPercentage"`
	BounceRate           Number          `json:"bounceRate"`
	TotalVisits          Number          `json:"totalVisits"`
}

// UnmarshalJSON decodes leniently, like WebsiteSummary.
func (s *SingleWebsiteAnalytics) UnmarshalJSON(data []byte) error {
	*s = SingleWebsiteAnalytics{}

	var wire singleWebsiteWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}
	*s = SingleWebsiteAnalytics{
		WebsiteID:            lenientString(wire.WebsiteID),
		ButtonClicks:         wire.ButtonClicks,
		History:              wire.History,
		ConversionPercentage: wire.ConversionPercentage,
		BounceRate:           wire.BounceRate,
		TotalVisits:          wire.TotalVisits,
	}
	return nil
}

// lenientString returns a JSON string's value or a number's literal text.
// Any other value yields "".
func lenientString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
