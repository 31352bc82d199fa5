package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"Number", `12.5`, 12.5},
		{"Integer", `40`, 40},
		{"NumericString", `"33.3"`, 33.3},
		{"PaddedString", `" 7 "`, 7},
		{"Null", `null`, 0},
		{"EmptyString", `""`, 0},
		{"Garbage", `"abc"`, 0},
		{"Bool", `true`, 0},
		{"Object", `{"a":1}`, 0},
		{"NaNString", `"NaN"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.raw), &n); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.raw, err)
			}
			if got := n.Float(); got != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestWebsiteSummary_MissingFields(t *testing.T) {
	raw := `{"websiteId":"w1","bounceRate":"20"}`

	var w WebsiteSummary
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if w.ConversionPercentage != 0 {
		t.Errorf("ConversionPercentage = %v, want 0", w.ConversionPercentage)
	}
	if w.BounceRate != 20 {
		t.Errorf("BounceRate = %v, want 20", w.BounceRate)
	}
	if w.History != nil {
		t.Errorf("History = %v, want nil", w.History)
	}
	if w.DisplayName() != "Website w1" {
		t.Errorf("DisplayName() = %q, want %q", w.DisplayName(), "Website w1")
	}
}

func TestButtonClicks_UnmarshalJSON(t *testing.T) {
	raw := `{"buttonClicks":{"1":5,"3":"2","x":9,"5":null}}`

	var data SingleWebsiteAnalytics
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := ButtonClicks{1: 5, 3: 2, 5: 0}
	if len(data.ButtonClicks) != len(want) {
		t.Fatalf("ButtonClicks = %v, want %v", data.ButtonClicks, want)
	}
	for k, v := range want {
		if data.ButtonClicks[k] != v {
			t.Errorf("ButtonClicks[%d] = %v, want %v", k, data.ButtonClicks[k], v)
		}
	}
}

func TestButtonClicks_NotAnObject(t *testing.T) {
	var data SingleWebsiteAnalytics
	if err := json.Unmarshal([]byte(`{"buttonClicks":[1,2]}`), &data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if data.ButtonClicks != nil {
		t.Errorf("ButtonClicks = %v, want nil", data.ButtonClicks)
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name    string
		r       DateRange
		allTime bool
		str     string
	}{
		{"Empty", DateRange{}, true, "All Time"},
		{"StartOnly", DateRange{Start: "2024-01-01"}, true, "All Time"},
		{"Bounded", DateRange{Start: "2024-01-01", End: "2024-01-08"}, false, "2024-01-01 → 2024-01-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsAllTime(); got != tt.allTime {
				t.Errorf("IsAllTime() = %v, want %v", got, tt.allTime)
			}
			if got := tt.r.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestRangePreset(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		p     RangePreset
		label string
		next  RangePreset
		start string
	}{
		{"7Days", RangePreset7Days, "7 Days", RangePreset30Days, "2024-03-08"},
		{"30Days", RangePreset30Days, "30 Days", RangePreset90Days, "2024-02-14"},
		{"90Days", RangePreset90Days, "90 Days", RangePreset7Days, "2023-12-16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.label {
				t.Errorf("String() = %q, want %q", got, tt.label)
			}
			if got := tt.p.Next(); got != tt.next {
				t.Errorf("Next() = %v, want %v", got, tt.next)
			}
			r := tt.p.Range(now)
			if r.Start != tt.start || r.End != "2024-03-15" {
				t.Errorf("Range() = %+v, want start %s end 2024-03-15", r, tt.start)
			}
		})
	}

	if RangePreset(99).String() != "Unknown" {
		t.Error("unknown preset should render as Unknown")
	}
}

func TestWebsiteListResponse_MalformedRecords(t *testing.T) {
	raw := `{"success":true,"data":[
		{"websiteId":"w1","websiteName":"Alpha","totalVisits":10,
		 "history":[{"date":"2024-01-01","totalVisits":10},{"date":20240102,"totalVisits":"4"},null,"junk",[1]]},
		{"websiteId":7,"websiteName":{"en":"Beta"},"history":{"date":"2024-01-01"},"bounceRate":30},
		"not-a-record",
		{"websiteId":"w3","websiteName":"Gamma","history":[{"date":["2024-01-03"],"totalVisits":2}]}
	]}`

	var resp WebsiteListResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !resp.Success || len(resp.Data) != 4 {
		t.Fatalf("got success=%v len=%d, want true 4", resp.Success, len(resp.Data))
	}

	alpha := resp.Data[0]
	if alpha.WebsiteName != "Alpha" || alpha.TotalVisits != 10 {
		t.Errorf("good record decoded as %+v", alpha)
	}
	if len(alpha.History) != 2 {
		t.Fatalf("Alpha history len = %d, want 2", len(alpha.History))
	}
	if alpha.History[1].Date != "20240102" || alpha.History[1].TotalVisits != 4 {
		t.Errorf("numeric date record = %+v", alpha.History[1])
	}

	beta := resp.Data[1]
	if beta.WebsiteID != "7" || beta.WebsiteName != "" || beta.History != nil || beta.BounceRate != 30 {
		t.Errorf("mistyped fields decoded as %+v", beta)
	}

	if resp.Data[2].WebsiteID != "" || resp.Data[2].TotalVisits != 0 {
		t.Errorf("non-object record = %+v, want zero", resp.Data[2])
	}

	gamma := resp.Data[3]
	if len(gamma.History) != 1 || gamma.History[0].Date != "" || gamma.History[0].TotalVisits != 2 {
		t.Errorf("array date record = %+v", gamma.History)
	}
}

func TestSingleWebsiteAnalytics_MalformedFields(t *testing.T) {
	raw := `{"websiteId":12,"totalVisits":"42","buttonClicks":[1,2],"history":"none"}`

	var s SingleWebsiteAnalytics
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.WebsiteID != "12" || s.TotalVisits != 42 {
		t.Errorf("decoded as %+v", s)
	}
	if s.ButtonClicks != nil || s.History != nil {
		t.Errorf("mistyped collections = %v %v, want nil", s.ButtonClicks, s.History)
	}
}
