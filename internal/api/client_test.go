package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/siteboard/internal/models"
)

// MockRoundTripper implements http.RoundTripper for testing
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func mockClient(fn func(req *http.Request) (*http.Response, error)) *Client {
	return NewClient("http://backend.test/", &http.Client{Transport: &MockRoundTripper{RoundTripFunc: fn}})
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://backend.test///", nil)
	assert.Equal(t, "http://backend.test", c.BaseURL())
	assert.Equal(t, http.DefaultClient, c.httpClient)
}

func TestFetchWebsiteOptions(t *testing.T) {
	var gotURL string
	c := mockClient(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		assert.Equal(t, http.MethodGet, req.Method)
		return jsonResponse(http.StatusOK, `{
			"success": true,
			"data": [
				{"websiteId":"a","websiteName":"Alpha","conversionPercentage":12,"bounceRate":"30",
				 "totalVisits":100,"history":[{"date":"2024-01-01","totalVisits":10,"conversionPercentage":2}]},
				{"websiteId":"b","websiteName":"Beta"}
			]
		}`), nil
	})

	resp, err := c.FetchWebsiteOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://backend.test/api/analytics/websites", gotURL)
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Alpha", resp.Data[0].WebsiteName)
	assert.Equal(t, models.Number(30), resp.Data[0].BounceRate)
	require.Len(t, resp.Data[0].History, 1)
	assert.Nil(t, resp.Data[1].History)
	assert.Equal(t, models.Number(0), resp.Data[1].TotalVisits)
}

func TestFetchSingleWebsiteAnalytics_Query(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		r         models.DateRange
		wantPath  string
		wantQuery string
	}{
		{
			name:     "AllTime",
			id:       "site-1",
			r:        models.DateRange{},
			wantPath: "/api/analytics/single/website-view/site-1",
		},
		{
			name:     "StartOnlyIsAllTime",
			id:       "site-1",
			r:        models.DateRange{Start: "2024-01-01"},
			wantPath: "/api/analytics/single/website-view/site-1",
		},
		{
			name:      "Bounded",
			id:        "site-1",
			r:         models.DateRange{Start: "2024-01-01", End: "2024-01-08"},
			wantPath:  "/api/analytics/single/website-view/site-1",
			wantQuery: "endDate=2024-01-08&startDate=2024-01-01",
		},
		{
			name:     "EscapedID",
			id:       "a/b c",
			wantPath: "/api/analytics/single/website-view/a%2Fb%20c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			c := mockClient(func(r *http.Request) (*http.Response, error) {
				req = r
				return jsonResponse(http.StatusOK, `{"success":true,"data":{"websiteId":"site-1"}}`), nil
			})

			_, err := c.FetchSingleWebsiteAnalytics(context.Background(), tt.id, tt.r)
			require.NoError(t, err)
			require.NotNil(t, req)

			assert.Equal(t, tt.wantPath, req.URL.EscapedPath())
			assert.Equal(t, tt.wantQuery, req.URL.RawQuery)
		})
	}
}

func TestFetchSingleWebsiteAnalytics_Decodes(t *testing.T) {
	c := mockClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"success": true,
			"data": {
				"websiteId": "w1",
				"buttonClicks": {"1": 5, "3": 2},
				"conversionPercentage": 15.5,
				"bounceRate": 40,
				"totalVisits": 321,
				"history": [{"date":"2024-01-01","totalVisits":10,"conversionPercentage":1.5}]
			}
		}`), nil
	})

	resp, err := c.FetchSingleWebsiteAnalytics(context.Background(), "w1", models.DateRange{})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)

	assert.Equal(t, models.ButtonClicks{1: 5, 3: 2}, resp.Data.ButtonClicks)
	assert.Equal(t, models.Number(321), resp.Data.TotalVisits)
	assert.Len(t, resp.Data.History, 1)
}

func TestFetch_EmptyID(t *testing.T) {
	c := mockClient(func(*http.Request) (*http.Response, error) {
		t.Fatal("should not make HTTP request without a website id")
		return nil, nil
	})

	_, err := c.FetchSingleWebsiteAnalytics(context.Background(), "", models.DateRange{})
	assert.Error(t, err)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		resp       *http.Response
		err        error
		wantStatus int
	}{
		{
			name:       "ServerError",
			resp:       jsonResponse(http.StatusInternalServerError, "boom\n"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "NotFound",
			resp:       jsonResponse(http.StatusNotFound, ""),
			wantStatus: http.StatusNotFound,
		},
		{
			name: "BadJSON",
			resp: jsonResponse(http.StatusOK, "<html>"),
		},
		{
			name: "Transport",
			err:  errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mockClient(func(*http.Request) (*http.Response, error) {
				return tt.resp, tt.err
			})

			_, err := c.FetchWebsiteOptions(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			if tt.wantStatus != 0 {
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			} else {
				assert.False(t, errors.As(err, &apiErr))
			}
		})
	}
}

func TestAPIError_Message(t *testing.T) {
	assert.Equal(t, "request failed (status 502)", (&APIError{StatusCode: 502}).Error())
	assert.Equal(t, "request failed (status 400): bad", (&APIError{StatusCode: 400, Body: "bad"}).Error())
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.FetchSingleWebsiteAnalytics(ctx, "w1", models.DateRange{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_HTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/single/website-view/w9", r.URL.Path)
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-02-10", r.URL.Query().Get("endDate"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	resp, err := c.FetchSingleWebsiteAnalytics(context.Background(), "w9",
		models.DateRange{Start: "2024-02-01", End: "2024-02-10"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
}
