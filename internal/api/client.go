// Package api provides the HTTP client for the backend analytics API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/j-veylop/siteboard/internal/logger"
	"github.com/j-veylop/siteboard/internal/models"
)

const (
	websitesPath      = "/api/analytics/websites"
	singleWebsitePath = "/api/analytics/single/website-view/"
)

// ErrUnsuccessful is returned when the backend answers with success=false.
var ErrUnsuccessful = errors.New("backend reported an unsuccessful response")

// APIError is returned for non-2xx responses.
type APIError struct {
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Body)
}

// Client talks to the analytics backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchWebsiteOptions retrieves every website summary with its history.
func (c *Client) FetchWebsiteOptions(ctx context.Context) (*models.WebsiteListResponse, error) {
	var resp models.WebsiteListResponse
	if err := c.get(ctx, c.baseURL+websitesPath, &resp); err != nil {
		logger.Error("failed to fetch websites", "error", err)
		return nil, fmt.Errorf("fetch websites: %w", err)
	}
	return &resp, nil
}

// FetchSingleWebsiteAnalytics retrieves analytics for one website.
// The date parameters are only sent when both ends of the range are set.
func (c *Client) FetchSingleWebsiteAnalytics(
	ctx context.Context, websiteID string, r models.DateRange,
) (*models.SingleWebsiteResponse, error) {
	if websiteID == "" {
		return nil, fmt.Errorf("website id is empty")
	}

	endpoint := c.baseURL + singleWebsitePath + url.PathEscape(websiteID)
	if !r.IsAllTime() {
		q := url.Values{}
		q.Set("startDate", r.Start)
		q.Set("endDate", r.End)
		endpoint += "?" + q.Encode()
	}

	var resp models.SingleWebsiteResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		logger.Error("failed to fetch website analytics",
			"websiteId", websiteID,
			"startDate", r.Start,
			"endDate", r.End,
			"error", err,
		)
		return nil, fmt.Errorf("fetch website %s: %w", websiteID, err)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
