// Package query implements the single-website query flow: validation,
// at most one in-flight fetch, explicit cancellation and stale-result dropping.
package query

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/j-veylop/siteboard/internal/api"
	"github.com/j-veylop/siteboard/internal/logger"
	"github.com/j-veylop/siteboard/internal/models"
)

// Phase is the state of the query flow.
type Phase int

const (
	// Idle waits for a submission.
	Idle Phase = iota
	// Validating checks a submission.
	Validating
	// Fetching has a request in flight.
	Fetching
	// Succeeded holds fresh data from the last fetch.
	Succeeded
	// Failed keeps the prior data after a failed fetch.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Validating:
		return "Validating"
	case Fetching:
		return "Fetching"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Fetcher retrieves single-website analytics.
type Fetcher interface {
	FetchSingleWebsiteAnalytics(ctx context.Context, websiteID string, r models.DateRange) (*models.SingleWebsiteResponse, error)
}

// Ticket identifies one accepted submission.
type Ticket struct {
	ctx       context.Context
	WebsiteID string
	Range     models.DateRange
	seq       uint64
}

// Result is the outcome of executing a ticket.
type Result struct {
	Ticket   *Ticket
	Data     *models.SingleWebsiteAnalytics
	Err      error
	Duration time.Duration
}

// Snapshot is a consistent read of the controller state.
type Snapshot struct {
	Data      *models.SingleWebsiteAnalytics
	Err       error
	WebsiteID string
	Range     models.DateRange
	Phase     Phase
}

// Controller owns the single-website query state.
type Controller struct {
	fetcher Fetcher
	now     func() time.Time
	cancel  context.CancelFunc
	data    *models.SingleWebsiteAnalytics
	lastErr error
	website string
	rng     models.DateRange
	seq     uint64
	phase   Phase
	mu      sync.Mutex
}

// NewController creates a controller that fetches through f.
func NewController(f Fetcher) *Controller {
	return &Controller{
		fetcher: f,
		now:     time.Now,
	}
}

// SetClock replaces the clock used to validate dates.
func (c *Controller) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Begin validates a submission and, when accepted, moves to Fetching.
// A rejected submission leaves the controller Idle; a submission while
// another fetch is running is rejected without touching the state.
func (c *Controller) Begin(ctx context.Context, f Form, allTime bool) (*Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == Fetching {
		return nil, &ValidationError{Message: MsgInFlight, err: ErrInFlight}
	}

	c.phase = Validating
	if err := Validate(f, allTime, c.now()); err != nil {
		c.phase = Idle
		return nil, err
	}

	c.seq++
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.phase = Fetching

	return &Ticket{
		ctx:       fetchCtx,
		seq:       c.seq,
		WebsiteID: f.WebsiteID,
		Range:     f.Range(allTime),
	}, nil
}

// Execute performs the fetch for t. It does not change the controller state.
func (c *Controller) Execute(t *Ticket) Result {
	c.mu.Lock()
	fetcher := c.fetcher
	c.mu.Unlock()

	start := time.Now()
	resp, err := fetcher.FetchSingleWebsiteAnalytics(t.ctx, t.WebsiteID, t.Range)
	res := Result{Ticket: t, Err: err, Duration: time.Since(start)}
	if err == nil {
		if resp == nil || !resp.Success || resp.Data == nil {
			res.Err = api.ErrUnsuccessful
		} else {
			res.Data = resp.Data
		}
	}
	return res
}

// Finish applies a result. It reports false when the result was dropped
// because its ticket was cancelled or superseded.
func (c *Controller) Finish(r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.Ticket == nil || r.Ticket.seq != c.seq || c.phase != Fetching {
		logger.Debug("dropping stale query result")
		return false
	}

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if r.Err != nil {
		c.phase = Failed
		c.lastErr = r.Err
		if errors.Is(r.Err, api.ErrUnsuccessful) {
			logger.Warn("backend returned no data",
				"websiteId", r.Ticket.WebsiteID,
				"startDate", r.Ticket.Range.Start,
				"endDate", r.Ticket.Range.End,
			)
		} else {
			logger.Error("website query failed",
				"websiteId", r.Ticket.WebsiteID,
				"startDate", r.Ticket.Range.Start,
				"endDate", r.Ticket.Range.End,
				"error", r.Err,
			)
		}
		return true
	}

	c.phase = Succeeded
	c.lastErr = nil
	c.data = r.Data
	c.website = r.Ticket.WebsiteID
	c.rng = r.Ticket.Range
	return true
}

// Run is Begin, Execute and Finish in one blocking call.
func (c *Controller) Run(ctx context.Context, f Form, allTime bool) (*models.SingleWebsiteAnalytics, error) {
	t, err := c.Begin(ctx, f, allTime)
	if err != nil {
		return nil, err
	}
	res := c.Execute(t)
	if !c.Finish(res) {
		return nil, context.Canceled
	}
	return res.Data, res.Err
}

// Cancel aborts the in-flight fetch, if any. Its result will be dropped.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Fetching {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.phase = Idle
	return true
}

// Reset clears stored data and cancels any in-flight fetch.
func (c *Controller) Reset() {
	c.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.lastErr = nil
	c.website = ""
	c.rng = models.DateRange{}
	c.phase = Idle
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Phase:     c.phase,
		Data:      c.data,
		Err:       c.lastErr,
		WebsiteID: c.website,
		Range:     c.rng,
	}
}
