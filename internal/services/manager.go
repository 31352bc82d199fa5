// Package services provides service orchestration for the TUI and CLI.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/siteboard/internal/api"
	"github.com/j-veylop/siteboard/internal/cache"
	"github.com/j-veylop/siteboard/internal/config"
	"github.com/j-veylop/siteboard/internal/db"
	"github.com/j-veylop/siteboard/internal/logger"
	"github.com/j-veylop/siteboard/internal/models"
	"github.com/j-veylop/siteboard/internal/services/query"
)

type (
	// WebsitesUpdatedEvent is emitted when a fresh website list was fetched.
	WebsitesUpdatedEvent struct {
		List WebsiteList
	}

	// ConfigReloadedEvent is emitted after the .env file changed and was applied.
	ConfigReloadedEvent struct {
		Config *config.Config
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Error   error
		Service string
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (WebsitesUpdatedEvent) isServiceEvent() {}
func (ConfigReloadedEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()           {}

// WebsiteList is the website list with its provenance.
type WebsiteList struct {
	FetchedAt time.Time
	Websites  []models.WebsiteSummary
	FromCache bool
}

// fetchLogRetention is how long fetch log rows are kept.
const fetchLogRetention = 30 * 24 * time.Hour

// Notifier shows a desktop notification.
type Notifier func(title, message string) error

// Option customizes a Manager.
type Option func(*Manager)

// WithHTTPClient makes every API client use hc instead of one built from the config.
func WithHTTPClient(hc *http.Client) Option {
	return func(m *Manager) { m.httpClient = hc }
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithoutWatcher disables .env reloading.
func WithoutWatcher() Option {
	return func(m *Manager) { m.noWatch = true }
}

// Manager orchestrates services and event routing.
type Manager struct {
	cfg         *config.Config
	client      *api.Client
	cache       *cache.Cache
	store       cache.Store
	database    *db.DB
	query       *query.Controller
	watcher     *config.Watcher
	httpClient  *http.Client
	notifier    Notifier
	subscribers []chan ServiceEvent
	mu          sync.RWMutex
	closeOnce   sync.Once
	noWatch     bool
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	m := &Manager{
		cfg: cfg,
		notifier: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	if cfg.CachePath != "" {
		database, err := db.New(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache database: %w", err)
		}
		m.database = database
		m.store = database

		if n, err := database.PruneFetches(context.Background(), fetchLogRetention); err != nil {
			logger.Warn("failed to prune fetch log", "error", err)
		} else if n > 0 {
			logger.Debug("pruned fetch log", "rows", n, "path", database.Path())
			if err := database.Vacuum(); err != nil {
				logger.Warn("failed to vacuum cache database", "error", err)
			}
		}
	} else {
		m.store = cache.NewMemoryStore()
	}

	m.cache = cache.New(m.store, cfg.CacheTTL)
	m.client = m.newClient(cfg)
	m.query = query.NewController(m)

	if !m.noWatch && cfg.EnvFile != "" {
		w, err := config.NewWatcher(cfg.EnvFile, config.DefaultDebounce, m.applyConfig, m.handleWatchError)
		if err != nil {
			logger.Warn("config watcher disabled", "path", cfg.EnvFile, "error", err)
		} else {
			logger.Debug("watching config file", "path", w.Path())
			m.watcher = w
		}
	}

	return m, nil
}

func (m *Manager) newClient(cfg *config.Config) *api.Client {
	hc := m.httpClient
	if hc == nil {
		// A zero timeout leaves it to the transport
		hc = &http.Client{Timeout: cfg.RequestTimeout}
	}
	c := api.NewClient(cfg.BackendURL, hc)
	logger.Debug("api client ready", "base_url", c.BaseURL())
	return c
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Query returns the single-website query controller.
func (m *Manager) Query() *query.Controller {
	return m.query
}

// Database returns the cache database, or nil when caching is in-memory.
func (m *Manager) Database() *db.DB {
	return m.database
}

func (m *Manager) apiClient() *api.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

func (m *Manager) queryCache() *cache.Cache {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache
}

// WebsiteOptions returns the website list, from cache unless forceRefresh is set.
// A failed fetch leaves the cache untouched.
func (m *Manager) WebsiteOptions(ctx context.Context, forceRefresh bool) (WebsiteList, error) {
	c := m.queryCache()

	if forceRefresh {
		if err := c.Invalidate(ctx, cache.WebsiteOptionsKey); err != nil {
			logger.Warn("failed to invalidate website cache", "error", err)
		}
	} else {
		var cached []models.WebsiteSummary
		ok, err := c.Get(ctx, cache.WebsiteOptionsKey, &cached)
		if err != nil {
			logger.Warn("failed to read website cache", "error", err)
		}
		if ok {
			storedAt, _ := c.StoredAt(ctx, cache.WebsiteOptionsKey)
			return WebsiteList{Websites: cached, FetchedAt: storedAt, FromCache: true}, nil
		}
	}

	start := time.Now()
	resp, err := m.apiClient().FetchWebsiteOptions(ctx)
	if err == nil && !resp.Success {
		err = api.ErrUnsuccessful
	}
	m.recordFetch(models.FetchWebsites, "", models.DateRange{}, time.Since(start), err)

	if err != nil {
		m.fail("websites", "Website list fetch failed", err)
		return WebsiteList{}, err
	}

	list := WebsiteList{Websites: resp.Data, FetchedAt: time.Now()}
	if list.Websites == nil {
		list.Websites = []models.WebsiteSummary{}
	}
	if err := c.Put(ctx, cache.WebsiteOptionsKey, list.Websites); err != nil {
		logger.Warn("failed to cache website list", "error", err)
	}

	m.broadcast(WebsitesUpdatedEvent{List: list})
	return list, nil
}

// FetchSingleWebsiteAnalytics fetches through the current client and logs the request.
// It is the fetcher behind the query controller.
func (m *Manager) FetchSingleWebsiteAnalytics(
	ctx context.Context, websiteID string, r models.DateRange,
) (*models.SingleWebsiteResponse, error) {
	start := time.Now()
	resp, err := m.apiClient().FetchSingleWebsiteAnalytics(ctx, websiteID, r)
	m.recordFetch(models.FetchSingleWebsite, websiteID, r, time.Since(start), err)

	if err != nil && !errors.Is(err, context.Canceled) {
		m.fail("analytics", "Website analytics fetch failed", err)
	}
	return resp, err
}

// CacheStatus reports when the website list was cached, if it is still live.
func (m *Manager) CacheStatus(ctx context.Context) (time.Time, bool) {
	return m.queryCache().StoredAt(ctx, cache.WebsiteOptionsKey)
}

// InvalidateWebsites drops the cached website list.
func (m *Manager) InvalidateWebsites(ctx context.Context) error {
	return m.queryCache().Invalidate(ctx, cache.WebsiteOptionsKey)
}

// FetchLog returns recent fetches and their statistics.
// Both are nil when no cache database is configured.
func (m *Manager) FetchLog(ctx context.Context, limit int) ([]models.FetchRecord, *models.FetchStats, error) {
	if m.database == nil {
		return nil, nil, nil
	}
	records, err := m.database.RecentFetches(ctx, limit)
	if err != nil {
		return nil, nil, err
	}
	stats, err := m.database.FetchStats(ctx)
	if err != nil {
		return nil, nil, err
	}
	return records, stats, nil
}

func (m *Manager) recordFetch(kind models.FetchKind, websiteID string, r models.DateRange, d time.Duration, err error) {
	if m.database == nil {
		return
	}

	rec := &models.FetchRecord{
		Timestamp:  time.Now(),
		Kind:       kind,
		WebsiteID:  websiteID,
		StartDate:  r.Start,
		EndDate:    r.End,
		DurationMs: d.Milliseconds(),
		StatusCode: http.StatusOK,
	}
	if err != nil {
		rec.Error = err.Error()
		rec.StatusCode = 0
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			rec.StatusCode = apiErr.StatusCode
		}
	}

	if err := m.database.InsertFetch(context.Background(), rec); err != nil {
		logger.Warn("failed to record fetch", "error", err)
	}
}

// fail broadcasts a service error and raises a desktop notification when enabled.
func (m *Manager) fail(service, title string, err error) {
	m.broadcast(ErrorEvent{Service: service, Error: err})

	m.mu.RLock()
	enabled := m.cfg.DesktopNotifications
	notify := m.notifier
	m.mu.RUnlock()

	if enabled && notify != nil {
		if nerr := notify("siteboard: "+title, err.Error()); nerr != nil {
			logger.Debug("desktop notification failed", "error", nerr)
		}
	}
}

// applyConfig swaps in a reloaded configuration. The cache database path is
// only read at startup.
func (m *Manager) applyConfig(cfg *config.Config) {
	m.mu.Lock()
	if cfg.CachePath != m.cfg.CachePath {
		logger.Warn("CACHE_PATH change requires a restart", "current", m.cfg.CachePath, "new", cfg.CachePath)
		cfg.CachePath = m.cfg.CachePath
	}
	m.cfg = cfg
	m.client = m.newClient(cfg)
	m.cache = cache.New(m.store, cfg.CacheTTL)
	m.mu.Unlock()

	if err := m.InvalidateWebsites(context.Background()); err != nil {
		logger.Warn("failed to invalidate website cache", "error", err)
	}

	m.broadcast(ConfigReloadedEvent{Config: cfg})
}

func (m *Manager) handleWatchError(err error) {
	m.broadcast(ErrorEvent{Service: "config", Error: err})
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
// A closed channel yields nil.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close cancels in-flight work and releases every resource.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		m.query.Cancel()

		if m.watcher != nil {
			if err := m.watcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	return errors.Join(errs...)
}
