package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/siteboard/internal/config"
	"github.com/j-veylop/siteboard/internal/services"
)

const (
	testWebsitesBody = `{"success":true,"data":[
		{"websiteId":"a","websiteName":"Alpha","conversionPercentage":30,"bounceRate":50,"totalVisits":120},
		{"websiteId":"b","websiteName":"Beta","conversionPercentage":10,"bounceRate":30,"totalVisits":80}
	]}`
	testSingleBody = `{"success":true,"data":{"websiteId":"a","totalVisits":42,"buttonClicks":{"1":5,"5":2}}}`
)

func newTestServer(t *testing.T, singleStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/websites", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testWebsitesBody))
	})
	mux.HandleFunc("/api/analytics/single/website-view/", func(w http.ResponseWriter, _ *http.Request) {
		if singleStatus != http.StatusOK {
			http.Error(w, "boom", singleStatus)
			return
		}
		_, _ = w.Write([]byte(testSingleBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestManager(t *testing.T, baseURL string) *services.Manager {
	t.Helper()
	mgr, err := services.NewManager(
		&config.Config{BackendURL: baseURL, CacheTTL: time.Minute},
		services.WithoutWatcher(),
		services.WithNotifier(func(string, string) error { return nil }),
	)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

// collectMsgs runs cmd and flattens batches. Commands that would block on a
// timer are skipped.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return nil
	}

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collectMsgs(c)...)
	}
	return out
}

func findNotification(msgs []tea.Msg, typ NotificationType) (AddNotificationMsg, bool) {
	for _, msg := range msgs {
		if n, ok := msg.(AddNotificationMsg); ok && n.Type == typ {
			return n, true
		}
	}
	return AddNotificationMsg{}, false
}
