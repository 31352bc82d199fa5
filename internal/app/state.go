// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"strconv"
	"sync"
	"time"

	"github.com/j-veylop/siteboard/internal/analytics"
	"github.com/j-veylop/siteboard/internal/models"
	"github.com/j-veylop/siteboard/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial  bool
	Websites bool
	Query    bool
}

// State is shared between the application model and its tabs.
type State struct {
	websites      services.WebsiteList
	overview      analytics.Overview
	lastUpdated   time.Time
	notifications []Notification
	Loading       LoadingState
	selected      int
	notifySeq     int
	mu            sync.RWMutex
}

// NewState creates an empty state that is still waiting for its first load.
func NewState() *State {
	return &State{
		overview:      analytics.Summarize(nil),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "websites":
		s.Loading.Websites = loading
	case "query":
		s.Loading.Query = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial || s.Loading.Websites || s.Loading.Query
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// IsLoading reports whether a single resource is loading.
func (s *State) IsLoading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch resource {
	case "initial":
		return s.Loading.Initial
	case "websites":
		return s.Loading.Websites
	case "query":
		return s.Loading.Query
	}
	return false
}

// SetWebsites replaces the website list and recomputes the overview.
// The selection is kept on the same website ID when it is still listed.
func (s *State) SetWebsites(list services.WebsiteList) {
	overview := analytics.Summarize(list.Websites)

	s.mu.Lock()
	defer s.mu.Unlock()

	selectedID := ""
	if s.selected >= 0 && s.selected < len(s.websites.Websites) {
		selectedID = s.websites.Websites[s.selected].WebsiteID
	}

	s.websites = list
	s.overview = overview
	s.lastUpdated = time.Now()

	s.selected = 0
	for i := range list.Websites {
		if list.Websites[i].WebsiteID == selectedID {
			s.selected = i
			break
		}
	}
}

// GetWebsites returns a copy of the website list.
func (s *State) GetWebsites() []models.WebsiteSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	websites := make([]models.WebsiteSummary, len(s.websites.Websites))
	copy(websites, s.websites.Websites)
	return websites
}

// GetWebsiteList returns the website list with its provenance.
func (s *State) GetWebsiteList() services.WebsiteList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.websites
}

// GetWebsiteCount returns the number of websites.
func (s *State) GetWebsiteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.websites.Websites)
}

// GetOverview returns the cross-website rollups of the current list.
func (s *State) GetOverview() analytics.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overview
}

// GetSelectedWebsite returns the selected website, if any.
func (s *State) GetSelectedWebsite() (models.WebsiteSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected < 0 || s.selected >= len(s.websites.Websites) {
		return models.WebsiteSummary{}, false
	}
	return s.websites.Websites[s.selected], true
}

// GetSelectedWebsiteIndex returns the currently selected website index.
func (s *State) GetSelectedWebsiteIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// MoveSelection moves the website selection by delta, wrapping around.
func (s *State) MoveSelection(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.websites.Websites)
	if n == 0 {
		s.selected = 0
		return
	}
	s.selected = ((s.selected+delta)%n + n) % n
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifySeq++
	id := "n" + strconv.Itoa(s.notifySeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the website list changed.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}
