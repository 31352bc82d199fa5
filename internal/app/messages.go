package app

import (
	"time"

	"github.com/j-veylop/siteboard/internal/config"
	"github.com/j-veylop/siteboard/internal/services"
	"github.com/j-veylop/siteboard/internal/services/query"
)

// TickMsg is sent periodically to drive notification expiry.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg marks a resource as loading.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg marks a resource as done loading.
type StopLoadingMsg struct {
	Resource string
}

// WebsitesLoadedMsg carries the result of a website list fetch.
type WebsitesLoadedMsg struct {
	Error  error
	List   services.WebsiteList
	Forced bool
}

// RefreshMsg requests a website list refresh that bypasses the cache.
type RefreshMsg struct{}

// QueryResultMsg carries a finished single-website fetch.
type QueryResultMsg struct {
	Result query.Result
}

// QueryAppliedMsg is sent after a query result was applied to the controller.
type QueryAppliedMsg struct {
	Snapshot query.Snapshot
}

// ConfigReloadedMsg is sent after the .env file was reloaded.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// AddNotificationMsg requests a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg drops every expired notification.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg carries the channel of a new service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg reports an error to the user.
type ErrorMsg struct {
	Error error
}

// TabSwitchMsg requests switching to a tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help overlay.
type ToggleHelpMsg struct{}
