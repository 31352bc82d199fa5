package app

import (
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/siteboard/internal/services"
	"github.com/j-veylop/siteboard/internal/services/query"
)

func TestCommands_Tick(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.Tick(time.Millisecond) == nil {
		t.Error("Tick returned nil")
	}
	if cmds.DefaultTick() == nil {
		t.Error("DefaultTick returned nil")
	}
}

func TestCommands_Notifications(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name     string
		fn       func(string) tea.Cmd
		want     NotificationType
		duration time.Duration
	}{
		{"Success", cmds.NotifySuccess, NotificationSuccess, DefaultNotificationDuration},
		{"Error", cmds.NotifyError, NotificationError, LongNotificationDuration},
		{"Warning", cmds.NotifyWarning, NotificationWarning, DefaultNotificationDuration},
		{"Info", cmds.NotifyInfo, NotificationInfo, QuickNotificationDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration != tt.duration {
				t.Errorf("Duration = %v, want %v", addMsg.Duration, tt.duration)
			}
		})
	}
}

func TestCommands_ClearNotification(t *testing.T) {
	cmd := NewCommands(nil).ClearNotification("n1", time.Millisecond)
	msg, ok := cmd().(RemoveNotificationMsg)
	if !ok || msg.ID != "n1" {
		t.Errorf("ClearNotification produced %#v", msg)
	}
}

func TestCommands_Quit(t *testing.T) {
	cmds := NewCommands(nil)
	if _, ok := cmds.Quit()().(tea.QuitMsg); !ok {
		t.Error("Expected QuitMsg")
	}
	if cmds.Batch(cmds.Quit(), cmds.NotifyInfo("test")) == nil {
		t.Error("Batch returned nil")
	}
}

func TestCommands_WithoutManager(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.LoadWebsites(true) != nil {
		t.Error("LoadWebsites without manager should be nil")
	}
	if cmds.SubmitQuery(query.Form{WebsiteID: "a"}, true) != nil {
		t.Error("SubmitQuery without manager should be nil")
	}
	if cmds.CancelQuery() != nil {
		t.Error("CancelQuery without manager should be nil")
	}
}

func TestLoadWebsitesCmd(t *testing.T) {
	srv := newTestServer(t, http.StatusOK)
	mgr := newTestManager(t, srv.URL)

	msg, ok := loadWebsitesCmd(mgr, true)().(WebsitesLoadedMsg)
	if !ok {
		t.Fatal("expected WebsitesLoadedMsg")
	}
	if msg.Error != nil {
		t.Fatalf("unexpected error: %v", msg.Error)
	}
	if !msg.Forced || len(msg.List.Websites) != 2 {
		t.Errorf("msg = %+v", msg)
	}
}

func TestCommands_SubmitQueryRejected(t *testing.T) {
	mgr := newTestManager(t, "http://127.0.0.1:1")
	cmds := NewCommands(mgr)

	msg, ok := cmds.SubmitQuery(query.Form{}, false)().(AddNotificationMsg)
	if !ok {
		t.Fatal("expected a notification")
	}
	if msg.Type != NotificationWarning || msg.Message != query.MsgNoWebsite {
		t.Errorf("notification = %+v", msg)
	}
	if mgr.Query().Phase() != query.Idle {
		t.Errorf("phase = %v, want Idle", mgr.Query().Phase())
	}
}

func TestCommands_SubmitQueryAccepted(t *testing.T) {
	srv := newTestServer(t, http.StatusOK)
	mgr := newTestManager(t, srv.URL)
	cmds := NewCommands(mgr)

	msgs := collectMsgs(cmds.SubmitQuery(query.Form{WebsiteID: "a"}, true))
	if mgr.Query().Phase() != query.Fetching {
		t.Errorf("phase = %v, want Fetching", mgr.Query().Phase())
	}

	var result *QueryResultMsg
	for _, msg := range msgs {
		if r, ok := msg.(QueryResultMsg); ok {
			result = &r
		}
	}
	if result == nil {
		t.Fatal("expected a QueryResultMsg")
	}
	if result.Result.Err != nil || result.Result.Data == nil || result.Result.Data.TotalVisits != 42 {
		t.Errorf("result = %+v", result.Result)
	}

	// A second submission while the first is unapplied is rejected
	msg := cmds.SubmitQuery(query.Form{WebsiteID: "a"}, true)()
	if n, ok := msg.(AddNotificationMsg); !ok || n.Message != query.MsgInFlight {
		t.Errorf("second submit = %#v, want in-flight warning", msg)
	}
}

func TestCommands_CancelQuery(t *testing.T) {
	mgr := newTestManager(t, "http://127.0.0.1:1")
	cmds := NewCommands(mgr)

	if cmds.CancelQuery() != nil {
		t.Error("nothing to cancel should yield nil")
	}

	if _, err := mgr.Query().Begin(t.Context(), query.Form{WebsiteID: "a"}, true); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if cmds.CancelQuery() == nil {
		t.Error("cancelling an in-flight query should notify")
	}
	if mgr.Query().Phase() != query.Idle {
		t.Errorf("phase = %v, want Idle", mgr.Query().Phase())
	}
}

func TestWaitForServiceEventCmd(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.ErrorEvent{Service: "config"}

	msg, ok := waitForServiceEventCmd(ch)().(ServiceEventMsg)
	if !ok {
		t.Fatal("expected ServiceEventMsg")
	}
	if e, ok := msg.Event.(services.ErrorEvent); !ok || e.Service != "config" {
		t.Errorf("event = %#v", msg.Event)
	}

	close(ch)
	if waitForServiceEventCmd(ch)() != nil {
		t.Error("closed channel should yield nil")
	}
}
