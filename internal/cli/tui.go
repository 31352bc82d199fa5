package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/siteboard/internal/app"
	"github.com/j-veylop/siteboard/internal/services"
	"github.com/j-veylop/siteboard/internal/ui/tabs/info"
	"github.com/j-veylop/siteboard/internal/ui/tabs/overview"
	"github.com/j-veylop/siteboard/internal/ui/tabs/website"
)

// newModel builds the application model with its tabs.
func newModel(mgr *services.Manager) *app.Model {
	model := app.NewModel(mgr)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		website.New(state, model.GetCommands(), mgr),
		info.New(state, mgr),
	})

	return model
}

// runTUI runs the dashboard until the user quits or ctx is cancelled.
func runTUI(ctx context.Context, mgr *services.Manager) error {
	p := tea.NewProgram(
		newModel(mgr),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
