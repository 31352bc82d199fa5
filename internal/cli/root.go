// Package cli implements the siteboard command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/j-veylop/siteboard/internal/config"
	"github.com/j-veylop/siteboard/internal/logger"
	"github.com/j-veylop/siteboard/internal/services"
)

// ConfigLoader returns the configuration to run with.
type ConfigLoader func() (*config.Config, error)

// runner carries what the commands share.
type runner struct {
	loadConfig ConfigLoader
	options    []services.Option
}

// Option customizes the root command.
type Option func(*runner)

// WithServiceOptions passes options to every service manager the commands create.
func WithServiceOptions(opts ...services.Option) Option {
	return func(r *runner) { r.options = append(r.options, opts...) }
}

// NewRootCmd builds the command tree.
func NewRootCmd(load ConfigLoader, opts ...Option) *cobra.Command {
	r := &runner{loadConfig: load}
	for _, opt := range opts {
		opt(r)
	}

	rootCmd := &cobra.Command{
		Use:   "siteboard",
		Short: "siteboard, a terminal dashboard for website analytics",
		Long: `siteboard shows conversion, bounce and visit analytics for every
website reported by the analytics backend, and lets you drill into a
single website over a date range.

Without a subcommand it starts the interactive dashboard. When stdout
is not a terminal it prints the overview report instead.

Configuration is read from the environment and the first .env file
found in the current directory, ~/.config/siteboard/ or a parent
directory. BACKEND_URL is required.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          r.runRoot,
	}

	rootCmd.AddCommand(r.websitesCmd())
	rootCmd.AddCommand(r.siteCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// Execute runs the command line until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd(config.Load).ExecuteContext(ctx)
}

// open loads the configuration, points the logger at the log file and starts
// the service manager. The returned func releases both.
func (r *runner) open() (*services.Manager, func(), error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser := logger.Setup(cfg.LogPath, logger.ParseLevel(cfg.LogLevel))

	mgr, err := services.NewManager(cfg, r.options...)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	cleanup := func() {
		if err := mgr.Close(); err != nil {
			logger.Warn("error closing services", "error", err)
		}
		_ = logCloser.Close()
	}
	return mgr, cleanup, nil
}

func (r *runner) runRoot(cmd *cobra.Command, _ []string) error {
	mgr, cleanup, err := r.open()
	if err != nil {
		return err
	}
	defer cleanup()

	if isTerminal(cmd.OutOrStdout()) {
		return runTUI(cmd.Context(), mgr)
	}

	list, err := mgr.WebsiteOptions(cmd.Context(), false)
	if err != nil {
		return fmt.Errorf("failed to load websites: %w", err)
	}
	return writeOverview(cmd.OutOrStdout(), list)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
