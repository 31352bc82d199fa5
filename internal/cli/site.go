package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/siteboard/internal/api"
	"github.com/j-veylop/siteboard/internal/services/query"
)

func (r *runner) siteCmd() *cobra.Command {
	var (
		start, end      string
		allTime, asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "site WEBSITE_ID",
		Short: "Print analytics for a single website",
		Long: `Fetch analytics for one website over a date range, or over all of
its data with --all. Dates use the YYYY-MM-DD format. When only --start
is given, the range covers that single day.

Examples:
  siteboard site 42 --start 2024-01-01 --end 2024-01-31
  siteboard site 42 --all
  siteboard site 42 --all --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if allTime && (start != "" || end != "") {
				return errors.New("--all cannot be combined with --start or --end")
			}

			form := query.Form{WebsiteID: args[0]}
			if start != "" {
				form.SelectStart(start)
			}
			if end != "" {
				form.SelectEnd(end)
			}

			mgr, cleanup, err := r.open()
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := mgr.Query().Run(cmd.Context(), form, allTime)
			switch {
			case errors.Is(err, api.ErrUnsuccessful):
				return fmt.Errorf("the backend returned no data for website %s", form.WebsiteID)
			case err != nil:
				var verr *query.ValidationError
				if errors.As(err, &verr) {
					return verr
				}
				return fmt.Errorf("failed to fetch website data: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			}
			return writeSite(cmd.OutOrStdout(), data, form.Range(allTime))
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&allTime, "all", false, "Fetch all data, ignoring dates")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response data as JSON")

	return cmd
}
