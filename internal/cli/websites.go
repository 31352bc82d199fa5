package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (r *runner) websitesCmd() *cobra.Command {
	var refresh, asJSON bool

	cmd := &cobra.Command{
		Use:   "websites",
		Short: "Print the overview of every website",
		Long: `Print the cross-website overview: averages, derived views and a table
of every website. The list is served from the cache while it is fresh.

Examples:
  siteboard websites
  siteboard websites --refresh
  siteboard websites --json | jq '.[].websiteName'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, cleanup, err := r.open()
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := mgr.WebsiteOptions(cmd.Context(), refresh)
			if err != nil {
				return fmt.Errorf("failed to load websites: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list.Websites)
			}
			return writeOverview(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw website list as JSON")

	return cmd
}
