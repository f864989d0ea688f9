package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hopehub/hopehub/pkg/core/services"
)

// ListCampaignsCmd creates the listCampaigns command
func ListCampaignsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listCampaigns",
		Short: "List fundraising campaigns, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			campaigns := services.ListCampaigns(app.Ctx, app.Store, app.Logger, app.collections(), app.Cfg.ListingLimit)

			fmt.Fprintf(out, "\nFound %d campaigns:\n\n", len(campaigns))
			for _, c := range campaigns {
				fmt.Fprintf(out, "- %s", c.Title)
				if c.Organizer != "" {
					fmt.Fprintf(out, " by %s", c.Organizer)
				}
				if location := nonEmpty(c.City, c.District); len(location) > 0 {
					fmt.Fprintf(out, " (%s)", strings.Join(location, ", "))
				}
				fmt.Fprintln(out)
				if c.Goal != "" {
					fmt.Fprintf(out, "    goal: %s\n", c.Goal)
				}
				if c.Link != "" {
					fmt.Fprintf(out, "    link: %s\n", c.Link)
				}
				if c.Contact != "" {
					fmt.Fprintf(out, "    contact: %s\n", c.Contact)
				}
			}

			return nil
		},
	}
}
