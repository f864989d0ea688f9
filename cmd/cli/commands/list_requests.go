package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/core/directory"
	"github.com/hopehub/hopehub/pkg/core/services"
	"github.com/hopehub/hopehub/pkg/db"
)

// ListRequestsCmd creates the listRequests command
func ListRequestsCmd(app *AppContext) *cobra.Command {
	var query, district string

	cmd := &cobra.Command{
		Use:   "listRequests",
		Short: "List aid requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if district != directory.AllDistricts && !directory.IsDistrict(district) {
				return fmt.Errorf("unknown district %q, expected one of: %s", district, strings.Join(directory.Districts, ", "))
			}

			app.Logger.Debug("listRequests command",
				zap.String("query", query),
				zap.String("district", district))

			dir := services.LoadDirectory(app.Ctx, app.Store, app.Logger, app.collections())
			filtered := directory.Filter(dir.Requests, query, district)

			fmt.Fprintf(out, "\nShowing %d of %d requests\n\n", len(filtered), len(dir.Requests))
			for _, r := range filtered {
				printRequestLine(out, r)
			}

			fmt.Fprintf(out, "\nTotal requests: %d | Active: %d | Donations: %d\n",
				dir.Stats.TotalRequests, dir.Stats.ActiveRequests, dir.Stats.TotalDonations)

			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search names, cities and items")
	cmd.Flags().StringVarP(&district, "district", "d", directory.AllDistricts, "Only show requests from this district")

	return cmd
}

func printRequestLine(out io.Writer, r db.Request) {
	fmt.Fprintf(out, "- %s [%s] %s, %s (%s) - %s - %d donations\n",
		r.Name,
		r.RequestType,
		r.CityTown,
		r.District,
		r.ID,
		r.Status,
		r.DonationCount,
	)
	if len(r.Items) > 0 {
		fmt.Fprintf(out, "    needs: %s\n", strings.Join(r.Items, ", "))
	}
}
