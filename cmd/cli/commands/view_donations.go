package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/core/directory"
	"github.com/hopehub/hopehub/pkg/core/services"
	"github.com/hopehub/hopehub/pkg/db"
)

// ViewDonationsCmd creates the viewDonations command
func ViewDonationsCmd(app *AppContext) *cobra.Command {
	var query, district string

	cmd := &cobra.Command{
		Use:   "viewDonations <request_id>",
		Short: "Show a request, its donation offers and other requests nearby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			requestID := args[0]

			app.Logger.Debug("viewDonations command", zap.String("request_id", requestID))

			request, err := services.GetRequest(app.Ctx, app.Store, app.collections(), requestID)
			if err != nil {
				return err
			}

			donations, err := services.ListDonations(app.Ctx, app.Store, app.Logger, app.collections(), requestID)
			if err != nil {
				app.Logger.Error("Error loading donations", zap.String("request_id", requestID), zap.Error(err))
				donations = []db.Donation{}
			}

			fmt.Fprintf(out, "\n%s [%s]\n", request.Name, request.RequestType)
			fmt.Fprintf(out, "%s, %s - contact %s\n", request.CityTown, request.District, request.ContactNumber)
			fmt.Fprintf(out, "%s\n", request.Description)
			if request.MapLink != nil {
				fmt.Fprintf(out, "Map: %s\n", directory.ToEmbedURL(*request.MapLink))
			}

			fmt.Fprintf(out, "\nDonation offers (%d):\n", len(donations))
			printDonations(out, donations, "  ")

			// Other requests from the same filtered view, with their offers
			dir := services.LoadDirectory(app.Ctx, app.Store, app.Logger, app.collections())
			others := directory.OtherRequests(directory.Filter(dir.Requests, query, district), requestID, app.Cfg.NearbyRequestCount)
			if len(others) == 0 {
				return nil
			}

			otherDonations := services.LoadDonationsForRequests(
				app.Ctx,
				app.Store,
				app.Logger,
				app.collections(),
				others,
				app.Cfg.DonationLoadConcurrency,
			)

			fmt.Fprintf(out, "\nOther requests:\n")
			for _, other := range others {
				printRequestLine(out, other)
				printDonations(out, otherDonations[other.ID], "    ")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search used to pick other requests")
	cmd.Flags().StringVarP(&district, "district", "d", directory.AllDistricts, "District used to pick other requests")

	return cmd
}

func printDonations(out io.Writer, donations []db.Donation, indent string) {
	if len(donations) == 0 {
		fmt.Fprintf(out, "%sNo offers yet\n", indent)
		return
	}
	for _, d := range donations {
		when := "unknown time"
		if !d.CreatedAt.IsZero() {
			when = d.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%s- %s (%s) offers %s [%s, %s]\n", indent, d.DonorName, d.DonorContact, d.DonationItems, d.Status, when)
		if d.DonorLocation != nil {
			fmt.Fprintf(out, "%s  from %s\n", indent, *d.DonorLocation)
		}
		if d.Message != nil {
			fmt.Fprintf(out, "%s  %q\n", indent, *d.Message)
		}
	}
}
