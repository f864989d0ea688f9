package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/core/services"
)

// PledgeCmd creates the pledge command
func PledgeCmd(app *AppContext) *cobra.Command {
	var form services.DonationForm

	cmd := &cobra.Command{
		Use:   "pledge <request_id>",
		Short: "Offer a donation against a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			requestID := args[0]

			app.Logger.Debug("pledge command", zap.String("request_id", requestID))

			request, err := services.GetRequest(app.Ctx, app.Store, app.collections(), requestID)
			if err != nil {
				return err
			}

			donation, err := services.SubmitDonation(app.Ctx, app.Store, app.Logger, app.collections(), *request, form)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n✓ %s\n\n", services.DonationSubmittedMessage)
			fmt.Fprintf(out, "Donation ID: %s\n", donation.ID)
			fmt.Fprintf(out, "Request:     %s (%s)\n", donation.RequestName, donation.RequestType)
			fmt.Fprintf(out, "Items:       %s\n", donation.DonationItems)

			return nil
		},
	}

	cmd.Flags().StringVar(&form.DonorName, "name", "", "Your name")
	cmd.Flags().StringVar(&form.DonorContact, "contact", "", "Phone number or email")
	cmd.Flags().StringVar(&form.DonorLocation, "location", "", "Where you are (optional)")
	cmd.Flags().StringVar(&form.DonationItems, "items", "", "What you can donate")
	cmd.Flags().StringVar(&form.Message, "message", "", "Message for the requester (optional)")

	return cmd
}
