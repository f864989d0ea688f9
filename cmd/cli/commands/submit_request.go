package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/core/directory"
	"github.com/hopehub/hopehub/pkg/core/services"
	"github.com/hopehub/hopehub/pkg/db"
	"github.com/hopehub/hopehub/pkg/media"
)

// SubmitRequestCmd creates the submitRequest command
func SubmitRequestCmd(app *AppContext) *cobra.Command {
	var (
		form       services.RequestForm
		proofPaths []string
		typeFlag   string
	)

	cmd := &cobra.Command{
		Use:   "submitRequest",
		Short: "Submit an aid request with proof files",
		Long: `Submit an aid request for a student, school or library.

Students attach JPG or PNG photos as proof, schools and libraries attach PDF or DOCX letters.
Each proof file must be 10MB or smaller.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			form.RequestType = db.RequestType(typeFlag)

			// Open proof files and sniff their content types
			files := make([]media.File, 0, len(proofPaths))
			for _, path := range proofPaths {
				file, handle, err := media.OpenFile(path)
				if err != nil {
					return err
				}
				defer handle.Close()

				if file.Size > app.Cfg.Media.MaxFileSize {
					return fmt.Errorf("%s is %s, the limit is %s",
						file.Name, media.FormatFileSize(file.Size), media.FormatFileSize(app.Cfg.Media.MaxFileSize))
				}
				files = append(files, file)
			}

			app.Logger.Debug("submitRequest command",
				zap.String("request_type", typeFlag),
				zap.Int("proof_files", len(files)))

			if len(files) > 0 {
				fmt.Fprintln(out, "Uploading proof files...")
			}

			lastIndex := -1
			request, err := services.SubmitRequest(
				app.Ctx,
				app.Store,
				app.Uploader,
				app.Logger,
				app.collections(),
				form,
				files,
				func(index, percent int) {
					if index != lastIndex {
						if lastIndex >= 0 {
							fmt.Fprintln(out)
						}
						lastIndex = index
					}
					fmt.Fprintf(out, "\r  File %d of %d: %3d%%", index+1, len(files), percent)
				},
			)
			if lastIndex >= 0 {
				fmt.Fprintln(out)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n✓ %s\n\n", services.RequestSubmittedMessage)
			fmt.Fprintf(out, "Request ID: %s\n", request.ID)
			fmt.Fprintf(out, "Type:       %s\n", request.RequestType)
			fmt.Fprintf(out, "Location:   %s, %s\n", request.CityTown, request.District)
			fmt.Fprintf(out, "Items:      %d\n", len(request.Items))
			for i, url := range request.ProofFiles {
				fmt.Fprintf(out, "Proof %d:    %s\n", i+1, url)
			}
			if request.MapLink != nil {
				fmt.Fprintf(out, "Map:        %s\n", directory.ToEmbedURL(*request.MapLink))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", string(db.RequestTypeStudent), "Request type: student, school or library")
	cmd.Flags().StringVar(&form.Name, "name", "", "Name of the student, school or library")
	cmd.Flags().StringVar(&form.Contact, "contact", "", "Contact number")
	cmd.Flags().StringVar(&form.District, "district", "", "District, e.g. Colombo")
	cmd.Flags().StringVar(&form.City, "city", "", "City or town")
	cmd.Flags().StringVar(&form.MapLink, "map-link", "", "Optional map link to the location")
	cmd.Flags().StringVar(&form.Description, "description", "", "What happened and what is needed")
	cmd.Flags().StringArrayVar(&form.Items, "item", nil, "Item needed (repeatable)")
	cmd.Flags().StringArrayVar(&proofPaths, "proof", nil, "Path to a proof file (repeatable)")

	return cmd
}
