package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/core/services"
	"github.com/hopehub/hopehub/pkg/db"
	"github.com/hopehub/hopehub/pkg/media"
)

// Resource types accepted by listResources and checkDuplicate
const (
	ResourceEducationWebsites = "educationWebsites"
	ResourceFileUploads       = "fileUploads"
	ResourceOneDriveLinks     = "oneDriveLinks"
	ResourceWhatsappGroups    = "whatsappGroups"
)

var resourceTypes = []string{
	ResourceEducationWebsites,
	ResourceFileUploads,
	ResourceOneDriveLinks,
	ResourceWhatsappGroups,
}

// resourceCatalog is one resource listing with its records rendered for display
type resourceCatalog struct {
	list        func(ctx context.Context) []string
	isDuplicate func(ctx context.Context, url string) bool
}

func newCatalog[T any](listing *services.ResourceListing[T], describe func(T) string) resourceCatalog {
	return resourceCatalog{
		list: func(ctx context.Context) []string {
			records := listing.List(ctx)
			lines := make([]string, len(records))
			for i, r := range records {
				lines[i] = describe(r)
			}
			return lines
		},
		isDuplicate: listing.IsDuplicate,
	}
}

func (app *AppContext) resourceCatalog(resourceType string) (resourceCatalog, error) {
	collections := app.collections()
	limit := app.Cfg.ListingLimit

	switch resourceType {
	case ResourceEducationWebsites:
		return newCatalog(services.EducationWebsites(app.Store, app.Logger, collections, limit), describeEducationWebsite), nil
	case ResourceFileUploads:
		return newCatalog(services.FileUploads(app.Store, app.Logger, collections, limit), describeFileUpload), nil
	case ResourceOneDriveLinks:
		return newCatalog(services.OneDriveLinks(app.Store, app.Logger, collections, limit), describeOneDriveLink), nil
	case ResourceWhatsappGroups:
		return newCatalog(services.WhatsappGroups(app.Store, app.Logger, collections, limit), describeWhatsappGroup), nil
	default:
		return resourceCatalog{}, fmt.Errorf("unknown resource type %q, expected one of: %s", resourceType, strings.Join(resourceTypes, ", "))
	}
}

func describeEducationWebsite(w db.EducationWebsite) string {
	parts := nonEmpty(w.Subject, w.Level, w.Grade, w.Year, w.Medium, w.UniversityName)
	return describe(w.URL, parts, w.Description)
}

func describeFileUpload(f db.FileUpload) string {
	parts := nonEmpty(f.FileName, f.Subject, f.Grade)
	if f.FileSize > 0 {
		parts = append(parts, media.FormatFileSize(f.FileSize))
	}
	return describe(f.URL, parts, f.Description)
}

func describeOneDriveLink(l db.OneDriveLink) string {
	return describe(l.URL, nonEmpty(l.Title, l.Subject, l.Grade), l.Description)
}

func describeWhatsappGroup(g db.WhatsappGroup) string {
	return describe(g.URL, nonEmpty(g.Name, g.Subject, g.Grade), g.Description)
}

func describe(url string, parts []string, description string) string {
	line := url
	if len(parts) > 0 {
		line += " [" + strings.Join(parts, " | ") + "]"
	}
	if description != "" {
		line += " - " + description
	}
	return line
}

func nonEmpty(values ...string) []string {
	return slices.DeleteFunc(values, func(v string) bool { return strings.TrimSpace(v) == "" })
}

// ListResourcesCmd creates the listResources command
func ListResourcesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listResources <type>",
		Short: "List shared study resources (" + strings.Join(resourceTypes, ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.resourceCatalog(args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("listResources command", zap.String("type", args[0]))

			lines := catalog.list(app.Ctx)
			printResourceLines(cmd.OutOrStdout(), args[0], lines)
			return nil
		},
	}
}

func printResourceLines(out io.Writer, resourceType string, lines []string) {
	fmt.Fprintf(out, "\nFound %d %s:\n\n", len(lines), resourceType)
	for _, line := range lines {
		fmt.Fprintf(out, "- %s\n", line)
	}
}

// CheckDuplicateCmd creates the checkDuplicate command
func CheckDuplicateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkDuplicate <type> <url>",
		Short: "Check whether a resource link has already been shared",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.resourceCatalog(args[0])
			if err != nil {
				return err
			}

			if catalog.isDuplicate(app.Ctx, args[1]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Duplicate: %s has already been shared\n", strings.TrimSpace(args[1]))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "New: %s has not been shared yet\n", strings.TrimSpace(args[1]))
			}
			return nil
		},
	}
}
