package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hopehub/hopehub/pkg/core/directory"
)

// EmbedURLCmd creates the embedURL command
func EmbedURLCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "embedURL <link>",
		Short: "Convert a map link into an embeddable preview URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			embed := directory.ToEmbedURL(args[0])
			if embed == "" {
				return fmt.Errorf("map link is empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), embed)
			return nil
		},
	}
}
