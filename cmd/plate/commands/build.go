package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/plate/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [documents...]",
		Short: "Render the diagrams of documents and write presentation fragments",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			format, _ := cmd.Flags().GetString("format")
			parallel, _ := cmd.Flags().GetInt("parallel")
			watch, _ := cmd.Flags().GetBool("watch")

			opts := app.BuildOptions{
				ConfigPath:  configPath(cmd),
				Format:      format,
				Parallelism: parallel,
			}
			if watch {
				return c.app.Watch(cmd.Context(), args, opts)
			}
			return c.app.Build(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringP("format", "f", "", "Output format: html or latex (default: from configuration)")
	cmd.Flags().IntP("parallel", "j", 0, "Maximum concurrent renders (default: from configuration)")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild documents when they change")
	return cmd
}
