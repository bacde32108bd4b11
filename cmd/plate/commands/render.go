package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/plate/internal/app"
	"go.trai.ch/plate/internal/core/domain"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render one diagram and print the image path",
		Long: "Render one diagram and print the absolute path of the image.\n" +
			"The diagram is read from standard input when no file is given.\n" +
			"Nothing is printed when the renderer cannot be run.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := c.app.Render(cmd.Context(), renderRequest(cmd, args))
			if err != nil {
				return err
			}

			if rendered, ok := outcome.(domain.Rendered); ok {
				uri, _ := cmd.Flags().GetBool("uri")
				path := rendered.Paths.OutputPath
				if uri {
					path = rendered.Paths.OutputURI
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	addDiagramFlags(cmd)
	cmd.Flags().Bool("uri", false, "Print the web-relative image URI instead of the file path")
	return cmd
}

func (c *CLI) newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key [file|-]",
		Short: "Print the cache key of a diagram without rendering it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, paths, err := c.app.Key(cmd.Context(), renderRequest(cmd, args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, key.String())
			if showPaths, _ := cmd.Flags().GetBool("paths"); showPaths {
				_, _ = fmt.Fprintln(out, paths.InputPath)
				_, _ = fmt.Fprintln(out, paths.OutputPath)
			}
			return nil
		},
	}
	addDiagramFlags(cmd)
	cmd.Flags().Bool("paths", false, "Also print the artifact paths")
	return cmd
}

func addDiagramFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("inline", false, "Render as an inline diagram")
	cmd.Flags().StringP("prefix", "p", "", "Artifact filename prefix (default: from configuration)")
}

func renderRequest(cmd *cobra.Command, args []string) app.RenderRequest {
	inline, _ := cmd.Flags().GetBool("inline")
	prefix, _ := cmd.Flags().GetString("prefix")

	req := app.RenderRequest{
		ConfigPath: configPath(cmd),
		Inline:     inline,
		Prefix:     prefix,
	}
	if len(args) > 0 {
		req.Path = args[0]
	}
	return req
}
