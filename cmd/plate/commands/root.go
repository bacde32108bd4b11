// Package commands implements the CLI commands for plate.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/plate/internal/app"
	"go.trai.ch/plate/internal/build"
	"go.trai.ch/plate/internal/core/domain"
)

// CLI represents the command line interface for plate.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	shutdown func(context.Context) error
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(verbose, json bool)
	EnableTracing() func(context.Context) error
	Render(ctx context.Context, req app.RenderRequest) (domain.Outcome, error)
	Key(ctx context.Context, req app.RenderRequest) (domain.CacheKey, domain.ArtifactPaths, error)
	Build(ctx context.Context, docs []string, opts app.BuildOptions) error
	Watch(ctx context.Context, docs []string, opts app.BuildOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "plate",
		Short:         "Render ditaa diagrams into a content-addressed image cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to plate.yaml or plate.toml (default: discovered from the working directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output, including renderer stderr")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().Bool("trace", false, "Log a trace span for every render")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = c.configure

	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newKeyCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configure(cmd *cobra.Command, _ []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	json, _ := cmd.Flags().GetBool("json")
	c.app.ConfigureLogging(verbose, json)

	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		c.shutdown = c.app.EnableTracing()
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if c.shutdown != nil {
		// The command context may already be cancelled.
		err = errors.Join(err, c.shutdown(context.WithoutCancel(ctx)))
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
