package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roketin/r-component-cli/internal/engine"
	"github.com/roketin/r-component-cli/internal/logger"
	"github.com/roketin/r-component-cli/internal/registry"
	"github.com/roketin/r-component-cli/internal/templates"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available components",
	Long: `List fetches the registry index and prints every component name.
The registry in r-component.json is used when the current directory has one.

Example usage:
  r-component list                # Human readable list
  r-component list --json         # Names as a JSON array
  r-component list --output yaml  # Names as a YAML sequence`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	log := app.Logger

	log.Break()
	log.Log(logger.Bold("R-Component CLI"))
	log.Break()

	eng := engine.New(engine.Options{
		Registry: registry.Options{IndexURL: app.Registry},
		Logger:   log,
		Metrics:  app.Metrics,
	})
	index, err := eng.List(cmd.Context(), "")
	if err != nil {
		if errors.Is(err, registry.ErrRegistryUnreachable) {
			return reportedError{err}
		}
		return err
	}
	log.Break()

	names := index.Components
	if names == nil {
		names = []string{}
	}
	if app.Structured() {
		return writeResult(cmd.OutOrStdout(), app.Output, names)
	}

	log.Info(fmt.Sprintf("Available components (%d):", len(names)))
	log.Break()
	for _, name := range names {
		log.Log("  " + logger.Highlight(name))
	}
	log.Break()

	tmpl, err := templates.NewTemplateEngine()
	if err != nil {
		return err
	}
	footer, err := tmpl.Render(templates.ListFooter, templates.CommandData{Binary: "r-component"})
	if err != nil {
		return err
	}
	log.Info(footer)
	log.Break()
	return nil
}
