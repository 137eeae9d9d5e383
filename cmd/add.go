package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roketin/r-component-cli/internal/config"
	"github.com/roketin/r-component-cli/internal/deps"
	"github.com/roketin/r-component-cli/internal/engine"
	"github.com/roketin/r-component-cli/internal/logger"
	"github.com/roketin/r-component-cli/internal/registry"
	"github.com/roketin/r-component-cli/internal/templates"
	"github.com/roketin/r-component-cli/internal/ui"
)

// newCommander runs the package manager for --install-deps.
var newCommander = deps.NewReal

var addCmd = &cobra.Command{
	Use:   "add [components...]",
	Short: "Add component(s) to your project",
	Long: `Add copies the named components into the project, along with every
registry component, lib and ui file they depend on. Import paths inside the
files are rewritten to the aliases in r-component.json.

Without names, a list of available components is shown to pick from.

Example usage:
  r-component add button                # Add one component
  r-component add card input -y         # Skip the confirmation
  r-component add --all --overwrite     # Add everything, replacing files
  r-component add dialog --dry-run      # Show what would be written
  r-component add select --install-deps # Also install npm packages`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
	addCmd.Flags().BoolP("overwrite", "o", false, "Overwrite existing files")
	addCmd.Flags().StringP("cwd", "c", "", "Working directory (default: current directory)")
	addCmd.Flags().BoolP("all", "a", false, "Add all available components")
	addCmd.Flags().Bool("dry-run", false, "Report the files that would be written without writing them")
	addCmd.Flags().Int("concurrency", 1, "Number of files fetched and written in parallel")
	addCmd.Flags().Bool("install-deps", false, "Install required npm packages with the project's package manager")
}

func runAdd(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	ctx := cmd.Context()
	log := app.Logger

	yes, _ := cmd.Flags().GetBool("yes")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	all, _ := cmd.Flags().GetBool("all")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	installDeps, _ := cmd.Flags().GetBool("install-deps")
	cwdFlag, _ := cmd.Flags().GetString("cwd")

	cwd, err := absDir(cwdFlag)
	if err != nil {
		return err
	}
	if concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", concurrency)
	}

	log.Break()
	log.Log(logger.Bold("R-Component CLI"))
	log.Break()

	prompts := app.Prompter()
	eng := engine.New(engine.Options{
		Registry:  registry.Options{IndexURL: app.Registry},
		Logger:    log,
		Selector:  prompts,
		Confirmer: prompts,
		Metrics:   app.Metrics,
	})

	report, err := eng.Add(ctx, engine.Request{
		Components:  args,
		All:         all,
		Yes:         yes,
		Overwrite:   overwrite,
		DryRun:      dryRun,
		Cwd:         cwd,
		Concurrency: concurrency,
	})
	if err != nil {
		return addError(err)
	}

	log.Break()
	ui.PrintSummary(log, report.Stats)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.Log(ui.RenderOutcomes(report.Stats.Files, cwd))
	}

	if len(report.Dependencies) > 0 {
		if installDeps {
			if err := installDependencies(cmd, app, cwd, report.Dependencies, dryRun); err != nil {
				log.Error(err.Error())
				printDependencyHint(log, report.Dependencies)
			}
		} else {
			printDependencyHint(log, report.Dependencies)
		}
	}
	log.Break()

	if app.Structured() {
		return writeResult(cmd.OutOrStdout(), app.Output, report)
	}
	return nil
}

// addError maps engine aborts to the command result. Choosing nothing or
// declining is not a failure.
func addError(err error) error {
	switch {
	case errors.Is(err, engine.ErrNothingSelected), errors.Is(err, engine.ErrCancelled):
		return nil
	case errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, registry.ErrRegistryUnreachable),
		errors.Is(err, engine.ErrNoValidComponents):
		return reportedError{err}
	default:
		return err
	}
}

func installDependencies(cmd *cobra.Command, app *AppConfig, cwd string, packages []string, dryRun bool) error {
	installer := deps.NewInstaller(newCommander(), app.Logger)

	var manager deps.Manager
	run := func() error {
		var err error
		manager, err = installer.Install(cmd.Context(), cwd, packages, dryRun)
		return err
	}

	var err error
	if app.Interactive && !dryRun {
		err = ui.RunSpinnerTo(cmd.Context(), cmd.OutOrStdout(), "Installing dependencies...", run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}
	if manager != "" && !dryRun {
		app.Logger.Success(fmt.Sprintf("Installed %s with %s", strings.Join(packages, ", "), manager))
	}
	return nil
}

func printDependencyHint(log logger.Leveled, packages []string) {
	tmpl, err := templates.NewTemplateEngine()
	if err != nil {
		log.Error(err.Error())
		return
	}
	hint, err := tmpl.DependencyHint([]string{
		deps.NPM.Command(packages),
		deps.PNPM.Command(packages),
	})
	if err != nil {
		log.Error(err.Error())
		return
	}
	log.Break()
	log.Info("Install required dependencies:")
	log.Log(hint)
}
