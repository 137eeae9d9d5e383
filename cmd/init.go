package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roketin/r-component-cli/internal/config"
	"github.com/roketin/r-component-cli/internal/logger"
	"github.com/roketin/r-component-cli/internal/project"
	"github.com/roketin/r-component-cli/internal/templates"
	"github.com/roketin/r-component-cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize r-component configuration in your project",
	Long: `Init writes r-component.json at the project root. Defaults come from the
project layout: a src directory puts components under src/components, and a
tsconfig.json or a mostly TypeScript source tree turns on TypeScript.

Example usage:
  r-component init            # Answer the prompts
  r-component init -y         # Accept the detected defaults
  r-component init -c ./web   # Initialize another directory`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts and use defaults")
	initCmd.Flags().StringP("cwd", "c", "", "Working directory (default: current directory)")
}

func runInit(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	ctx := cmd.Context()
	log := app.Logger

	yes, _ := cmd.Flags().GetBool("yes")
	cwdFlag, _ := cmd.Flags().GetString("cwd")
	cwd, err := absDir(cwdFlag)
	if err != nil {
		return err
	}

	log.Break()
	log.Log(logger.Bold("R-Component CLI"))
	log.Info("Initializing project configuration...")
	log.Break()

	prompts := app.Prompter()
	if config.Exists(cwd) && !yes {
		overwrite, err := prompts.Confirm(ctx, fmt.Sprintf("%s already exists. Overwrite?", config.FileName), false)
		if err != nil && !errors.Is(err, ui.ErrAborted) {
			return err
		}
		if !overwrite || err != nil {
			log.Skip("Initialization cancelled.")
			return nil
		}
	}

	info, err := project.Inspect(cwd)
	if err != nil {
		return fmt.Errorf("failed to inspect project: %w", err)
	}
	log.Debugf("project languages: %v", info.Languages)

	cfg := config.DefaultConfig()
	cfg.BaseDir = info.DefaultBaseDir()
	cfg.TypeScript = info.TypeScript

	if !yes {
		if err := askConfig(cmd, prompts, cfg); err != nil {
			if errors.Is(err, ui.ErrAborted) {
				log.Skip("Initialization cancelled.")
				return nil
			}
			return err
		}
	}

	// the registry is only pinned when asked for explicitly
	cfg.Registry = app.Registry

	if err := config.Save(cfg, cwd); err != nil {
		log.Error(err.Error())
		return reportedError{err}
	}

	log.Break()
	log.Success(fmt.Sprintf("Created %s", logger.Highlight(config.FileName)))
	log.Break()
	log.Info("You can now add components using:")

	tmpl, err := templates.NewTemplateEngine()
	if err != nil {
		return err
	}
	steps, err := tmpl.Render(templates.InitNextSteps, templates.CommandData{Binary: "r-component"})
	if err != nil {
		return err
	}
	log.Log(steps)
	log.Break()
	return nil
}

// askConfig fills cfg from text prompts seeded with its current values.
// An empty base directory cancels.
func askConfig(cmd *cobra.Command, prompts ui.Asker, cfg *config.Config) error {
	ctx := cmd.Context()

	questions := []struct {
		message string
		field   *string
	}{
		{"Where would you like to install components?", &cfg.BaseDir},
		{"Component subdirectory name:", &cfg.ComponentsDir},
		{"UI primitives subdirectory name:", &cfg.UIDir},
		{"Libs directory (relative to baseDir parent):", &cfg.LibsDir},
	}
	for _, q := range questions {
		answer, err := prompts.Input(ctx, q.message, *q.field)
		if err != nil {
			return err
		}
		*q.field = strings.TrimSpace(answer)
	}
	if cfg.BaseDir == "" {
		return ui.ErrAborted
	}

	typescript, err := prompts.Confirm(ctx, "Are you using TypeScript?", cfg.TypeScript)
	if err != nil {
		return err
	}
	cfg.TypeScript = typescript

	aliases := []struct {
		message string
		field   *string
	}{
		{"Path alias for components:", &cfg.Aliases.Components},
		{"Path alias for libs:", &cfg.Aliases.Libs},
	}
	for _, q := range aliases {
		answer, err := prompts.Input(ctx, q.message, *q.field)
		if err != nil {
			return err
		}
		*q.field = strings.TrimSpace(answer)
	}
	return nil
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	return abs, nil
}
