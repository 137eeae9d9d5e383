package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roketin/r-component-cli/internal/logger"
)

type contextKey string

// Context key for configuration
const ConfigKey contextKey = "config"

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// reportedError marks a failure the command already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "r-component",
	Short: "Add R-Component UI components to your project",
	Long: `r-component copies components from the R-Component registry into your
project, together with the lib and ui files they depend on.

Run "r-component init" once to write r-component.json, then add components
by name or pick them interactively.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	config := NewAppConfig(os.Stdin, os.Stdout)
	ctx := context.WithValue(context.Background(), ConfigKey, config)

	err := rootCmd.ExecuteContext(ctx)
	if config.MetricsFile != "" {
		if werr := config.Metrics.WriteTextfile(config.MetricsFile); werr != nil {
			config.Logger.Warn(fmt.Sprintf("Could not write metrics: %v", werr))
		}
	}

	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("output", outputText, "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("registry", "", "registry index URL (overrides R_COMPONENT_REGISTRY and the config)")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics to this file on exit")
}

// setup fills the shared AppConfig from the global flags. Structured output
// keeps stdout for the result document, so logs move to stderr.
func setup(cmd *cobra.Command, args []string) error {
	config := appConfig(cmd)

	verbose, _ := cmd.Flags().GetBool("verbose")
	output, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		output = outputJSON
	}
	switch output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", output)
	}

	config.Output = output
	config.Registry, _ = cmd.Flags().GetString("registry")
	config.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
	config.Interactive = logger.IsInteractive() && !config.Structured()

	logOut := cmd.OutOrStdout()
	if config.Structured() {
		logOut = cmd.ErrOrStderr()
	}
	config.Logger = logger.NewConsole(logOut, verbose)
	return nil
}

func appConfig(cmd *cobra.Command) *AppConfig {
	if config, ok := cmd.Context().Value(ConfigKey).(*AppConfig); ok {
		return config
	}
	return NewAppConfig(cmd.InOrStdin(), cmd.OutOrStdout())
}
