package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	catalogPath string
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "factory-planner",
		Short: "Factory planner - size production chains for target output rates",
		Long: `Factory planner computes how many factories of each kind are needed to
sustain a set of target output rates, following every recipe down to raw resources.

With --reconcile the oil refining process is sized against the petroleum gas demand
of the plan, including heavy and light oil cracking.

Examples:
  factory-planner plan "electronic circuit=2"
  factory-planner plan "science pack 1=1.70625" "science pack 2=1.70625" --expensive
  factory-planner plan "plastic bar=10" --reconcile --format table
  factory-planner catalog list
  factory-planner catalog show "advanced circuit"
  factory-planner plans list`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"Path to a YAML recipe catalog (default: embedded catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewPlansCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
