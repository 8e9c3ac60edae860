package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect factory planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FP_* prefix, e.g. FP_PLANNER_EXPENSIVE=true)
2. Config file (config.yaml in ., ./configs or /etc/factory-planner)
3. Default values

A .env file in the working directory is loaded before the environment is read.

Examples:
  factory-planner config show
  factory-planner config show --config configs/config.example.yaml`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the effective configuration after files, environment and defaults
have been merged.

Example:
  factory-planner config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Printf("Warning: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			displayConfig(os.Stdout, cfg)
			return nil
		},
	}

	return cmd
}

func displayConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Factory Planner Configuration")
	fmt.Fprintln(out, "=============================")

	fmt.Fprintln(out, "\nCatalog:")
	if cfg.Catalog.Path != "" {
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
	} else {
		fmt.Fprintf(out, "  Path:             (embedded)\n")
	}

	fmt.Fprintln(out, "\nPlanner:")
	fmt.Fprintf(out, "  Expensive:        %t\n", cfg.Planner.Expensive)
	fmt.Fprintf(out, "  Reconcile oil:    %t\n", cfg.Planner.Reconcile)
	fmt.Fprintf(out, "  Save plans:       %t\n", cfg.Planner.Save)
	fmt.Fprintln(out, "  Default targets:")
	for _, t := range cfg.Planner.Targets {
		fmt.Fprintf(out, "    %-24s %g/s\n", t.Item, t.Rate)
	}

	fmt.Fprintln(out, "\nRender:")
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Render.Format)
	if cfg.Render.Output != "" {
		fmt.Fprintf(out, "  Output:           %s\n", cfg.Render.Output)
	} else {
		fmt.Fprintf(out, "  Output:           (stdout)\n")
	}
	fmt.Fprintf(out, "  Colors:           %t\n", cfg.Render.Colors)

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Database.Enabled)
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
	}
	fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
	fmt.Fprintf(out, "  Namespace:        %s\n", cfg.Metrics.Namespace)
	if cfg.Metrics.File != "" {
		fmt.Fprintf(out, "  File:             %s\n", cfg.Metrics.File)
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
