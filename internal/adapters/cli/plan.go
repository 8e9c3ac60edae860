package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/render"
	"github.com/andrescamacho/factory-planner-go/internal/application/production/commands"
	"github.com/andrescamacho/factory-planner-go/internal/application/production/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	var (
		expensive   bool
		reconcile   bool
		save        bool
		format      string
		output      string
		colors      bool
		summary     bool
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "plan [item=rate ...]",
		Short: "Compute the factories needed for target output rates",
		Long: `Compute the factories needed to sustain one or more target output rates.

Each target is an item name, or a unique prefix of one, followed by "=" and a rate
in items per second. Quote targets whose names contain spaces. A target without a
rate defaults to 1.70625/s. With no targets the planner.targets list from the
config file is used (by default science packs 1 to 3).

Output formats:
  dot    - Graphviz digraph (default), pipe into "dot -Tpng"
  tree   - dependency tree from each target down to raw resources
  table  - one row per item ordered by dependency depth
  json   - nodes and edges with unrounded values

Examples:
  factory-planner plan "iron gear wheel=1" --format tree
  factory-planner plan "science pack 3=1.70625" --expensive --output plan.dot
  factory-planner plan "plastic bar=10" --reconcile --format table
  factory-planner plan "advanced circuit=2" --reconcile --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(sessionOptions{needDatabase: save, metricsFile: metricsFile})
			if err != nil {
				return err
			}
			defer s.Close()

			applyPlanFlags(cmd, s.cfg, expensive, reconcile, save, format, output, colors)

			targets, err := parseTargets(args)
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				targets = targetsFromConfig(s.cfg.Planner.Targets)
			}

			result, err := s.mediator.Send(s.Context(), &commands.PlanProductionCommand{
				Targets:   targets,
				Expensive: s.cfg.Planner.Expensive,
				Reconcile: s.cfg.Planner.Reconcile,
				Save:      s.cfg.Planner.Save,
			})
			if err != nil {
				return err
			}
			response := result.(*commands.PlanProductionResponse)

			if err := writeGraph(response.Plan.Graph(), s.cfg.Render); err != nil {
				return err
			}

			if summary {
				displayPlanSummary(os.Stderr, response)
			} else if response.Saved {
				fmt.Fprintf(os.Stderr, "Plan saved: %s\n", response.Plan.ID())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&expensive, "expensive", false, "Use expensive-mode recipes")
	cmd.Flags().BoolVar(&reconcile, "reconcile", false, "Size the oil refining process against petroleum gas demand")
	cmd.Flags().BoolVar(&save, "save", false, "Store the plan in the plan history database")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: dot, tree, table, json (default from config: dot)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&colors, "colors", false, "Use ANSI colors in tree output")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a plan summary to stderr")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after planning")

	return cmd
}

// applyPlanFlags overrides configuration with flags the user actually set
func applyPlanFlags(cmd *cobra.Command, cfg *config.Config, expensive, reconcile, save bool, format, output string, colors bool) {
	flags := cmd.Flags()
	if flags.Changed("expensive") {
		cfg.Planner.Expensive = expensive
	}
	if flags.Changed("reconcile") {
		cfg.Planner.Reconcile = reconcile
	}
	if flags.Changed("save") {
		cfg.Planner.Save = save
	}
	if flags.Changed("format") {
		cfg.Render.Format = format
	}
	if flags.Changed("output") {
		cfg.Render.Output = output
	}
	if flags.Changed("colors") {
		cfg.Render.Colors = colors
	}
}

// writeGraph renders a graph to the configured output
func writeGraph(graph *production.Graph, cfg config.RenderConfig) error {
	renderer, err := render.New(cfg.Format, render.Options{Colors: cfg.Colors})
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := renderer.Render(f, graph); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to render plan: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	if err := renderer.Render(os.Stdout, graph); err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	return nil
}

// displayPlanSummary prints the targets, totals and refining process of a plan
func displayPlanSummary(w io.Writer, response *commands.PlanProductionResponse) {
	plan := response.Plan

	fmt.Fprintf(w, "Plan %s (%s mode)\n", plan.ID(), plan.Mode())
	analyzer := services.NewDependencyAnalyzer()
	fmt.Fprintln(w, "Targets:")
	for _, t := range plan.Targets() {
		fmt.Fprintf(w, "  %-28s %.3f/s  %d steps from raw\n", t.Resolved, t.Rate, analyzer.Depth(plan.Graph(), t.Resolved))
	}
	fmt.Fprintf(w, "Total factories: %.1f\n", plan.TotalFactories())

	if r := response.Reconciliation; r != nil && r.Multiplier > 0 {
		fmt.Fprintln(w, "Refining process:")
		fmt.Fprintf(w, "  Petroleum gas demand: %.2f/s\n", r.Demand)
		fmt.Fprintf(w, "  Crude oil required:   %.2f/s\n", r.Multiplier)
		fmt.Fprintf(w, "  Gas from processing:  %.2f/s\n", r.DirectContribution)
		fmt.Fprintf(w, "  Gas from cracking:    %.2f/s\n", r.CrackedContribution)

		for _, stage := range services.RefiningProcess().Stages() {
			fmt.Fprintf(w, "  %-24s %.1f %s\n", stage.Name+":", r.StageFactories[stage.Name], stage.FactoryCategory)
		}
	}

	if response.Saved {
		fmt.Fprintf(w, "Saved as %s\n", plan.ID())
	}
}
