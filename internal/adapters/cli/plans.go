package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/application/production/queries"
)

// NewPlansCommand creates the plans command with subcommands
func NewPlansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse saved plans",
		Long: `Browse plans stored with "plan --save".

Plans are kept in the configured database (SQLite by default, PostgreSQL when
database.type is postgres or DATABASE_URL is set).

Examples:
  factory-planner plans list --limit 10
  factory-planner plans show science-pack-1-red-1a2b3c4d --format tree`,
	}

	// Add subcommands
	cmd.AddCommand(newPlansListCommand())
	cmd.AddCommand(newPlansShowCommand())

	return cmd
}

// newPlansListCommand creates the plans list subcommand
func newPlansListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(sessionOptions{needDatabase: true})
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.mediator.Send(s.Context(), &queries.ListPlansQuery{Limit: limit})
			if err != nil {
				return err
			}

			displayPlanList(os.Stdout, result.(*queries.ListPlansResponse))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of plans to list (0 for all)")

	return cmd
}

// newPlansShowCommand creates the plans show subcommand
func newPlansShowCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Render a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(sessionOptions{needDatabase: true})
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("format") {
				s.cfg.Render.Format = format
			}
			if cmd.Flags().Changed("output") {
				s.cfg.Render.Output = output
			}

			result, err := s.mediator.Send(s.Context(), &queries.GetPlanQuery{ID: args[0]})
			if err != nil {
				return err
			}

			return writeGraph(result.(*queries.GetPlanResponse).Plan.Graph(), s.cfg.Render)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: dot, tree, table, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}

func displayPlanList(out io.Writer, response *queries.ListPlansResponse) {
	if len(response.Plans) == 0 {
		fmt.Fprintln(out, "No saved plans")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tMODE\tOIL\tFACTORIES\tTARGETS")
	fmt.Fprintln(w, "--\t-------\t----\t---\t---------\t-------")
	for _, p := range response.Plans {
		oil := "-"
		if p.Reconciled {
			oil = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\n",
			p.ID,
			p.CreatedAt,
			p.Mode,
			oil,
			p.TotalFactories,
			strings.Join(p.Targets, ", "),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal: %d plans\n", len(response.Plans))
}
