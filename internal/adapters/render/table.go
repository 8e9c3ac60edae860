package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/andrescamacho/factory-planner-go/internal/application/production/services"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// TableRenderer lists one row per node, raw inputs first, ordered by dependency depth
type TableRenderer struct {
	analyzer *services.DependencyAnalyzer
}

// NewTableRenderer creates a table renderer
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{analyzer: services.NewDependencyAnalyzer()}
}

// Render implements Renderer
func (r *TableRenderer) Render(w io.Writer, graph *production.Graph) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tITEM\tCATEGORY\tFACTORIES\tOUTPUT/S\tTARGET")
	fmt.Fprintln(tw, "-----\t----\t--------\t---------\t--------\t------")

	total := 0.0
	for _, level := range r.analyzer.IdentifyLevels(graph) {
		for _, node := range level.Nodes {
			target := ""
			if graph.IsTarget(node.Name) {
				target = "yes"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.1f\t%s\n",
				level.Depth,
				node.Name,
				graph.Info(node.Name).Category,
				node.Load,
				graph.Outflow(node.Name),
				target,
			)
			total += node.Load
		}
	}

	fmt.Fprintf(tw, "\t\t\t%.1f\t\t\n", total)
	return tw.Flush()
}
