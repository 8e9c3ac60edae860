package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// palette is cycled through by factory category in order of first appearance
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
	"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
}

// DOTRenderer writes graphviz source. Raw inputs are ranked as sources, targets
// share a rank, and the end sentinel is the sink.
type DOTRenderer struct{}

// NewDOTRenderer creates a DOT renderer
func NewDOTRenderer() *DOTRenderer {
	return &DOTRenderer{}
}

// Render implements Renderer
func (r *DOTRenderer) Render(w io.Writer, graph *production.Graph) error {
	var b strings.Builder

	ids := make(map[string]string)
	colors := make(map[string]string)
	var sources, targets, sinks, others []string

	for _, node := range graph.Nodes() {
		id := fmt.Sprintf("n%d", len(ids))
		ids[node.Name] = id

		info := graph.Info(node.Name)
		if _, ok := colors[info.Category]; !ok && info.Category != "" {
			colors[info.Category] = palette[len(colors)%len(palette)]
		}

		decl := fmt.Sprintf("%s [label=%s", id, strconv.Quote(fmt.Sprintf("%s [%.1f]", node.Name, node.Load)))
		if color, ok := colors[info.Category]; ok {
			decl += fmt.Sprintf(" fillcolor=%q", color)
		}
		if info.Process {
			decl += " shape=hexagon"
		}
		if graph.IsTarget(node.Name) {
			decl += " penwidth=2"
		}
		decl += "]"

		switch {
		case node.Name == production.EndNode:
			sinks = append(sinks, decl)
		case info.Raw:
			sources = append(sources, decl)
		case graph.IsTarget(node.Name):
			targets = append(targets, decl)
		default:
			others = append(others, decl)
		}
	}

	b.WriteString("digraph production {\n")
	b.WriteString("\tnode [shape=box style=filled fillcolor=\"#ffffff\"]\n")
	for _, decl := range others {
		fmt.Fprintf(&b, "\t%s\n", decl)
	}
	writeRank(&b, "source", sources)
	writeRank(&b, "same", targets)
	writeRank(&b, "sink", sinks)

	for _, edge := range graph.Edges() {
		fmt.Fprintf(&b, "\t%s -> %s [label=\"%.1f\"]\n", ids[edge.Producer], ids[edge.Consumer], edge.Rate)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRank(b *strings.Builder, rank string, decls []string) {
	if len(decls) == 0 {
		return
	}
	fmt.Fprintf(b, "\tsubgraph {\n\t\trank=%s\n", rank)
	for _, decl := range decls {
		fmt.Fprintf(b, "\t\t%s\n", decl)
	}
	b.WriteString("\t}\n")
}
