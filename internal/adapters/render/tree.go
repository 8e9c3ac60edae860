package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// TreeRenderer draws each target's supply tree top-down. A node reached through
// several consumers appears under each of them; the factory count shown is always
// the node's total.
type TreeRenderer struct {
	useColors bool
}

// NewTreeRenderer creates a new tree renderer
func NewTreeRenderer(useColors bool) *TreeRenderer {
	return &TreeRenderer{useColors: useColors}
}

// Render implements Renderer
func (r *TreeRenderer) Render(w io.Writer, graph *production.Graph) error {
	var builder strings.Builder

	roots := graph.Inputs(production.EndNode)
	if len(roots) == 0 {
		builder.WriteString("(empty plan)\n")
	}
	for i, root := range roots {
		if i > 0 {
			builder.WriteString("\n")
		}
		r.formatNode(&builder, graph, root, "", true, true)
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

// formatNode recursively formats a node and its inputs
func (r *TreeRenderer) formatNode(
	builder *strings.Builder,
	graph *production.Graph,
	edge production.Edge,
	prefix string,
	isLast bool,
	isRoot bool,
) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	info := graph.Info(edge.Producer)
	fmt.Fprintf(builder, "%s%s%s%s %.1f/s [%.1f %s]\n",
		linePrefix,
		r.nodeColor(info),
		edge.Producer,
		r.colorReset(),
		edge.Rate,
		graph.Load(edge.Producer),
		info.Category,
	)

	inputs := graph.Inputs(edge.Producer)
	if len(inputs) == 0 {
		return
	}

	var childPrefix string
	if isRoot {
		childPrefix = ""
	} else if isLast {
		childPrefix = prefix + "    "
	} else {
		childPrefix = prefix + "│   "
	}

	for i, input := range inputs {
		r.formatNode(builder, graph, input, childPrefix, i == len(inputs)-1, false)
	}
}

// nodeColor returns the ANSI color for a node kind
func (r *TreeRenderer) nodeColor(info production.NodeInfo) string {
	if !r.useColors {
		return ""
	}

	switch {
	case info.Raw:
		return "\033[32m" // Green
	case info.Process:
		return "\033[35m" // Magenta
	default:
		return "\033[33m" // Yellow
	}
}

// colorReset returns ANSI reset code
func (r *TreeRenderer) colorReset() string {
	if !r.useColors {
		return ""
	}
	return "\033[0m"
}
