package render

import (
	"fmt"
	"io"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// Renderer writes a finished production graph in some output format.
// Renderers only read the graph; rounding happens here and nowhere else.
type Renderer interface {
	Render(w io.Writer, graph *production.Graph) error
}

// Options controls renderer presentation
type Options struct {
	Colors bool
}

// Formats lists the supported output formats
var Formats = []string{"dot", "tree", "table", "json"}

// New returns the renderer for a format name
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case "dot":
		return NewDOTRenderer(), nil
	case "tree":
		return NewTreeRenderer(opts.Colors), nil
	case "table":
		return NewTableRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported render format %q (want one of %v)", format, Formats)
	}
}
