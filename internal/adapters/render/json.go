package render

import (
	"encoding/json"
	"io"

	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// JSONRenderer writes the graph as a JSON document with unrounded values
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonDocument struct {
	Nodes   []jsonNode `json:"nodes"`
	Edges   []jsonEdge `json:"edges"`
	Targets []string   `json:"targets"`
}

type jsonNode struct {
	Name      string  `json:"name"`
	Factories float64 `json:"factories"`
	Category  string  `json:"category,omitempty"`
	Raw       bool    `json:"raw"`
	Process   bool    `json:"process,omitempty"`
}

type jsonEdge struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

// Render implements Renderer
func (r *JSONRenderer) Render(w io.Writer, graph *production.Graph) error {
	doc := jsonDocument{
		Nodes:   make([]jsonNode, 0),
		Edges:   make([]jsonEdge, 0),
		Targets: graph.Targets(),
	}
	for _, node := range graph.Nodes() {
		info := graph.Info(node.Name)
		doc.Nodes = append(doc.Nodes, jsonNode{
			Name:      node.Name,
			Factories: node.Load,
			Category:  info.Category,
			Raw:       info.Raw,
			Process:   info.Process,
		})
	}
	for _, edge := range graph.Edges() {
		doc.Edges = append(doc.Edges, jsonEdge{From: edge.Producer, To: edge.Consumer, Rate: edge.Rate})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
