package services

import (
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
)

// Level represents a group of graph nodes at the same distance from raw inputs
type Level struct {
	Nodes []production.Node
	Depth int // 0 = raw inputs, increases toward targets
}

// DependencyAnalyzer ranks production graph nodes by dependency depth
type DependencyAnalyzer struct{}

// NewDependencyAnalyzer creates a new dependency analyzer
func NewDependencyAnalyzer() *DependencyAnalyzer {
	return &DependencyAnalyzer{}
}

// IdentifyLevels groups nodes by dependency depth, ordered from raw inputs to
// targets. The end sentinel is omitted. Within a level, nodes keep graph order.
//
// Example:
//
//	iron gear wheel (depth 2)
//	└── iron plate (depth 1)
//	    └── iron ore (depth 0)
func (a *DependencyAnalyzer) IdentifyLevels(graph *production.Graph) []Level {
	depthMap := make(map[string]int)
	for _, node := range graph.Nodes() {
		a.computeDepth(graph, node.Name, depthMap, make(map[string]bool))
	}

	levelMap := make(map[int][]production.Node)
	maxDepth := 0
	for _, node := range graph.Nodes() {
		if node.Name == production.EndNode {
			continue
		}
		depth := depthMap[node.Name]
		levelMap[depth] = append(levelMap[depth], node)
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	result := make([]Level, 0, maxDepth+1)
	for depth := 0; depth <= maxDepth; depth++ {
		if nodes, exists := levelMap[depth]; exists {
			result = append(result, Level{Nodes: nodes, Depth: depth})
		}
	}

	return result
}

// Depth returns a single node's dependency depth
func (a *DependencyAnalyzer) Depth(graph *production.Graph, item string) int {
	return a.computeDepth(graph, item, make(map[string]int), make(map[string]bool))
}

// computeDepth calculates the longest path from a node down to a raw input.
// Nodes with no inputs have depth 0.
func (a *DependencyAnalyzer) computeDepth(
	graph *production.Graph,
	item string,
	depthMap map[string]int,
	visiting map[string]bool,
) int {
	if depth, exists := depthMap[item]; exists {
		return depth
	}
	if visiting[item] {
		return 0
	}
	visiting[item] = true
	defer func() { visiting[item] = false }()

	maxInputDepth := -1
	for _, edge := range graph.Inputs(item) {
		if d := a.computeDepth(graph, edge.Producer, depthMap, visiting); d > maxInputDepth {
			maxInputDepth = d
		}
	}

	depth := maxInputDepth + 1
	depthMap[item] = depth
	return depth
}
