package production

// EndNode is the sentinel consumer of every top-level target
const EndNode = "end"

// EdgeKey identifies a producer→consumer edge
type EdgeKey struct {
	Producer string
	Consumer string
}

// Node is a read-only view of one item's accumulated load
type Node struct {
	Name string
	// Load is the number of factories that must run continuously to meet demand
	Load float64
}

// Edge is a read-only view of one producer→consumer flow
type Edge struct {
	Producer string
	Consumer string
	// Rate is in items per second
	Rate float64
}

// NodeInfo carries display metadata for renderers
type NodeInfo struct {
	// Category is the factory category producing the item
	Category string

	// Raw marks items with no inputs (extracted, not crafted)
	Raw bool

	// Process marks nodes that stand for a refining stage rather than an item
	Process bool
}

// Graph accumulates item loads and edge flows across any number of demand
// propagations. Values only ever grow: every mutation is an addition, so shared
// (diamond) dependencies sum across paths.
//
// Iteration order of nodes and edges is first-insertion order.
type Graph struct {
	nodes     map[string]float64
	nodeOrder []string
	edges     map[EdgeKey]float64
	edgeOrder []EdgeKey
	targets   map[string]bool
	targetOrd []string
	info      map[string]NodeInfo
}

// NewGraph creates a graph containing only the end sentinel
func NewGraph() *Graph {
	g := &Graph{
		nodes:   make(map[string]float64),
		edges:   make(map[EdgeKey]float64),
		targets: make(map[string]bool),
		info:    make(map[string]NodeInfo),
	}
	g.AddLoad(EndNode, 0)
	return g
}

// AddLoad accumulates load onto a node, creating it on first use
func (g *Graph) AddLoad(item string, load float64) {
	if _, exists := g.nodes[item]; !exists {
		g.nodeOrder = append(g.nodeOrder, item)
	}
	g.nodes[item] += load
}

// AddFlow accumulates flow onto an edge, creating it on first use
func (g *Graph) AddFlow(producer, consumer string, rate float64) {
	key := EdgeKey{Producer: producer, Consumer: consumer}
	if _, exists := g.edges[key]; !exists {
		g.edgeOrder = append(g.edgeOrder, key)
	}
	g.edges[key] += rate
}

// MarkTarget records an item as explicitly requested
func (g *Graph) MarkTarget(item string) {
	if !g.targets[item] {
		g.targets[item] = true
		g.targetOrd = append(g.targetOrd, item)
	}
}

// Annotate sets display metadata for a node
func (g *Graph) Annotate(item string, info NodeInfo) {
	g.info[item] = info
}

// HasNode returns true if the item has been added to the graph
func (g *Graph) HasNode(item string) bool {
	_, ok := g.nodes[item]
	return ok
}

// Load returns a node's accumulated load (0 if absent)
func (g *Graph) Load(item string) float64 {
	return g.nodes[item]
}

// Flow returns an edge's accumulated rate (0 if absent)
func (g *Graph) Flow(producer, consumer string) float64 {
	return g.edges[EdgeKey{Producer: producer, Consumer: consumer}]
}

// Outflow returns the total rate leaving a producer across all its edges
func (g *Graph) Outflow(producer string) float64 {
	total := 0.0
	for _, key := range g.edgeOrder {
		if key.Producer == producer {
			total += g.edges[key]
		}
	}
	return total
}

// IsTarget returns true if the item was explicitly requested
func (g *Graph) IsTarget(item string) bool {
	return g.targets[item]
}

// Info returns a node's display metadata
func (g *Graph) Info(item string) NodeInfo {
	return g.info[item]
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodeOrder))
	for _, name := range g.nodeOrder {
		nodes = append(nodes, Node{Name: name, Load: g.nodes[name]})
	}
	return nodes
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		edges = append(edges, Edge{Producer: key.Producer, Consumer: key.Consumer, Rate: g.edges[key]})
	}
	return edges
}

// Targets returns the requested items in the order they were first requested
func (g *Graph) Targets() []string {
	targets := make([]string, len(g.targetOrd))
	copy(targets, g.targetOrd)
	return targets
}

// Inputs returns the producers feeding a consumer, in edge insertion order
func (g *Graph) Inputs(consumer string) []Edge {
	edges := make([]Edge, 0)
	for _, key := range g.edgeOrder {
		if key.Consumer == consumer {
			edges = append(edges, Edge{Producer: key.Producer, Consumer: consumer, Rate: g.edges[key]})
		}
	}
	return edges
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:     make(map[string]float64, len(g.nodes)),
		nodeOrder: append([]string(nil), g.nodeOrder...),
		edges:     make(map[EdgeKey]float64, len(g.edges)),
		edgeOrder: append([]EdgeKey(nil), g.edgeOrder...),
		targets:   make(map[string]bool, len(g.targets)),
		targetOrd: append([]string(nil), g.targetOrd...),
		info:      make(map[string]NodeInfo, len(g.info)),
	}
	for k, v := range g.nodes {
		c.nodes[k] = v
	}
	for k, v := range g.edges {
		c.edges[k] = v
	}
	for k, v := range g.targets {
		c.targets[k] = v
	}
	for k, v := range g.info {
		c.info[k] = v
	}
	return c
}
