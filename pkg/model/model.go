// Package model defines the disc/node/edge arena a single planning
// request builds and discards: discs are obstacle (or point) circles,
// nodes are points on a disc's boundary, and edges are either straight
// "surfing" bitangents between discs or circular "hugging" arcs along
// one disc's boundary. Identity is by handle, not by value or pointer —
// positional equality is unreliable under floating-point drift, and a
// graph owns its discs/nodes/edges as flat slices rather than a web of
// pointers that would need cycle management.
package model

import "chessmotion/pkg/geometry"

// DiscHandle identifies a disc within a single Graph.
type DiscHandle uint32

// NodeHandle identifies a node within a single Graph.
type NodeHandle uint32

// Disc is an obstacle (or, with Radius == 0, a start/goal point)
// represented as a circle. Immutable after construction.
type Disc struct {
	Center Point
	Radius float64
}

// Point is a position in the plane. Alias kept local to model so callers
// of this package don't need to import geometry just to build a Disc.
type Point = geometry.Point

// IsPoint reports whether d is a zero-radius point disc.
func (d Disc) IsPoint() bool {
	return d.Radius == 0
}

// Node is a point on (or, for a point disc, coincident with) a disc.
type Node struct {
	Disc     DiscHandle
	Position Point
}

// EdgeKind distinguishes a straight bitangent from a boundary arc.
type EdgeKind int

const (
	// Surfing is a straight line segment between nodes on distinct discs.
	Surfing EdgeKind = iota
	// Hugging is a circular arc between two nodes on the same disc.
	Hugging
)

// Edge is an unordered pair of nodes plus its kind.
type Edge struct {
	A, B NodeHandle
	Kind EdgeKind
}

// Other returns the endpoint of e that is not n.
func (e Edge) Other(n NodeHandle) NodeHandle {
	if e.A == n {
		return e.B
	}
	return e.A
}

// Graph is the arena for a single planning request: a disc set, a node
// set indexed by handle, and surfing/hugging edge lists.
type Graph struct {
	discs []Disc
	nodes []Node
	// SurfingEdges and HuggingEdges are exported so the visibility
	// builder (which lives in a different package) can mutate them
	// directly while constructing the graph.
	SurfingEdges []Edge
	HuggingEdges []Edge

	// There is no adjacency index: Neighbors scans the edge lists on
	// every call, so pkg/model stays a plain arena with no derived
	// indices to keep in sync mid-construction.
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddDisc appends a disc and returns its handle.
func (g *Graph) AddDisc(d Disc) DiscHandle {
	g.discs = append(g.discs, d)
	return DiscHandle(len(g.discs) - 1)
}

// AddNode appends a node and returns its handle.
func (g *Graph) AddNode(n Node) NodeHandle {
	g.nodes = append(g.nodes, n)
	return NodeHandle(len(g.nodes) - 1)
}

// Disc returns the disc for handle h.
func (g *Graph) Disc(h DiscHandle) Disc {
	return g.discs[h]
}

// Node returns the node for handle h.
func (g *Graph) Node(h NodeHandle) Node {
	return g.nodes[h]
}

// NumDiscs returns the number of discs in the graph.
func (g *Graph) NumDiscs() int {
	return len(g.discs)
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// DiscHandles returns the handles of every disc in the graph, in
// insertion order.
func (g *Graph) DiscHandles() []DiscHandle {
	handles := make([]DiscHandle, len(g.discs))
	for i := range g.discs {
		handles[i] = DiscHandle(i)
	}
	return handles
}

// NodeHandles returns the handles of every node in the graph, in
// insertion order.
func (g *Graph) NodeHandles() []NodeHandle {
	handles := make([]NodeHandle, len(g.nodes))
	for i := range g.nodes {
		handles[i] = NodeHandle(i)
	}
	return handles
}

// NodesOnDisc returns the handles of every node owned by disc h.
func (g *Graph) NodesOnDisc(h DiscHandle) []NodeHandle {
	var out []NodeHandle
	for i, n := range g.nodes {
		if n.Disc == h {
			out = append(out, NodeHandle(i))
		}
	}
	return out
}

// AllEdges returns the concatenation of surfing and hugging edges.
func (g *Graph) AllEdges() []Edge {
	edges := make([]Edge, 0, len(g.SurfingEdges)+len(g.HuggingEdges))
	edges = append(edges, g.SurfingEdges...)
	edges = append(edges, g.HuggingEdges...)
	return edges
}

// Neighbors returns, for node n, every (neighbor, edge) pair where edge
// has n as one endpoint. Linear scan over both edge lists — graphs built
// per move are small (tens of nodes), so this is not the bottleneck;
// pkg/search calls it once per pop from the open set.
func (g *Graph) Neighbors(n NodeHandle) []NeighborEdge {
	var out []NeighborEdge
	for _, e := range g.SurfingEdges {
		if e.A == n {
			out = append(out, NeighborEdge{Node: e.B, Edge: e})
		} else if e.B == n {
			out = append(out, NeighborEdge{Node: e.A, Edge: e})
		}
	}
	for _, e := range g.HuggingEdges {
		if e.A == n {
			out = append(out, NeighborEdge{Node: e.B, Edge: e})
		} else if e.B == n {
			out = append(out, NeighborEdge{Node: e.A, Edge: e})
		}
	}
	return out
}

// NeighborEdge pairs a reachable node with the edge used to reach it.
type NeighborEdge struct {
	Node NodeHandle
	Edge Edge
}
