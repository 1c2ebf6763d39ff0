// Package search implements A* shortest-path search over a visibility
// graph built by pkg/visibility, using the hybrid line/arc edge cost and
// pop-goal termination rule from spec.md §4.3.
//
// Grounded on pkg/routing/dijkstra.go's concrete-typed MinHeap (avoiding
// container/heap's interface-boxing overhead) and on
// planning/astar.py's Astar.calculate_path for the exact algorithm
// shape (open set, cost map, predecessor map, pop-goal termination).
package search

import (
	"errors"
	"math"

	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
	"chessmotion/pkg/visibility"
)

// ErrNoPath is returned when start and goal are not in the same
// connected component, or when the open set is exhausted without
// reaching the goal.
var ErrNoPath = errors.New("search: no path to goal")

// pqItem is one entry in the open-set min-heap.
type pqItem struct {
	node     model.NodeHandle
	priority float64
	seq      uint64 // insertion order, used as a deterministic tie-break
}

// openSet is a concrete-typed binary min-heap keyed by (priority, seq).
type openSet struct {
	items []pqItem
}

func (h *openSet) Len() int { return len(h.items) }

func (h *openSet) push(item pqItem) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

func (h *openSet) pop() pqItem {
	n := len(h.items)
	top := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top
}

func less(a, b pqItem) bool {
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.seq < b.seq
}

func (h *openSet) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *openSet) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// EdgeCost returns the hybrid cost of traversing edge e within graph g:
// 1 (per-hop penalty) plus the edge's length — Euclidean distance for a
// surfing edge, arc length for a hugging edge.
func EdgeCost(g *model.Graph, e model.Edge) float64 {
	na, nb := g.Node(e.A), g.Node(e.B)

	if e.Kind == model.Surfing {
		return 1 + geometry.Dist(na.Position, nb.Position)
	}

	disc := g.Disc(na.Disc)
	a := na.Position.Sub(disc.Center)
	b := nb.Position.Sub(disc.Center)
	cosAngle := geometry.ClampUnit(a.Dot(b) / (a.Norm() * b.Norm()))
	phi := math.Acos(cosAngle)
	return 1 + disc.Radius*phi
}

// Run executes A* from start to goal over graph g and returns the
// sequence of nodes on an optimal path, start and goal inclusive.
func Run(g *model.Graph, start, goal model.NodeHandle) ([]model.NodeHandle, error) {
	if start != goal && !visibility.ReachableInPrinciple(g, start, goal) {
		return nil, ErrNoPath
	}

	goalPos := g.Node(goal).Position

	costSoFar := map[model.NodeHandle]float64{start: 0}
	predecessor := map[model.NodeHandle]model.NodeHandle{}
	visited := map[model.NodeHandle]bool{}

	frontier := &openSet{}
	var seq uint64
	heuristic := func(n model.NodeHandle) float64 {
		return geometry.Dist(g.Node(n).Position, goalPos)
	}

	frontier.push(pqItem{node: start, priority: heuristic(start), seq: seq})
	seq++

	for frontier.Len() > 0 {
		current := frontier.pop()

		// Pop-goal termination: accept the goal only when dequeued, to
		// preserve optimality under the +1 hop penalty.
		if current.node == goal {
			return reconstructPath(predecessor, start, goal), nil
		}

		if visited[current.node] {
			continue
		}
		visited[current.node] = true

		for _, ne := range g.Neighbors(current.node) {
			if visited[ne.Node] {
				continue
			}
			newCost := costSoFar[current.node] + EdgeCost(g, ne.Edge)
			existing, seen := costSoFar[ne.Node]
			if !seen || newCost < existing {
				costSoFar[ne.Node] = newCost
				predecessor[ne.Node] = current.node
				priority := newCost + heuristic(ne.Node)
				frontier.push(pqItem{node: ne.Node, priority: priority, seq: seq})
				seq++
			}
		}
	}

	return nil, ErrNoPath
}

// reconstructPath walks predecessor links from goal to start and
// reverses the result.
func reconstructPath(predecessor map[model.NodeHandle]model.NodeHandle, start, goal model.NodeHandle) []model.NodeHandle {
	path := []model.NodeHandle{goal}
	current := goal
	for current != start {
		current = predecessor[current]
		path = append(path, current)
	}
	// Reverse in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost returns the total hybrid cost of traversing path, which must
// be a sequence of nodes connected by edges in g.
func PathCost(g *model.Graph, path []model.NodeHandle) float64 {
	if len(path) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		for _, ne := range g.Neighbors(path[i]) {
			if ne.Node == path[i+1] {
				total += EdgeCost(g, ne.Edge)
				break
			}
		}
	}
	return total
}
