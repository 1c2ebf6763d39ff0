// Package visibility builds the tangent-and-arc visibility graph used
// by pkg/search: given a set of obstacle discs, it constructs bitangent
// ("surfing") edges between every pair of discs, boundary ("hugging")
// arcs around each disc, prunes surfing edges that pierce a third disc,
// and supports inserting zero-radius point discs (start/goal) into an
// already-built graph.
//
// Grounded on planning/graph.py's Graph class (add_internal_bitangets,
// add_external_bitangets, add_hugging_edges, clean_surfing_edges,
// add_point) from the original Python implementation, with the CSR-arena
// and sorted-slice idioms of pkg/graph/builder.go carried over for the
// Go rewrite.
package visibility

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
)

// ErrGeometricPrecondition is returned when a bitangent or tangent
// construction's preconditions are violated — the discs overlap (or
// coincide) in a way that makes arccos's argument exceed 1.
var ErrGeometricPrecondition = errors.New("visibility: geometric precondition violated")

// Build constructs a fresh graph from a set of discs: every pairwise
// bitangent, every disc's hugging-edge cycle, then the pruning pass.
func Build(discs []model.Disc) (*model.Graph, error) {
	g := model.NewGraph()
	handles := make([]model.DiscHandle, len(discs))
	for i, d := range discs {
		handles[i] = g.AddDisc(d)
	}

	for i := 0; i < len(handles); i++ {
		for j := i + 1; j < len(handles); j++ {
			if err := addInternalBitangents(g, handles[i], handles[j]); err != nil {
				return nil, err
			}
			if err := addExternalBitangents(g, handles[i], handles[j]); err != nil {
				return nil, err
			}
		}
	}

	rebuildHuggingEdges(g)
	pruneSurfingEdges(g)

	return g, nil
}

// InsertPoint adds a zero-radius point disc (a start or goal location)
// to an existing graph: tangents to every nonzero disc, a direct edge to
// every other point disc already present, then hugging edges and
// pruning are rebuilt from scratch since new nodes were added to
// existing discs.
func InsertPoint(g *model.Graph, p model.Point) (model.NodeHandle, error) {
	pointDisc := g.AddDisc(model.Disc{Center: p, Radius: 0})
	pointNode := g.AddNode(model.Node{Disc: pointDisc, Position: p})

	for _, h := range g.DiscHandles() {
		if h == pointDisc {
			continue
		}
		disc := g.Disc(h)
		if disc.IsPoint() {
			// Direct edge to every other point disc already in the graph.
			otherNodes := g.NodesOnDisc(h)
			for _, on := range otherNodes {
				g.SurfingEdges = append(g.SurfingEdges, model.Edge{A: pointNode, B: on, Kind: model.Surfing})
			}
			continue
		}
		if err := addPointTangents(g, pointNode, p, h); err != nil {
			return 0, err
		}
	}

	rebuildHuggingEdges(g)
	pruneSurfingEdges(g)

	return pointNode, nil
}

// addPointTangents adds the two point-to-circle tangent edges from point
// node pn (at position p) to disc h, per spec.md §4.2 insertion rule 2.
func addPointTangents(g *model.Graph, pn model.NodeHandle, p model.Point, h model.DiscHandle) error {
	disc := g.Disc(h)
	d := geometry.Dist(p, disc.Center)
	if d < disc.Radius {
		return fmt.Errorf("%w: point %v lies inside disc centered at %v radius %v", ErrGeometricPrecondition, p, disc.Center, disc.Radius)
	}
	if d == 0 {
		return fmt.Errorf("%w: point coincides with disc center", ErrGeometricPrecondition)
	}

	theta := math.Acos(geometry.ClampUnit(disc.Radius / d))
	baseAngle := geometry.V2VAngle(disc.Center, p)

	for _, sign := range [2]float64{1, -1} {
		contact := geometry.PolarOffset(disc.Center, disc.Radius, baseAngle+sign*theta)
		contactNode := g.AddNode(model.Node{Disc: h, Position: contact})
		g.SurfingEdges = append(g.SurfingEdges, model.Edge{A: pn, B: contactNode, Kind: model.Surfing})
	}

	return nil
}

// addInternalBitangents adds the two internal bitangent edges between
// discs a and b, per spec.md §4.2.1.
func addInternalBitangents(g *model.Graph, a, b model.DiscHandle) error {
	da, db := g.Disc(a), g.Disc(b)
	d := geometry.Dist(da.Center, db.Center)
	if d == 0 || d < da.Radius+db.Radius {
		return fmt.Errorf("%w: discs centered at %v and %v (radii %v, %v) are too close for an internal bitangent",
			ErrGeometricPrecondition, da.Center, db.Center, da.Radius, db.Radius)
	}

	theta := math.Acos(geometry.ClampUnit((da.Radius + db.Radius) / d))
	angleAB := geometry.V2VAngle(da.Center, db.Center)
	angleBA := geometry.V2VAngle(db.Center, da.Center)

	cOnA := geometry.PolarOffset(da.Center, da.Radius, angleAB+theta)
	dOnA := geometry.PolarOffset(da.Center, da.Radius, angleAB-theta)
	eOnB := geometry.PolarOffset(db.Center, db.Radius, angleBA-theta)
	fOnB := geometry.PolarOffset(db.Center, db.Radius, angleBA+theta)

	cNode := g.AddNode(model.Node{Disc: a, Position: cOnA})
	dNode := g.AddNode(model.Node{Disc: a, Position: dOnA})
	eNode := g.AddNode(model.Node{Disc: b, Position: eOnB})
	fNode := g.AddNode(model.Node{Disc: b, Position: fOnB})

	g.SurfingEdges = append(g.SurfingEdges,
		model.Edge{A: dNode, B: eNode, Kind: model.Surfing},
		model.Edge{A: cNode, B: fNode, Kind: model.Surfing},
	)
	return nil
}

// addExternalBitangents adds the two external bitangent edges between
// discs a and b, per spec.md §4.2.2.
func addExternalBitangents(g *model.Graph, a, b model.DiscHandle) error {
	da, db := g.Disc(a), g.Disc(b)
	d := geometry.Dist(da.Center, db.Center)
	if d == 0 || d < math.Abs(da.Radius-db.Radius) {
		return fmt.Errorf("%w: discs centered at %v and %v (radii %v, %v) are too close for an external bitangent",
			ErrGeometricPrecondition, da.Center, db.Center, da.Radius, db.Radius)
	}

	theta := math.Acos(geometry.ClampUnit(math.Abs(da.Radius-db.Radius) / d))
	angleAB := geometry.V2VAngle(da.Center, db.Center)
	angleBA := geometry.V2VAngle(db.Center, da.Center)

	cOnA := geometry.PolarOffset(da.Center, da.Radius, angleAB+theta)
	dOnA := geometry.PolarOffset(da.Center, da.Radius, angleAB-theta)
	eOnB := geometry.PolarOffset(db.Center, db.Radius, (angleBA+math.Pi)-theta)
	fOnB := geometry.PolarOffset(db.Center, db.Radius, (angleBA+math.Pi)+theta)

	cNode := g.AddNode(model.Node{Disc: a, Position: cOnA})
	dNode := g.AddNode(model.Node{Disc: a, Position: dOnA})
	eNode := g.AddNode(model.Node{Disc: b, Position: eOnB})
	fNode := g.AddNode(model.Node{Disc: b, Position: fOnB})

	g.SurfingEdges = append(g.SurfingEdges,
		model.Edge{A: dNode, B: eNode, Kind: model.Surfing},
		model.Edge{A: cNode, B: fNode, Kind: model.Surfing},
	)
	return nil
}

// rebuildHuggingEdges regenerates the hugging-edge cycle for every
// nonzero-radius disc from scratch: no incremental maintenance is
// required because new nodes only ever get added, never removed, per
// spec.md §9.
func rebuildHuggingEdges(g *model.Graph) {
	g.HuggingEdges = g.HuggingEdges[:0]

	for _, h := range g.DiscHandles() {
		disc := g.Disc(h)
		if disc.IsPoint() {
			continue
		}
		nodes := g.NodesOnDisc(h)
		if len(nodes) < 2 {
			continue
		}

		sort.Slice(nodes, func(i, j int) bool {
			ai := geometry.NormalizeAngle0to2Pi(geometry.V2VAngle(disc.Center, g.Node(nodes[i]).Position))
			aj := geometry.NormalizeAngle0to2Pi(geometry.V2VAngle(disc.Center, g.Node(nodes[j]).Position))
			return ai < aj
		})

		for i := range nodes {
			next := (i + 1) % len(nodes)
			g.HuggingEdges = append(g.HuggingEdges, model.Edge{A: nodes[i], B: nodes[next], Kind: model.Hugging})
		}
	}
}

// pruneSurfingEdges drops surfing edges that intersect any disc other
// than the two discs carrying their endpoints, per spec.md §4.2.4.
func pruneSurfingEdges(g *model.Graph) {
	kept := g.SurfingEdges[:0:0]

	for _, e := range g.SurfingEdges {
		na, nb := g.Node(e.A), g.Node(e.B)
		seg := geometry.Segment{A: na.Position, B: nb.Position}

		blocked := false
		for _, h := range g.DiscHandles() {
			if h == na.Disc || h == nb.Disc {
				continue
			}
			disc := g.Disc(h)
			if disc.IsPoint() {
				continue
			}
			if geometry.SegmentCircleIntersects(seg, disc.Center, disc.Radius) {
				blocked = true
				break
			}
		}
		if !blocked {
			kept = append(kept, e)
		}
	}

	g.SurfingEdges = kept
}
