// Package toolpath translates an A* path into a linear-and-arc
// instruction stream for a CNC-style motion controller: consecutive
// hugging edges on the same disc collapse into a single arc
// instruction, surfing edges become linear moves, and arc direction
// (clockwise vs counter-clockwise) is inferred from the minor-arc
// selection rule in spec.md §4.4.
//
// Grounded line-for-line on move_manager.py's trace_path,
// generate_arc_gcode, and generate_linear_gcode from the original
// Python implementation.
package toolpath

import (
	"fmt"
	"math"
	"strings"

	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
)

// Config holds the controller-facing literals that are a configuration
// choice rather than a correctness property (spec.md §4.4, §6).
type Config struct {
	Feedrate float64
}

// DefaultConfig returns the sentinel feedrate used when none is configured.
func DefaultConfig() Config {
	return Config{Feedrate: 99_999_999}
}

// Emit translates path (a sequence of nodes, start to goal inclusive)
// into a newline-separated motion instruction stream per spec.md §4.4.
// An empty or single-node path produces just the absolute-positioning
// prefix (and, for a single node, the initial linear move).
func Emit(g *model.Graph, path []model.NodeHandle, cfg Config) string {
	var b strings.Builder
	b.WriteString("G90\n")

	if len(path) == 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	writeLinear(&b, g.Node(path[0]).Position, cfg)

	var arcStart model.NodeHandle
	arcOpen := false

	for i := 1; i < len(path); i++ {
		prev, curr := path[i-1], path[i]
		prevNode, currNode := g.Node(prev), g.Node(curr)

		if prevNode.Disc == currNode.Disc && !g.Disc(prevNode.Disc).IsPoint() {
			// Same-disc hop: part of an arc run.
			if currNode.Position == prevNode.Position {
				// Duplicate coincident node: skip without changing run state.
				continue
			}
			if !arcOpen {
				arcStart = prev
				arcOpen = true
			}
			continue
		}

		if arcOpen {
			writeArc(&b, g, arcStart, prev, cfg)
			arcOpen = false
		}
		writeLinear(&b, currNode.Position, cfg)
	}

	if arcOpen {
		writeArc(&b, g, arcStart, path[len(path)-1], cfg)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeLinear(b *strings.Builder, p geometry.Point, cfg Config) {
	fmt.Fprintf(b, "G1 X%s Y%s F%s\n", fmtNum(p.X), fmtNum(p.Y), fmtNum(cfg.Feedrate))
}

// writeArc emits one arc instruction from node s to node e, both on the
// same disc. A degenerate arc (start and end coincide after
// deduplication) is a no-op, per spec.md §7.
func writeArc(b *strings.Builder, g *model.Graph, s, e model.NodeHandle, cfg Config) {
	sPos, ePos := g.Node(s).Position, g.Node(e).Position
	if sPos == ePos {
		return
	}

	disc := g.Disc(g.Node(s).Disc)
	center := disc.Center

	alphaS := geometry.NormalizeAngle0to2Pi(geometry.V2VAngle(center, sPos))
	alphaE := geometry.NormalizeAngle0to2Pi(geometry.V2VAngle(center, ePos))

	// Minor-arc direction test: swap the angle pair only, never the
	// positions — I/J and the emitted X/Y must always reference the
	// real arc-start/arc-end nodes passed into this function.
	if math.Abs(alphaS-alphaE) > math.Pi {
		alphaS, alphaE = alphaE, alphaS
	}

	opcode := "G2" // clockwise
	if alphaE > alphaS {
		opcode = "G3" // counter-clockwise
	}

	i := center.X - sPos.X
	j := center.Y - sPos.Y

	fmt.Fprintf(b, "%s X%s Y%s I%s J%s F%s\n", opcode, fmtNum(ePos.X), fmtNum(ePos.Y), fmtNum(i), fmtNum(j), fmtNum(cfg.Feedrate))
}

// fmtNum formats a coordinate/feedrate value without a trailing ".0" for
// whole numbers, matching the compact style of CNC G-code streams.
func fmtNum(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
