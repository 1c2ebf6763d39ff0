// Package orchestrator wires the board and chess-engine collaborators
// (pkg/board) to the planning core (pkg/visibility, pkg/search,
// pkg/toolpath) to answer one request: given the current board state,
// find the best move and emit the motion instructions to execute it.
//
// Grounded on pkg/routing/engine.go's Engine.Route — the same phased
// "snap, search, reconstruct, emit" shape, and the same sync.Pool reuse
// of per-query scratch state — and on move_manager.py's
// MoveManager.respond for the two-phase capture ordering: a captured
// piece is staged out of the way before the capturing piece is routed,
// and board state is only committed once both passes succeed.
package orchestrator

import (
	"errors"
	"fmt"
	"sync"

	"chessmotion/pkg/board"
	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
	"chessmotion/pkg/search"
	"chessmotion/pkg/toolpath"
	"chessmotion/pkg/visibility"
)

// ErrStartInsideObstacle is returned when a move's source square position
// falls strictly inside another piece's inflated obstacle disc.
var ErrStartInsideObstacle = errors.New("orchestrator: start position lies inside an obstacle disc")

// ErrGoalInsideObstacle is returned when a move's destination position
// falls strictly inside another piece's inflated obstacle disc.
var ErrGoalInsideObstacle = errors.New("orchestrator: goal position lies inside an obstacle disc")

// Plan is the result of planning one move: the toolpath(s) needed to
// execute it, in the order they must run.
type Plan struct {
	Move board.Move
	Legs []Leg
}

// Leg is one planned traversal: a path through a visibility graph and
// its emitted motion instructions.
type Leg struct {
	GCode string
	Cost  float64
}

// scratch holds the per-request buffers reused across planning passes,
// pooled to avoid reallocating on every move.
type scratch struct {
	excluded []string
}

// Orchestrator plans and (optionally) executes moves against a Board and
// Engine pair.
type Orchestrator struct {
	board  board.Board
	engine board.Engine
	cfg    toolpath.Config

	scratchPool sync.Pool
}

// New returns an Orchestrator wired to b and e, using the default
// toolpath configuration.
func New(b board.Board, e board.Engine) *Orchestrator {
	o := &Orchestrator{board: b, engine: e, cfg: toolpath.DefaultConfig()}
	o.scratchPool.New = func() any { return &scratch{} }
	return o
}

// PlanBestMove asks the engine for the best move given boardState, then
// plans it with PlanMove, which commits it to the board on success.
func (o *Orchestrator) PlanBestMove(boardState string) (*Plan, error) {
	move, err := o.engine.BestMove(boardState)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: engine.BestMove: %w", err)
	}
	return o.PlanMove(move)
}

// PlanMove plans move's physical execution: a single leg for a
// non-capturing move, or two sequential legs (captured piece to its
// staging slot, then capturing piece to the destination) for a capture.
// Board state is committed via ApplyMove only once every leg plans
// successfully.
func (o *Orchestrator) PlanMove(move board.Move) (*Plan, error) {
	s := o.scratchPool.Get().(*scratch)
	defer func() {
		s.excluded = s.excluded[:0]
		o.scratchPool.Put(s)
	}()

	plan := &Plan{Move: move}

	if o.board.IsCapture(move) {
		captureLeg, err := o.planCaptureStaging(move, s)
		if err != nil {
			return nil, err
		}
		plan.Legs = append(plan.Legs, *captureLeg)
	}

	mainLeg, err := o.planLeg(move.Source(), move.Destination(), s)
	if err != nil {
		return nil, err
	}
	plan.Legs = append(plan.Legs, *mainLeg)

	if err := o.board.ApplyMove(move); err != nil {
		return nil, fmt.Errorf("orchestrator: ApplyMove: %w", err)
	}

	return plan, nil
}

// planCaptureStaging routes the piece standing on move's destination
// square out to a free capture-staging slot, clearing the destination
// before the capturing piece is routed there.
func (o *Orchestrator) planCaptureStaging(move board.Move, s *scratch) (*Leg, error) {
	dest := move.Destination()
	stagingPos, err := o.board.NextCaptureSlot()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: NextCaptureSlot: %w", err)
	}

	s.excluded = append(s.excluded[:0], dest)
	g, err := o.buildGraph(s.excluded)
	if err != nil {
		return nil, err
	}

	startPos, err := o.board.SquareToPosition(dest)
	if err != nil {
		return nil, err
	}

	return o.planOverGraph(g, startPos, stagingPos)
}

// planLeg routes the piece on source to destination.
func (o *Orchestrator) planLeg(source, destination string, s *scratch) (*Leg, error) {
	s.excluded = append(s.excluded[:0], source, destination)
	g, err := o.buildGraph(s.excluded)
	if err != nil {
		return nil, err
	}

	startPos, err := o.board.SquareToPosition(source)
	if err != nil {
		return nil, err
	}
	goalPos, err := o.board.SquareToPosition(destination)
	if err != nil {
		return nil, err
	}

	return o.planOverGraph(g, startPos, goalPos)
}

func (o *Orchestrator) buildGraph(excluded []string) (*model.Graph, error) {
	discs := o.board.ObstacleDiscs(excluded)
	g, err := visibility.Build(discs)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: visibility.Build: %w", err)
	}
	return g, nil
}

func (o *Orchestrator) planOverGraph(g *model.Graph, startPos, goalPos model.Point) (*Leg, error) {
	if pointInsideAnyDisc(g, startPos) {
		return nil, ErrStartInsideObstacle
	}
	if pointInsideAnyDisc(g, goalPos) {
		return nil, ErrGoalInsideObstacle
	}

	start, err := visibility.InsertPoint(g, startPos)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: InsertPoint(start): %w", err)
	}
	goal, err := visibility.InsertPoint(g, goalPos)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: InsertPoint(goal): %w", err)
	}

	path, err := search.Run(g, start, goal)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: search.Run: %w", err)
	}

	return &Leg{
		GCode: toolpath.Emit(g, path, o.cfg),
		Cost:  search.PathCost(g, path),
	}, nil
}

// pointInsideAnyDisc reports whether p lies strictly inside any nonzero
// disc already present in g, checked before insertion since
// visibility.InsertPoint itself rejects an interior point with an
// unwrapped geometric-precondition error.
func pointInsideAnyDisc(g *model.Graph, p model.Point) bool {
	for _, h := range g.DiscHandles() {
		d := g.Disc(h)
		if d.IsPoint() {
			continue
		}
		if geometry.Dist(p, d.Center) < d.Radius {
			return true
		}
	}
	return false
}
