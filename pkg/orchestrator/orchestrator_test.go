package orchestrator

import (
	"errors"
	"strings"
	"testing"

	"chessmotion/pkg/board"
	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
)

// fakeBoard is a minimal in-memory Board for exercising the orchestrator
// without a real 8x8 board implementation.
type fakeBoard struct {
	squares     map[string]geometry.Point
	occupied    map[string]bool
	pieceRadius float64
	captures    []string
	slotIdx     int
	applied     []board.Move
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		squares: map[string]geometry.Point{
			"a1": {X: 0, Y: 0},
			"b1": {X: 1, Y: 0},
			"c1": {X: 2, Y: 0},
			"a2": {X: 0, Y: 1},
		},
		occupied:    map[string]bool{"a1": true, "b1": true},
		pieceRadius: 0.3,
	}
}

func (b *fakeBoard) ObstacleDiscs(excludedSquares []string) []model.Disc {
	excluded := map[string]bool{}
	for _, s := range excludedSquares {
		excluded[s] = true
	}
	var discs []model.Disc
	for sq, occ := range b.occupied {
		if !occ || excluded[sq] {
			continue
		}
		discs = append(discs, model.Disc{Center: b.squares[sq], Radius: b.pieceRadius})
	}
	return discs
}

func (b *fakeBoard) SquareToPosition(square string) (geometry.Point, error) {
	p, ok := b.squares[square]
	if !ok {
		return geometry.Point{}, errors.New("fakeBoard: unknown square " + square)
	}
	return p, nil
}

func (b *fakeBoard) IsCapture(move board.Move) bool {
	return b.occupied[move.Destination()]
}

func (b *fakeBoard) NextCaptureSlot() (geometry.Point, error) {
	b.slotIdx++
	return geometry.Point{X: -10, Y: float64(b.slotIdx)}, nil
}

func (b *fakeBoard) ApplyMove(move board.Move) error {
	b.occupied[move.Destination()] = true
	delete(b.occupied, move.Source())
	b.applied = append(b.applied, move)
	return nil
}

type fakeEngine struct {
	move board.Move
	err  error
}

func (e *fakeEngine) BestMove(boardState string) (board.Move, error) {
	return e.move, e.err
}

func TestPlanMoveNonCapture(t *testing.T) {
	b := newFakeBoard()
	// b1 -> c1: c1 is unoccupied, so this is not a capture.
	o := New(b, &fakeEngine{move: "b1c1"})

	plan, err := o.PlanMove("b1c1")
	if err != nil {
		t.Fatalf("PlanMove: %v", err)
	}
	if len(plan.Legs) != 1 {
		t.Fatalf("expected 1 leg for a non-capturing move, got %d", len(plan.Legs))
	}
	if !strings.Contains(plan.Legs[0].GCode, "G90") {
		t.Errorf("leg gcode missing G90 prefix: %q", plan.Legs[0].GCode)
	}
	if len(b.applied) != 1 || b.applied[0] != board.Move("b1c1") {
		t.Errorf("ApplyMove not committed correctly: %v", b.applied)
	}
}

func TestPlanMoveCaptureHasTwoLegs(t *testing.T) {
	b := newFakeBoard()
	// a1 -> b1 is a capture since b1 is occupied.
	o := New(b, &fakeEngine{move: "a1b1"})

	plan, err := o.PlanMove("a1b1")
	if err != nil {
		t.Fatalf("PlanMove: %v", err)
	}
	if len(plan.Legs) != 2 {
		t.Fatalf("expected 2 legs for a capturing move, got %d", len(plan.Legs))
	}
	if !b.occupied["b1"] {
		t.Errorf("destination square should be occupied after capture move commits")
	}
	if b.occupied["a1"] {
		t.Errorf("source square should be vacated after move commits")
	}
}

func TestPlanBestMoveUsesEngine(t *testing.T) {
	b := newFakeBoard()
	o := New(b, &fakeEngine{move: "a2a1"})

	plan, err := o.PlanBestMove("any-state")
	if err != nil {
		t.Fatalf("PlanBestMove: %v", err)
	}
	if plan.Move != board.Move("a2a1") {
		t.Errorf("plan.Move = %q, want a2a1", plan.Move)
	}
}

func TestPlanBestMoveEngineError(t *testing.T) {
	b := newFakeBoard()
	wantErr := errors.New("engine exploded")
	o := New(b, &fakeEngine{err: wantErr})

	_, err := o.PlanBestMove("any-state")
	if !errors.Is(err, wantErr) {
		t.Fatalf("PlanBestMove error = %v, want wrapping %v", err, wantErr)
	}
}

func TestPlanMoveDoesNotCommitOnPlanningFailure(t *testing.T) {
	b := newFakeBoard()
	// Destination square doesn't exist in the fake board's square map.
	o := New(b, &fakeEngine{move: "a1z9"})

	_, err := o.PlanMove("a1z9")
	if err == nil {
		t.Fatal("expected an error for an unknown destination square")
	}
	if len(b.applied) != 0 {
		t.Errorf("ApplyMove should not be called when planning fails, got %v", b.applied)
	}
}

func TestPlanMoveStartInsideObstacle(t *testing.T) {
	b := newFakeBoard()
	// Oversize the piece radius so b1's disc covers a1 and a2. a2a1 is a
	// capture (a1 is occupied), so the staging leg starts at a1, which
	// lies inside b1's non-excluded disc (distance 1 < radius 5).
	b.pieceRadius = 5
	o := New(b, &fakeEngine{move: "a2a1"})

	_, err := o.PlanMove("a2a1")
	if !errors.Is(err, ErrStartInsideObstacle) && !errors.Is(err, ErrGoalInsideObstacle) {
		t.Fatalf("expected an inside-obstacle error, got %v", err)
	}
}
