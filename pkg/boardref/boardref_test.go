package boardref

import (
	"errors"
	"testing"

	"chessmotion/pkg/board"
)

func TestNewStandardOccupiesRanksOneTwoSevenEight(t *testing.T) {
	b := NewStandard()
	discs := b.ObstacleDiscs(nil)
	if len(discs) != 32 {
		t.Fatalf("expected 32 occupied squares in the starting position, got %d", len(discs))
	}
}

func TestObstacleDiscsExcludesNamedSquares(t *testing.T) {
	b := NewStandard()
	all := b.ObstacleDiscs(nil)
	excluded := b.ObstacleDiscs([]string{"a1", "h8"})
	if len(excluded) != len(all)-2 {
		t.Fatalf("expected 2 fewer discs when excluding 2 squares, got %d vs %d", len(excluded), len(all))
	}
}

func TestSquareToPositionRoundTrip(t *testing.T) {
	b := NewEmpty()
	p, err := b.SquareToPosition("a1")
	if err != nil {
		t.Fatalf("SquareToPosition: %v", err)
	}
	if p.X != 0 || p.Y != 0 {
		t.Errorf("a1 = %+v, want origin", p)
	}

	p2, err := b.SquareToPosition("h8")
	if err != nil {
		t.Fatalf("SquareToPosition: %v", err)
	}
	if p2.X != 7*SquareSpacing || p2.Y != 7*SquareSpacing {
		t.Errorf("h8 = %+v, want (7,7) scaled", p2)
	}
}

func TestSquareToPositionUnknownSquare(t *testing.T) {
	b := NewEmpty()
	_, err := b.SquareToPosition("z9")
	if !errors.Is(err, ErrUnknownSquare) {
		t.Fatalf("err = %v, want ErrUnknownSquare", err)
	}
}

func TestIsCapture(t *testing.T) {
	b := NewEmpty()
	if err := b.PlacePiece("d4"); err != nil {
		t.Fatalf("PlacePiece: %v", err)
	}
	if !b.IsCapture(board.Move("c3d4")) {
		t.Error("expected capture on occupied destination")
	}
	if b.IsCapture(board.Move("c3d5")) {
		t.Error("expected no capture on empty destination")
	}
}

func TestApplyMoveVacatesSourceOccupiesDestination(t *testing.T) {
	b := NewEmpty()
	b.PlacePiece("e2")

	if err := b.ApplyMove(board.Move("e2e4")); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if b.occupied["e2"] {
		t.Error("source square should be vacated")
	}
	if !b.occupied["e4"] {
		t.Error("destination square should be occupied")
	}
}

func TestNextCaptureSlotExhaustion(t *testing.T) {
	b := NewEmpty()
	seen := map[float64]bool{}
	for i := 0; i < 16; i++ {
		p, err := b.NextCaptureSlot()
		if err != nil {
			t.Fatalf("NextCaptureSlot %d: %v", i, err)
		}
		if seen[p.Y] {
			t.Errorf("slot Y offset %v reused", p.Y)
		}
		seen[p.Y] = true
	}
	if _, err := b.NextCaptureSlot(); !errors.Is(err, ErrNoFreeCaptureSlot) {
		t.Fatalf("expected ErrNoFreeCaptureSlot after exhausting slots, got %v", err)
	}
}

func TestValidSquareBounds(t *testing.T) {
	cases := map[string]bool{
		"a1": true, "h8": true, "d4": true,
		"i1": false, "a9": false, "a0": false, "": false, "abc": false,
	}
	for sq, want := range cases {
		got := validSquare(sq)
		if got != want {
			t.Errorf("validSquare(%q) = %v, want %v", sq, got, want)
		}
	}
}
