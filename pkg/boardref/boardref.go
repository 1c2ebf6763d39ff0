// Package boardref is a reference Board implementation (pkg/board) for
// an 8x8 chessboard: square centers on a regular grid, the standard
// starting position, off-board capture-staging slots, and piece
// positions indexed in an R-tree for fast obstacle-disc queries.
//
// Grounded on pkg/routing/snap.go's Snapper: a spatial index built once
// and queried per request to avoid a linear scan over every piece. The
// teacher's hand-rolled sorted-grid index is replaced here by
// github.com/tidwall/rtree, which the teacher's own go.mod already
// declares as a dependency but never calls.
package boardref

import (
	"errors"
	"fmt"

	"github.com/tidwall/rtree"

	"chessmotion/pkg/board"
	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
)

// Squares per file/rank on a standard board.
const boardSize = 8

// SquareSpacing is the world-unit distance between adjacent square
// centers.
const SquareSpacing = 1.0

// PieceRadius is the default inflation radius applied to every
// obstacle disc: half the piece's footprint plus clearance.
const PieceRadius = 0.35

// ErrUnknownSquare is returned for an algebraic square name outside a1-h8.
var ErrUnknownSquare = errors.New("boardref: unknown square")

// ErrNoFreeCaptureSlot is returned when every staging slot is occupied.
var ErrNoFreeCaptureSlot = errors.New("boardref: no free capture slot")

// Board is the reference Board implementation. Zero value is not usable;
// construct with NewStandard.
type Board struct {
	occupied map[string]bool
	index    rtree.RTree[string]
	slots    []geometry.Point
	slotUsed []bool
}

var _ board.Board = (*Board)(nil)

// NewStandard returns a Board set up in the standard chess starting
// position.
func NewStandard() *Board {
	b := &Board{occupied: map[string]bool{}}
	b.initCaptureSlots()

	for file := 0; file < boardSize; file++ {
		b.occupy(squareName(file, 0))
		b.occupy(squareName(file, 1))
		b.occupy(squareName(file, 6))
		b.occupy(squareName(file, 7))
	}
	return b
}

// NewEmpty returns a Board with no pieces placed, for tests and custom
// scenario setup.
func NewEmpty() *Board {
	b := &Board{occupied: map[string]bool{}}
	b.initCaptureSlots()
	return b
}

func (b *Board) initCaptureSlots() {
	const numSlots = 16
	b.slots = make([]geometry.Point, numSlots)
	b.slotUsed = make([]bool, numSlots)
	for i := 0; i < numSlots; i++ {
		b.slots[i] = geometry.Point{
			X: -2 * SquareSpacing,
			Y: float64(i) * SquareSpacing,
		}
	}
}

// PlacePiece marks square as occupied, for scenario setup.
func (b *Board) PlacePiece(square string) error {
	if !validSquare(square) {
		return fmt.Errorf("%w: %q", ErrUnknownSquare, square)
	}
	b.occupy(square)
	return nil
}

func (b *Board) occupy(square string) {
	if b.occupied[square] {
		return
	}
	b.occupied[square] = true
	p, _ := squareCenter(square)
	lo := [2]float64{p.X - PieceRadius, p.Y - PieceRadius}
	hi := [2]float64{p.X + PieceRadius, p.Y + PieceRadius}
	b.index.Insert(lo, hi, square)
}

func (b *Board) vacate(square string) {
	if !b.occupied[square] {
		return
	}
	delete(b.occupied, square)
	p, _ := squareCenter(square)
	lo := [2]float64{p.X - PieceRadius, p.Y - PieceRadius}
	hi := [2]float64{p.X + PieceRadius, p.Y + PieceRadius}
	b.index.Delete(lo, hi, square)
}

// ObstacleDiscs returns an inflated disc for every occupied square
// except those named in excludedSquares.
func (b *Board) ObstacleDiscs(excludedSquares []string) []model.Disc {
	excluded := map[string]bool{}
	for _, s := range excludedSquares {
		excluded[s] = true
	}

	var discs []model.Disc
	lo := [2]float64{-1e9, -1e9}
	hi := [2]float64{1e9, 1e9}
	b.index.Search(lo, hi, func(_, _ [2]float64, square string) bool {
		if excluded[square] {
			return true
		}
		center, _ := squareCenter(square)
		discs = append(discs, model.Disc{Center: center, Radius: PieceRadius})
		return true
	})
	return discs
}

// SquareToPosition returns square's center in world coordinates.
func (b *Board) SquareToPosition(square string) (geometry.Point, error) {
	p, ok := squareCenter(square)
	if !ok {
		return geometry.Point{}, fmt.Errorf("%w: %q", ErrUnknownSquare, square)
	}
	return p, nil
}

// IsCapture reports whether move's destination square is occupied.
func (b *Board) IsCapture(move board.Move) bool {
	return b.occupied[move.Destination()]
}

// NextCaptureSlot returns the first unused off-board staging slot.
func (b *Board) NextCaptureSlot() (geometry.Point, error) {
	for i, used := range b.slotUsed {
		if !used {
			b.slotUsed[i] = true
			return b.slots[i], nil
		}
	}
	return geometry.Point{}, ErrNoFreeCaptureSlot
}

// ApplyMove commits move: the destination becomes occupied, the source
// is vacated. If move is a capture, the captured piece is assumed
// already staged off-board by the orchestrator's first planning leg.
func (b *Board) ApplyMove(move board.Move) error {
	source, dest := move.Source(), move.Destination()
	if !validSquare(source) {
		return fmt.Errorf("%w: %q", ErrUnknownSquare, source)
	}
	if !validSquare(dest) {
		return fmt.Errorf("%w: %q", ErrUnknownSquare, dest)
	}
	b.vacate(dest) // clears space if a captured piece's disc is still indexed
	b.vacate(source)
	b.occupy(dest)
	return nil
}

// squareName returns the algebraic name for 0-indexed file/rank.
func squareName(file, rank int) string {
	return fmt.Sprintf("%c%d", 'a'+file, rank+1)
}

// squareCenter parses an algebraic square name into world coordinates.
func squareCenter(square string) (geometry.Point, bool) {
	if !validSquare(square) {
		return geometry.Point{}, false
	}
	file := int(square[0] - 'a')
	rank := int(square[1] - '1')
	return geometry.Point{
		X: float64(file) * SquareSpacing,
		Y: float64(rank) * SquareSpacing,
	}, true
}

func validSquare(square string) bool {
	if len(square) != 2 {
		return false
	}
	file := square[0]
	rank := square[1]
	return file >= 'a' && file < 'a'+boardSize && rank >= '1' && rank < '1'+boardSize
}
