// Package board defines the external collaborators the orchestrator
// consults per spec.md §6: the physical board (square geometry, piece
// obstacles, capture staging) and the chess engine (best-move lookup).
// Neither is implemented here — pkg/boardref provides a reference
// implementation for demos and tests, and a production embedder wires
// its own.
package board

import (
	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
)

// Move is a four-character UCI-style source/destination encoding, e.g.
// "e2e4". A fifth promotion character, if present, is ignored by the
// planner (spec.md §6).
type Move string

// Source returns the move's two-character source square.
func (m Move) Source() string {
	if len(m) < 2 {
		return ""
	}
	return string(m[0:2])
}

// Destination returns the move's two-character destination square.
func (m Move) Destination() string {
	if len(m) < 4 {
		return ""
	}
	return string(m[2:4])
}

// Board is the physical-board collaborator consumed by the orchestrator.
type Board interface {
	// ObstacleDiscs returns every stationary piece except those on the
	// named squares, each inflated by moving-piece radius plus clearance.
	ObstacleDiscs(excludedSquares []string) []model.Disc
	// SquareToPosition returns the world coordinates of a square's center.
	SquareToPosition(square string) (geometry.Point, error)
	// IsCapture reports whether move captures a piece on its destination square.
	IsCapture(move Move) bool
	// NextCaptureSlot returns a free staging position off-board for a
	// captured piece.
	NextCaptureSlot() (geometry.Point, error)
	// ApplyMove commits move to internal chess state.
	ApplyMove(move Move) error
}

// Engine is the chess-engine collaborator consumed by the orchestrator.
type Engine interface {
	// BestMove returns the best move for the given board state, encoded
	// as FEN or any representation the concrete engine understands.
	BestMove(boardState string) (Move, error)
}
