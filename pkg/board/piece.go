// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package board

import (
	"fmt"
	"slices"
)

// Piece is a chess piece standing on a Board. It is implemented by King,
// Queen, Rook, Bishop, Knight, and Pawn.
type Piece interface {
	Type() PieceType
	Color() Color
	Symbol() byte

	// Position returns the square the piece believes it is on.
	Position() Position
	// SetPosition updates the piece's own position without touching
	// the board's grid.
	SetPosition(Position)
	// Board returns the board the piece was placed on.
	Board() *Board

	// VisiblePositions returns the squares the piece can geometrically
	// reach, ignoring whether moving there would expose its king.
	VisiblePositions() []Position
	// PossibleMoves returns the squares the piece may legally move to.
	PossibleMoves() []Position
	// MoveTo moves the piece to target if it is one of its possible moves.
	MoveTo(target Position) error
}

// base holds the state shared by every piece implementation.
type base struct {
	color Color
	pos   Position
	board *Board
}

func (p *base) Color() Color              { return p.color }
func (p *base) Position() Position        { return p.pos }
func (p *base) SetPosition(pos Position)  { p.pos = pos }
func (p *base) Board() *Board             { return p.board }
func (p *base) isEnemy(other Piece) bool  { return other != nil && other.Color() != p.color }
func (p *base) isFriend(other Piece) bool { return other != nil && other.Color() == p.color }

// Direction vectors as {row, col} deltas.
var (
	orthogonals = [][2]int{{+1, 0}, {-1, 0}, {0, +1}, {0, -1}}
	diagonals   = [][2]int{{+1, +1}, {+1, -1}, {-1, +1}, {-1, -1}}
	royals      = append(slices.Clone(orthogonals), diagonals...)

	jumps = [][2]int{
		{+2, +1}, {+2, -1}, {-2, +1}, {-2, -1},
		{+1, +2}, {+1, -2}, {-1, +2}, {-1, -2},
	}
)

// rays walks outward from the given square along each direction until the
// edge of the board or the first occupied square, which is included.
func (b *Board) rays(from Position, directions [][2]int) []Position {
	var positions []Position
	for _, d := range directions {
		for pos := from.Add(d[0], d[1]); pos.Valid(); pos = pos.Add(d[0], d[1]) {
			positions = append(positions, pos)
			if b.At(pos) != nil {
				break
			}
		}
	}

	return positions
}

// steps returns the on-board squares one offset away from the given square.
func steps(from Position, offsets [][2]int) []Position {
	var positions []Position
	for _, d := range offsets {
		if pos := from.Add(d[0], d[1]); pos.Valid() {
			positions = append(positions, pos)
		}
	}

	return positions
}

// legalMoves filters the visible squares of a non-king piece down to its
// legal moves: empty squares and enemy non-king pieces which can be moved
// to without leaving the piece's own king in check.
func legalMoves(piece Piece) []Position {
	b := piece.Board()

	var moves []Position
	for _, target := range piece.VisiblePositions() {
		occupant := b.At(target)
		if occupant != nil && (occupant.Color() == piece.Color() || occupant.Type() == King) {
			continue
		}

		if b.isSafe(piece, target) {
			moves = append(moves, target)
		}
	}

	return moves
}

// isSafe reports whether moving piece to target keeps its king out of check.
func (b *Board) isSafe(piece Piece, target Position) bool {
	return b.simulate(piece, target, func() bool {
		return !b.InCheck(piece.Color())
	})
}

// move relocates piece to target after checking it is a legal move.
func move(piece Piece, target Position) error {
	from := piece.Position()
	moves := piece.PossibleMoves()

	if !slices.Contains(moves, target) {
		reason := fmt.Sprintf("%s on %s can't move to %s", piece.Type(), from, target)
		return newIllegalMoveError(from, target, reason, moves)
	}

	b := piece.Board()
	b.Place(from, nil)
	piece.SetPosition(target)
	b.Place(target, piece)
	return nil
}
