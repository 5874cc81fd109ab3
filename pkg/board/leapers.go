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

// KnightPiece jumps in an L shape, over anything in between.
type KnightPiece struct{ base }

func (n *KnightPiece) Type() PieceType { return Knight }
func (n *KnightPiece) Symbol() byte    { return Symbol(Knight, n.color) }

// VisiblePositions returns every on-board knight jump, occupied or not.
func (n *KnightPiece) VisiblePositions() []Position {
	return steps(n.pos, jumps)
}

func (n *KnightPiece) PossibleMoves() []Position     { return legalMoves(n) }
func (n *KnightPiece) MoveTo(target Position) error { return move(n, target) }

// PawnPiece pushes forward onto empty squares and captures diagonally forward.
type PawnPiece struct{ base }

func (p *PawnPiece) Type() PieceType { return Pawn }
func (p *PawnPiece) Symbol() byte    { return Symbol(Pawn, p.color) }

// startRow is the row pawns of the given color start the game on.
func startRow(c Color) int {
	if c == White {
		return 1
	}

	return Size - 2
}

// LastRow is the row on which a pawn of the given color promotes.
func LastRow(c Color) int {
	if c == White {
		return Size - 1
	}

	return 0
}

// VisiblePositions returns the empty squares the pawn can push to (two
// from its starting row) and the occupied forward diagonals.
func (p *PawnPiece) VisiblePositions() []Position {
	dir := p.color.forward()

	var positions []Position
	if one := p.pos.Add(dir, 0); one.Valid() && p.board.At(one) == nil {
		positions = append(positions, one)

		if two := one.Add(dir, 0); p.pos.Row == startRow(p.color) && two.Valid() && p.board.At(two) == nil {
			positions = append(positions, two)
		}
	}

	for _, target := range p.attacks() {
		if p.board.At(target) != nil {
			positions = append(positions, target)
		}
	}

	return positions
}

// attacks returns the on-board forward diagonals, occupied or not.
func (p *PawnPiece) attacks() []Position {
	dir := p.color.forward()
	return steps(p.pos, [][2]int{{dir, -1}, {dir, +1}})
}

func (p *PawnPiece) PossibleMoves() []Position     { return legalMoves(p) }
func (p *PawnPiece) MoveTo(target Position) error { return move(p, target) }
