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

// KingPiece steps one square in any direction, never onto a contested square.
type KingPiece struct{ base }

func (k *KingPiece) Type() PieceType { return King }
func (k *KingPiece) Symbol() byte    { return Symbol(King, k.color) }

// VisiblePositions returns the adjacent squares not held by a friendly piece.
func (k *KingPiece) VisiblePositions() []Position {
	var positions []Position
	for _, target := range steps(k.pos, royals) {
		if !k.isFriend(k.board.At(target)) {
			positions = append(positions, target)
		}
	}

	return positions
}

// PossibleMoves returns the visible squares that no enemy piece contests.
func (k *KingPiece) PossibleMoves() []Position {
	var moves []Position
	for _, target := range k.VisiblePositions() {
		if !k.IsContested(target) {
			moves = append(moves, target)
		}
	}

	return moves
}

func (k *KingPiece) MoveTo(target Position) error { return move(k, target) }

// InCheck reports whether the king's own square is contested.
func (k *KingPiece) InCheck() bool {
	return k.IsContested(k.pos)
}

// IsContested reports whether an enemy piece attacks the given square. The
// king is lifted off its own square for the duration of the test so it
// never shields a square behind it from a sliding attacker.
func (k *KingPiece) IsContested(square Position) bool {
	defer k.board.lift(k.pos)()
	return k.board.contested(square, k.color)
}
