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

// QueenPiece slides any number of squares along ranks, files, and diagonals.
type QueenPiece struct{ base }

func (q *QueenPiece) Type() PieceType { return Queen }
func (q *QueenPiece) Symbol() byte    { return Symbol(Queen, q.color) }

func (q *QueenPiece) VisiblePositions() []Position {
	return q.board.rays(q.pos, royals)
}

func (q *QueenPiece) PossibleMoves() []Position     { return legalMoves(q) }
func (q *QueenPiece) MoveTo(target Position) error { return move(q, target) }

// RookPiece slides any number of squares along ranks and files.
type RookPiece struct{ base }

func (r *RookPiece) Type() PieceType { return Rook }
func (r *RookPiece) Symbol() byte    { return Symbol(Rook, r.color) }

func (r *RookPiece) VisiblePositions() []Position {
	return r.board.rays(r.pos, orthogonals)
}

func (r *RookPiece) PossibleMoves() []Position     { return legalMoves(r) }
func (r *RookPiece) MoveTo(target Position) error { return move(r, target) }

// BishopPiece slides any number of squares along diagonals.
type BishopPiece struct{ base }

func (b *BishopPiece) Type() PieceType { return Bishop }
func (b *BishopPiece) Symbol() byte    { return Symbol(Bishop, b.color) }

func (b *BishopPiece) VisiblePositions() []Position {
	return b.board.rays(b.pos, diagonals)
}

func (b *BishopPiece) PossibleMoves() []Position     { return legalMoves(b) }
func (b *BishopPiece) MoveTo(target Position) error { return move(b, target) }
