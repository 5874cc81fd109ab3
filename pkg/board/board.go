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

// Package board implements the rules of chess on a mailbox board: piece
// placement, per-piece move generation, check detection, and checkmate.
//
// A Board and the pieces on it are not safe for concurrent use. Move
// generation temporarily mutates the board while testing king safety, so
// even read-looking calls like PossibleMoves must be serialized per board.
package board

// Board is an 8x8 grid of optional pieces. The grid owns the pieces; a
// piece only keeps a handle to the board so it can look at its squares.
type Board struct {
	squares [Size][Size]Piece
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandard returns a board set up with the standard starting position.
func NewStandard() *Board {
	b := New()
	for col, t := range backRank {
		b.NewPiece(t, White, Pos(0, col))
		b.NewPiece(Pawn, White, Pos(1, col))
		b.NewPiece(Pawn, Black, Pos(Size-2, col))
		b.NewPiece(t, Black, Pos(Size-1, col))
	}

	return b
}

// NewPiece creates a piece of the given type and color, places it at pos,
// and returns it.
func (b *Board) NewPiece(t PieceType, c Color, pos Position) Piece {
	state := base{color: c, pos: pos, board: b}

	var piece Piece
	switch t {
	case King:
		piece = &KingPiece{state}
	case Queen:
		piece = &QueenPiece{state}
	case Rook:
		piece = &RookPiece{state}
	case Bishop:
		piece = &BishopPiece{state}
	case Knight:
		piece = &KnightPiece{state}
	case Pawn:
		piece = &PawnPiece{state}
	default:
		panic("board: unknown piece type")
	}

	b.Place(pos, piece)
	return piece
}

// At returns the piece at the given position. It returns nil if the square
// is empty or if the position is off the board, so callers that need to
// tell the two apart must check Valid first.
func (b *Board) At(pos Position) Piece {
	if !pos.Valid() {
		return nil
	}

	return b.squares[pos.Row][pos.Col]
}

// Place unconditionally writes piece, which may be nil, to the given
// square. It does not update the piece's own position and it panics if the
// position is off the board.
func (b *Board) Place(pos Position, piece Piece) {
	b.squares[pos.Row][pos.Col] = piece
}

// Clear empties every square of the board.
func (b *Board) Clear() {
	b.squares = [Size][Size]Piece{}
}

// Pieces returns every piece on the board, scanning from a1 along each row.
func (b *Board) Pieces() []Piece {
	var pieces []Piece
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if piece := b.squares[row][col]; piece != nil {
				pieces = append(pieces, piece)
			}
		}
	}

	return pieces
}

// KingOf returns the first king of the given color found on the board, or
// nil if the color has no king. A missing king is never in check.
func (b *Board) KingOf(c Color) *KingPiece {
	for _, piece := range b.Pieces() {
		if king, ok := piece.(*KingPiece); ok && king.color == c {
			return king
		}
	}

	return nil
}

// InCheck reports whether the given color has a king and it is in check.
func (b *Board) InCheck(c Color) bool {
	king := b.KingOf(c)
	return king != nil && king.InCheck()
}

// IsCheckmate reports whether either side is in a check it can't escape.
// White is examined before Black, independent of whose turn it is.
func (b *Board) IsCheckmate() bool {
	_, mated := b.CheckmatedSide()
	return mated
}

// CheckmatedSide finds the first side in check, White before Black, and
// reports whether that side has no legal move left. The returned color is
// meaningful only when the boolean is true.
func (b *Board) CheckmatedSide() (Color, bool) {
	var side Color
	switch {
	case b.InCheck(White):
		side = White
	case b.InCheck(Black):
		side = Black
	default:
		return White, false
	}

	for _, piece := range b.Pieces() {
		if piece.Color() == side && len(piece.PossibleMoves()) > 0 {
			return side, false
		}
	}

	return side, true
}

// lift empties the given square and returns a function that puts its
// previous occupant back.
func (b *Board) lift(pos Position) (restore func()) {
	occupant := b.At(pos)
	b.Place(pos, nil)
	return func() { b.Place(pos, occupant) }
}

// simulate moves piece to target on the grid alone, runs test, and then
// restores both squares no matter how test returns.
func (b *Board) simulate(piece Piece, target Position, test func() bool) bool {
	from := piece.Position()
	captured := b.At(target)

	b.Place(from, nil)
	b.Place(target, piece)
	defer func() {
		b.Place(target, captured)
		b.Place(from, piece)
	}()

	return test()
}
