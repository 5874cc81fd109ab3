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
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 8

// Color represents the side a piece belongs to.
type Color int

const (
	White Color = iota
	Black

	ColorN = 2
)

// Other returns the opposing color.
func (c Color) Other() Color {
	return c ^ 1
}

// forward is the row delta of a pawn of this color's advance.
func (c Color) forward() int {
	if c == White {
		return +1
	}

	return -1
}

// String returns a string representation of the given Color.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "?"
	}
}

// Letter returns the FEN active color letter of the given Color.
func (c Color) Letter() string {
	if c == White {
		return "w"
	}

	return "b"
}

// PieceType represents the kind of a chess piece without its color.
type PieceType int

const (
	King PieceType = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn

	PieceTypeN = 6
)

var pieceLetters = [PieceTypeN]byte{'K', 'Q', 'R', 'B', 'N', 'P'}
var pieceNames = [PieceTypeN]string{"king", "queen", "rook", "bishop", "knight", "pawn"}

// Letter returns the uppercase letter of the given PieceType.
func (t PieceType) Letter() byte {
	return pieceLetters[t]
}

func (t PieceType) String() string {
	if t < 0 || t >= PieceTypeN {
		return "unknown"
	}

	return pieceNames[t]
}

// ParsePieceType parses a piece letter or name, in any case, into a
// PieceType. It reports false if the string names no piece.
func ParsePieceType(s string) (PieceType, bool) {
	s = strings.ToLower(s)
	for t := King; t < PieceTypeN; t++ {
		if s == pieceNames[t] || (len(s) == 1 && s[0] == pieceLetters[t]+('a'-'A')) {
			return t, true
		}
	}

	return 0, false
}

// ParseSymbol converts a piece symbol as used in FEN strings into the
// type and color it represents. Uppercase letters are White pieces.
func ParseSymbol(symbol byte) (PieceType, Color, bool) {
	for t := King; t < PieceTypeN; t++ {
		switch symbol {
		case pieceLetters[t]:
			return t, White, true
		case pieceLetters[t] + ('a' - 'A'):
			return t, Black, true
		}
	}

	return 0, 0, false
}

// Symbol returns the display symbol for a piece of the given type and color.
func Symbol(t PieceType, c Color) byte {
	letter := t.Letter()
	if c == Black {
		letter += 'a' - 'A'
	}

	return letter
}

// Position is the address of a square on the board. Row 0 is White's back
// rank and column 0 is the a-file.
type Position struct {
	Row, Col int
}

// Pos is shorthand for Position{row, col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Valid reports whether the position lies on the board.
func (pos Position) Valid() bool {
	return IsValid(pos.Row, pos.Col)
}

// Add returns the position offset by the given row and column deltas.
func (pos Position) Add(dr, dc int) Position {
	return Position{Row: pos.Row + dr, Col: pos.Col + dc}
}

// String returns the algebraic name of the square, like "e4".
func (pos Position) String() string {
	if !pos.Valid() {
		return fmt.Sprintf("(%d,%d)", pos.Row, pos.Col)
	}

	return fmt.Sprintf("%c%d", 'a'+pos.Col, pos.Row+1)
}

// ParsePosition converts an algebraic square name like "e2" into a
// Position. The file letter becomes the column and the rank digit minus one
// becomes the row; both must land on the board.
func ParsePosition(square string) (Position, error) {
	square = strings.ToLower(strings.TrimSpace(square))
	if len(square) != 2 {
		return Position{}, fmt.Errorf("square %q: expected <file><rank>: %w", square, ErrInvalidPosition)
	}

	pos := Position{
		Row: int(square[1]) - '1',
		Col: int(square[0]) - 'a',
	}

	if !pos.Valid() {
		return Position{}, fmt.Errorf("square %q is off the board: %w", square, ErrInvalidPosition)
	}

	return pos, nil
}

// IsValid reports whether the given row and column lie on the board.
func IsValid(row, col int) bool {
	return 0 <= row && row < Size && 0 <= col && col < Size
}
