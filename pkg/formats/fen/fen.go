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

// Package fen converts boards to and from a compact FEN-like string of the
// form "<rows> <w|b> <plies>". Only piece placement, the side to move, and
// the number of half moves played are recorded.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"laptudirm.com/x/referee/pkg/board"
)

// Start is the encoding of the standard starting position.
const Start = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0"

// Encode serializes the given board, side to move, and ply counter.
func Encode(b *board.Board, toMove board.Color, moves uint) string {
	rows := make([]string, board.Size)
	for row := board.Size - 1; row >= 0; row-- {
		var sb strings.Builder

		empty := 0
		for col := 0; col < board.Size; col++ {
			piece := b.At(board.Pos(row, col))
			if piece == nil {
				empty++
				continue
			}

			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}

			sb.WriteByte(piece.Symbol())
		}

		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}

		rows[board.Size-1-row] = sb.String()
	}

	return fmt.Sprintf("%s %s %d", strings.Join(rows, "/"), toMove.Letter(), moves)
}

// Decode parses an encoded position into a new board. The first row in the
// string is row 7 of the board. A digit skips that many squares, so 0 skips
// none, and a row describing fewer than 8 squares leaves the rest empty.
// Encode writes such rows out in full. The active color is White only when
// its token is exactly "w". The ply counter is optional and defaults to zero.
func Decode(text string) (*board.Board, board.Color, uint, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil, board.White, 0, malformed("expected board layout and active color")
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != board.Size {
		return nil, board.White, 0, malformed("%d rows expected, got %d", board.Size, len(rows))
	}

	b := board.New()
	for i, text := range rows {
		row := board.Size - 1 - i

		col := 0
		for j := 0; j < len(text); j++ {
			char := text[j]
			switch {
			case '0' <= char && char <= '9':
				col += int(char - '0')
			default:
				t, c, ok := board.ParseSymbol(char)
				if !ok {
					return nil, board.White, 0, malformed("invalid piece %q in row %d", char, row+1)
				}

				if col >= board.Size {
					return nil, board.White, 0, malformed("too many squares in row %d", row+1)
				}

				b.NewPiece(t, c, board.Pos(row, col))
				col++
			}

			if col > board.Size {
				return nil, board.White, 0, malformed("too many squares in row %d", row+1)
			}
		}
	}

	toMove := board.Black
	if fields[1] == "w" {
		toMove = board.White
	}

	var moves uint64
	if len(fields) > 2 {
		var err error
		moves, err = strconv.ParseUint(fields[2], 10, 0)
		if err != nil {
			return nil, board.White, 0, malformed("total number of moves is not a valid number: %q", fields[2])
		}
	}

	return b, toMove, uint(moves), nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), board.ErrMalformedFEN)
}
