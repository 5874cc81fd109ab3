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

package board_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"laptudirm.com/x/referee/pkg/board"
	"laptudirm.com/x/referee/pkg/formats/fen"
)

func decode(t *testing.T, text string) *board.Board {
	t.Helper()

	b, _, _, err := fen.Decode(text)
	if err != nil {
		t.Fatalf("fen.Decode(%q) error: %v", text, err)
	}

	return b
}

func square(t *testing.T, name string) board.Position {
	t.Helper()

	pos, err := board.ParsePosition(name)
	if err != nil {
		t.Fatalf("ParsePosition(%q) error: %v", name, err)
	}

	return pos
}

func squares(t *testing.T, names ...string) []board.Position {
	t.Helper()

	positions := make([]board.Position, len(names))
	for i, name := range names {
		positions[i] = square(t, name)
	}

	return positions
}

var sortPositions = cmpopts.SortSlices(func(a, b board.Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}

	return a.Col < b.Col
})

func TestStandardSetup(t *testing.T) {
	b := board.NewStandard()

	if got := len(b.Pieces()); got != 32 {
		t.Errorf("len(Pieces()) = %d, want 32", got)
	}

	if got := fen.Encode(b, board.White, 0); got != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0" {
		t.Errorf("Encode(standard) = %q", got)
	}

	for _, piece := range b.Pieces() {
		if b.At(piece.Position()) != piece {
			t.Errorf("%v believes it is on %v but the grid disagrees", piece.Type(), piece.Position())
		}
	}
}

func TestNewPiece(t *testing.T) {
	tests := []struct {
		t      board.PieceType
		symbol byte
		want   board.Piece
	}{
		{board.King, 'K', &board.KingPiece{}},
		{board.Queen, 'Q', &board.QueenPiece{}},
		{board.Rook, 'R', &board.RookPiece{}},
		{board.Bishop, 'B', &board.BishopPiece{}},
		{board.Knight, 'N', &board.KnightPiece{}},
		{board.Pawn, 'P', &board.PawnPiece{}},
	}

	for _, tt := range tests {
		b := board.New()
		piece := b.NewPiece(tt.t, board.White, board.Pos(3, 3))

		if fmt.Sprintf("%T", piece) != fmt.Sprintf("%T", tt.want) {
			t.Errorf("NewPiece(%v) = %T, want %T", tt.t, piece, tt.want)
		}

		if piece.Type() != tt.t || piece.Symbol() != tt.symbol {
			t.Errorf("NewPiece(%v) has type %v and symbol %c, want %v and %c", tt.t, piece.Type(), piece.Symbol(), tt.t, tt.symbol)
		}
	}
}

func TestKingOf(t *testing.T) {
	b := decode(t, "4k3/8/8/8/8/8/8/8 w 0")

	if king := b.KingOf(board.White); king != nil {
		t.Errorf("KingOf(white) = %v on %v, want nil", king.Type(), king.Position())
	}

	king := b.KingOf(board.Black)
	if king == nil {
		t.Fatal("KingOf(black) = nil")
	}

	if got := king.Position(); got != square(t, "e8") {
		t.Errorf("KingOf(black) is on %v, want e8", got)
	}

	if b.InCheck(board.White) {
		t.Error("InCheck(white) = true for a side without a king")
	}
}

func TestAtOutOfBounds(t *testing.T) {
	b := board.NewStandard()

	for _, pos := range []board.Position{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		if got := b.At(pos); got != nil {
			t.Errorf("At(%v) = %v, want nil", pos, got)
		}
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		square  string
		want    board.Position
		wantErr bool
	}{
		{"a1", board.Pos(0, 0), false},
		{"h8", board.Pos(7, 7), false},
		{"e2", board.Pos(1, 4), false},
		{"E4", board.Pos(3, 4), false},
		{"i1", board.Position{}, true},
		{"a9", board.Position{}, true},
		{"a0", board.Position{}, true},
		{"e", board.Position{}, true},
		{"e10", board.Position{}, true},
		{"", board.Position{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			got, err := board.ParsePosition(tt.square)
			if tt.wantErr {
				if !errors.Is(err, board.ErrInvalidPosition) {
					t.Errorf("ParsePosition(%q) error = %v, want ErrInvalidPosition", tt.square, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParsePosition(%q) error: %v", tt.square, err)
			}

			if got != tt.want {
				t.Errorf("ParsePosition(%q) = %v, want %v", tt.square, got, tt.want)
			}

			if name := got.String(); name != strings.ToLower(tt.square) {
				t.Errorf("String() = %q, want %q", name, strings.ToLower(tt.square))
			}
		})
	}
}

func TestParsePieceType(t *testing.T) {
	tests := []struct {
		in   string
		want board.PieceType
		ok   bool
	}{
		{"q", board.Queen, true},
		{"Q", board.Queen, true},
		{"queen", board.Queen, true},
		{"Knight", board.Knight, true},
		{"n", board.Knight, true},
		{"k", board.King, true},
		{"x", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := board.ParsePieceType(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParsePieceType(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCheckmate(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		mate  bool
		mated board.Color
	}{
		// Scenario from a1: one rook on the first rank, another covering
		// the second.
		{"two rooks", "7k/8/8/8/8/8/2r5/K1r5 w 0", true, board.White},
		{"one rook", "7k/8/8/8/8/8/8/K1r5 w 0", false, board.White},
		{"no check", "7k/8/8/8/8/8/8/K7 w 0", false, board.White},
		{"back rank", "6k1/5ppp/8/8/8/8/8/R5K1 b 0", false, board.White},
		{"back rank mate", "R5k1/5ppp/8/8/8/8/8/6K1 b 0", true, board.Black},
		{"smothered", "6rk/5Npp/8/8/8/8/8/6K1 b 0", true, board.Black},
		{"escape square", "7k/8/8/8/8/8/1R6/K1r5 w 0", false, board.White},
		{"rook interposed", "7k/8/8/8/8/8/2r5/KRr5 w 0", false, board.White},
		{"fools mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w 2", true, board.White},
		{"no kings", "8/8/8/8/8/8/8/r7 w 0", false, board.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := decode(t, tt.fen)

			if got := b.IsCheckmate(); got != tt.mate {
				t.Errorf("IsCheckmate() = %v, want %v", got, tt.mate)
			}

			if side, mated := b.CheckmatedSide(); mated && side != tt.mated {
				t.Errorf("CheckmatedSide() = %v, want %v", side, tt.mated)
			}
		})
	}
}

func TestCheckmateLeavesBoardIntact(t *testing.T) {
	text := "7k/8/8/8/8/8/2r5/K1r5 w 0"
	b := decode(t, text)

	b.IsCheckmate()
	if got := fen.Encode(b, board.White, 0); got != text {
		t.Errorf("board after IsCheckmate() = %q, want %q", got, text)
	}
}

func TestBlockedRook(t *testing.T) {
	b := board.New()
	rook := b.NewPiece(board.Rook, board.White, board.Pos(2, 2))
	b.NewPiece(board.Pawn, board.White, board.Pos(3, 2))

	moves := rook.PossibleMoves()
	for _, blocked := range []board.Position{board.Pos(3, 2), board.Pos(4, 2), board.Pos(5, 2)} {
		for _, move := range moves {
			if move == blocked {
				t.Errorf("rook on c3 can reach %v through its own pawn", blocked)
			}
		}
	}

	want := squares(t, "c1", "c2", "a3", "b3", "d3", "e3", "f3", "g3", "h3")
	if diff := cmp.Diff(want, moves, sortPositions); diff != "" {
		t.Errorf("PossibleMoves() mismatch (-want +got):\n%s", diff)
	}
}

func TestVisiblePositions(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		piece string
		want  []string
	}{
		{
			name:  "rook includes first blocker of either color",
			fen:   "8/8/8/2p5/8/2R1P3/8/8 w 0",
			piece: "c3",
			want:  []string{"c4", "c5", "c2", "c1", "d3", "e3", "b3", "a3"},
		},
		{
			name:  "bishop from corner",
			fen:   "8/8/8/8/8/8/8/B7 w 0",
			piece: "a1",
			want:  []string{"b2", "c3", "d4", "e5", "f6", "g7", "h8"},
		},
		{
			name:  "knight on the edge",
			fen:   "8/8/8/8/8/8/8/N7 w 0",
			piece: "a1",
			want:  []string{"b3", "c2"},
		},
		{
			name:  "knight sees friendly squares",
			fen:   "8/8/8/8/8/1P6/2P5/N7 w 0",
			piece: "a1",
			want:  []string{"b3", "c2"},
		},
		{
			name:  "king skips friendly squares",
			fen:   "8/8/8/8/8/8/PP6/K7 w 0",
			piece: "a1",
			want:  []string{"b1"},
		},
		{
			name:  "white pawn double push",
			fen:   "8/8/8/8/8/8/4P3/8 w 0",
			piece: "e2",
			want:  []string{"e3", "e4"},
		},
		{
			name:  "white pawn double push blocked on second square",
			fen:   "8/8/8/8/4p3/8/4P3/8 w 0",
			piece: "e2",
			want:  []string{"e3"},
		},
		{
			name:  "white pawn blocked",
			fen:   "8/8/8/8/8/4p3/4P3/8 w 0",
			piece: "e2",
			want:  nil,
		},
		{
			name:  "pawn off its start row",
			fen:   "8/8/8/8/8/4P3/8/8 w 0",
			piece: "e3",
			want:  []string{"e4"},
		},
		{
			name:  "pawn sees occupied diagonals",
			fen:   "8/8/8/8/8/3p1P2/4P3/8 w 0",
			piece: "e2",
			want:  []string{"e3", "e4", "d3", "f3"},
		},
		{
			name:  "black pawn",
			fen:   "8/3p4/2P5/8/8/8/8/8 b 0",
			piece: "d7",
			want:  []string{"d6", "d5", "c6"},
		},
		{
			name:  "pawn on a file edge",
			fen:   "8/8/8/8/8/1p6/P7/8 w 0",
			piece: "a2",
			want:  []string{"a3", "a4", "b3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := decode(t, tt.fen)
			piece := b.At(square(t, tt.piece))
			if piece == nil {
				t.Fatalf("no piece on %s", tt.piece)
			}

			got := piece.VisiblePositions()
			want := squares(t, tt.want...)
			if diff := cmp.Diff(want, got, sortPositions, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("VisiblePositions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPossibleMoves(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		piece string
		want  []string
	}{
		{
			name:  "pinned bishop",
			fen:   "4r3/8/8/8/8/8/4B3/4K3 w 0",
			piece: "e2",
			want:  nil,
		},
		{
			name:  "pinned rook slides along the pin",
			fen:   "4r3/8/8/8/8/8/4R3/4K3 w 0",
			piece: "e2",
			want:  []string{"e3", "e4", "e5", "e6", "e7", "e8"},
		},
		{
			name:  "check must be answered",
			fen:   "4r3/8/8/8/8/8/R7/4K3 w 0",
			piece: "a2",
			want:  []string{"e2"},
		},
		{
			name:  "king is never captured",
			fen:   "4k3/8/8/8/8/8/8/4RK2 w 0",
			piece: "e1",
			want:  []string{"a1", "b1", "c1", "d1", "e2", "e3", "e4", "e5", "e6", "e7"},
		},
		{
			name:  "king avoids contested squares",
			fen:   "8/8/8/8/8/8/r7/4K3 w 0",
			piece: "e1",
			want:  []string{"d1", "f1"},
		},
		{
			name:  "king can't hide behind itself",
			fen:   "8/8/8/8/8/8/8/r3K3 w 0",
			piece: "e1",
			want:  []string{"d2", "e2", "f2"},
		},
		{
			name:  "king captures undefended piece",
			fen:   "8/8/8/8/8/8/4q3/4K3 w 0",
			piece: "e1",
			want:  []string{"e2"},
		},
		{
			name:  "king keeps away from defended piece",
			fen:   "8/8/8/8/8/4r3/4q3/4K3 w 0",
			piece: "e1",
			want:  nil,
		},
		{
			name:  "king keeps away from pawn attacks",
			fen:   "8/8/8/8/8/3p4/8/4K3 w 0",
			piece: "e1",
			want:  []string{"d1", "f1", "d2", "f2"},
		},
		{
			name:  "king keeps away from the other king",
			fen:   "8/8/8/8/8/4k3/8/4K3 w 0",
			piece: "e1",
			want:  []string{"d1", "f1"},
		},
		{
			name:  "knight avoids friends",
			fen:   "8/8/8/8/8/1P6/8/N7 w 0",
			piece: "a1",
			want:  []string{"c2"},
		},
		{
			name:  "pawn captures but not kings",
			fen:   "8/8/8/8/8/3k1n2/4P3/7K w 0",
			piece: "e2",
			want:  []string{"e3", "e4", "f3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := decode(t, tt.fen)
			piece := b.At(square(t, tt.piece))
			if piece == nil {
				t.Fatalf("no piece on %s", tt.piece)
			}

			before := fen.Encode(b, board.White, 0)

			got := piece.PossibleMoves()
			want := squares(t, tt.want...)
			if diff := cmp.Diff(want, got, sortPositions, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("PossibleMoves() mismatch (-want +got):\n%s", diff)
			}

			if after := fen.Encode(b, board.White, 0); after != before {
				t.Errorf("PossibleMoves() changed the board: %q -> %q", before, after)
			}
		})
	}
}

func TestInCheck(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		white bool
		black bool
	}{
		{"quiet", "4k3/8/8/8/8/8/8/4K3 w 0", false, false},
		{"rook", "4k3/8/8/8/8/8/8/r3K3 w 0", true, false},
		{"rook blocked", "4k3/8/8/8/8/8/8/r1N1K3 w 0", false, false},
		{"bishop", "4k3/8/8/8/1b6/8/8/4K3 w 0", true, false},
		{"queen diagonal", "4k3/8/8/8/8/8/5q2/4K3 w 0", true, false},
		{"knight", "4k3/8/8/8/8/3n4/8/4K3 w 0", true, false},
		{"black pawn", "4k3/8/8/8/8/8/3p4/4K3 w 0", true, false},
		{"black pawn behind", "4k3/8/8/8/8/8/8/3pK3 w 0", false, false},
		{"white pawn", "4k3/3P4/8/8/8/8/8/4K3 b 0", false, true},
		{"white pawn in front", "4k3/4P3/8/8/8/8/8/4K3 b 0", false, false},
		{"friendly rook", "4k3/8/8/8/8/8/8/R3K3 w 0", false, false},
		{"no king", "8/8/8/8/8/8/8/r7 w 0", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := decode(t, tt.fen)

			if got := b.InCheck(board.White); got != tt.white {
				t.Errorf("InCheck(white) = %v, want %v", got, tt.white)
			}

			if got := b.InCheck(board.Black); got != tt.black {
				t.Errorf("InCheck(black) = %v, want %v", got, tt.black)
			}
		})
	}
}

func TestMoveTo(t *testing.T) {
	b := board.NewStandard()
	knight := b.At(square(t, "g1"))

	if err := knight.MoveTo(square(t, "f3")); err != nil {
		t.Fatalf("MoveTo(f3) error: %v", err)
	}

	if b.At(square(t, "g1")) != nil {
		t.Error("g1 still occupied after the knight left")
	}

	if b.At(square(t, "f3")) != knight {
		t.Error("f3 doesn't hold the knight")
	}

	if knight.Position() != square(t, "f3") {
		t.Errorf("knight.Position() = %v, want f3", knight.Position())
	}
}

func TestMoveToCapture(t *testing.T) {
	b := decode(t, "4k3/8/8/8/8/8/4p3/R3K3 w 0")
	rook := b.At(square(t, "a1"))

	if err := rook.MoveTo(square(t, "a8")); err != nil {
		t.Fatalf("MoveTo(a8) error: %v", err)
	}

	pawn := b.At(square(t, "e2"))
	if err := b.At(square(t, "e1")).MoveTo(square(t, "e2")); err != nil {
		t.Fatalf("king MoveTo(e2) error: %v", err)
	}

	if got := len(b.Pieces()); got != 3 {
		t.Errorf("len(Pieces()) = %d, want 3", got)
	}

	for _, piece := range b.Pieces() {
		if piece == pawn {
			t.Error("captured pawn is still on the board")
		}
	}
}

func TestMoveToIllegal(t *testing.T) {
	b := board.NewStandard()
	knight := b.At(square(t, "b1"))

	err := knight.MoveTo(square(t, "b3"))
	if !errors.Is(err, board.ErrIllegalMove) {
		t.Fatalf("MoveTo(b3) error = %v, want ErrIllegalMove", err)
	}

	var illegal *board.IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatalf("MoveTo(b3) error %T is not an *IllegalMoveError", err)
	}

	if illegal.To != square(t, "b3") {
		t.Errorf("illegal.To = %v, want b3", illegal.To)
	}

	want := squares(t, "c3", "a3")
	if diff := cmp.Diff(want, illegal.Alternatives); diff != "" {
		t.Errorf("Alternatives mismatch (-want +got):\n%s", diff)
	}

	if msg := err.Error(); msg != "illegal move b1b3: knight on b1 can't move to b3 (try b1c3, b1a3)" {
		t.Errorf("Error() = %q", msg)
	}

	if b.At(square(t, "b1")) != knight {
		t.Error("illegal move changed the board")
	}
}

func TestSameSquareRejected(t *testing.T) {
	positions := []string{
		fen.Start,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w 0",
		"7k/8/8/8/8/8/2r5/K1r5 w 0",
	}

	for _, text := range positions {
		b := decode(t, text)
		for _, piece := range b.Pieces() {
			err := piece.MoveTo(piece.Position())
			if !errors.Is(err, board.ErrIllegalMove) {
				t.Errorf("%s: %v MoveTo(own square %v) error = %v, want ErrIllegalMove",
					text, piece.Type(), piece.Position(), err)
			}
		}
	}
}

// TestNoSelfCheck plays every legal move of every piece on a fresh copy of
// the position and makes sure the mover's king is never left in check.
func TestNoSelfCheck(t *testing.T) {
	positions := []string{
		fen.Start,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w 0",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b 0",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w 0",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w 0",
		"4r3/8/8/8/8/8/4B3/4K3 w 0",
	}

	for _, text := range positions {
		b := decode(t, text)
		for _, piece := range b.Pieces() {
			from, color := piece.Position(), piece.Color()
			for _, target := range piece.PossibleMoves() {
				copied := decode(t, text)
				if err := copied.At(from).MoveTo(target); err != nil {
					t.Fatalf("%s: MoveTo(%v%v) error: %v", text, from, target, err)
				}

				if copied.InCheck(color) {
					t.Errorf("%s: %v%v leaves %v in check", text, from, target, color)
				}

				if got, want := len(copied.Pieces()), len(b.Pieces()); got > want {
					t.Errorf("%s: %v%v increased the piece count to %d", text, from, target, got)
				}
			}
		}

		if got := fen.Encode(b, board.White, 0); got != fen.Encode(decode(t, text), board.White, 0) {
			t.Errorf("%s: move generation changed the board to %q", text, got)
		}
	}
}

func TestOccupancyAfterMoves(t *testing.T) {
	b := board.NewStandard()

	line := [][2]string{
		{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}, {"d8", "d5"},
		{"b1", "c3"}, {"d5", "a5"}, {"g1", "f3"}, {"c8", "g4"},
	}

	count := len(b.Pieces())
	for _, m := range line {
		piece := b.At(square(t, m[0]))
		if piece == nil {
			t.Fatalf("no piece on %s", m[0])
		}

		if err := piece.MoveTo(square(t, m[1])); err != nil {
			t.Fatalf("MoveTo(%s%s) error: %v", m[0], m[1], err)
		}

		pieces := b.Pieces()
		if len(pieces) > count {
			t.Fatalf("piece count grew from %d to %d", count, len(pieces))
		}
		count = len(pieces)

		seen := map[board.Position]bool{}
		for _, p := range pieces {
			if seen[p.Position()] {
				t.Fatalf("two pieces believe they are on %v", p.Position())
			}
			seen[p.Position()] = true

			if b.At(p.Position()) != p {
				t.Fatalf("%v on %v disagrees with the grid", p.Type(), p.Position())
			}
		}
	}

	if count != 30 {
		t.Errorf("piece count = %d, want 30", count)
	}
}

func TestString(t *testing.T) {
	want := strings.Join([]string{
		"  a b c d e f g h",
		"8 r n b q k b n r  8",
		"7 p p p p p p p p  7",
		"6 . . . . . . . .  6",
		"5 . . . . . . . .  5",
		"4 . . . . . . . .  4",
		"3 . . . . . . . .  3",
		"2 P P P P P P P P  2",
		"1 R N B Q K B N R  1",
		"  a b c d e f g h",
	}, "\n")

	if diff := cmp.Diff(want, board.NewStandard().String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTheme(t *testing.T) {
	out := board.NewStandard().Render(board.ThemeGreen)
	if !strings.Contains(out, "\x1b[") {
		t.Error("Render(green) has no escape codes")
	}

	if !board.ValidTheme(board.ThemeBrown) || board.ValidTheme("pink") {
		t.Error("ValidTheme misreports known themes")
	}

	if diff := cmp.Diff([]string{"off", "brown", "gray", "green"}, board.Themes()); diff != "" {
		t.Errorf("Themes() mismatch (-want +got):\n%s", diff)
	}
}
