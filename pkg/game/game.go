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

// Package game implements the turn machine of a single chess game on top
// of package board: whose move it is, how many plies have been played, and
// how the game ended.
package game

import (
	"errors"
	"fmt"

	"laptudirm.com/x/referee/pkg/board"
	"laptudirm.com/x/referee/pkg/formats/fen"
)

// ErrGameEnded is returned when a move or claim is made in a game which
// already has an outcome.
var ErrGameEnded = errors.New("game has ended")

// State is a single game between two players. It exclusively owns its
// board and, like the board, is not safe for concurrent use.
type State struct {
	ID           string
	White, Black string

	Board  *board.Board
	ToMove board.Color
	Moves  uint // plies played

	Ended   bool
	Outcome Outcome

	// DrawOffer is the color which offered a draw, if any. An offer
	// lapses as soon as the other side makes a move.
	DrawOffer *board.Color
}

// New creates a game from the standard starting position.
func New(id, white, black string) *State {
	return &State{
		ID:    id,
		White: white,
		Black: black,

		Board:  board.NewStandard(),
		ToMove: board.White,
	}
}

// FromFEN creates a game from an encoded position.
func FromFEN(id, white, black, position string) (*State, error) {
	b, toMove, moves, err := fen.Decode(position)
	if err != nil {
		return nil, err
	}

	return &State{
		ID:    id,
		White: white,
		Black: black,

		Board:  b,
		ToMove: toMove,
		Moves:  moves,
	}, nil
}

// FEN encodes the game's current position.
func (game *State) FEN() string {
	return fen.Encode(game.Board, game.ToMove, game.Moves)
}

// Player returns the name of the player with the given color.
func (game *State) Player(c board.Color) string {
	if c == board.White {
		return game.White
	}

	return game.Black
}

// ToggleNextToMove hands the move to the other side and counts a ply.
func (game *State) ToggleNextToMove() {
	game.ToMove = game.ToMove.Other()
	game.Moves++
}

// DeclareWinner ends the game with the given outcome. It does not check
// that the position warrants that outcome.
func (game *State) DeclareWinner(outcome Outcome) {
	game.Ended = true
	game.Outcome = outcome
	game.DrawOffer = nil
}

// Move plays the side to move's piece on from to the square to. A pawn
// which reaches its last row is promoted to a queen.
func (game *State) Move(from, to board.Position) error {
	return game.MovePromote(from, to, board.Queen)
}

// MovePromote is like Move, but a pawn reaching its last row is promoted
// to the given piece type. The promotion type is checked before anything
// is moved, even when the move turns out not to be a promotion.
func (game *State) MovePromote(from, to board.Position, promotion board.PieceType) error {
	if game.Ended {
		return fmt.Errorf("move %s%s: %w", from, to, ErrGameEnded)
	}

	if !promotable(promotion) {
		return fmt.Errorf("can't promote to %s: %w", promotion, board.ErrIllegalPromotion)
	}

	if !from.Valid() || !to.Valid() {
		return board.NewIllegalMoveError(from, to, "square is off the board")
	}

	if from == to {
		return board.NewIllegalMoveError(from, to, "start and end squares are the same")
	}

	piece := game.Board.At(from)
	switch {
	case piece == nil:
		return board.NewIllegalMoveError(from, to, fmt.Sprintf("no piece on %s", from))
	case piece.Color() != game.ToMove:
		return board.NewIllegalMoveError(from, to, fmt.Sprintf("it is %s's move", game.ToMove))
	}

	if err := piece.MoveTo(to); err != nil {
		return err
	}

	if piece.Type() == board.Pawn && to.Row == board.LastRow(piece.Color()) {
		game.Board.NewPiece(promotion, piece.Color(), to)
	}

	// the offered-to side has moved instead of accepting
	if game.DrawOffer != nil && *game.DrawOffer != game.ToMove {
		game.DrawOffer = nil
	}

	game.ToggleNextToMove()
	return nil
}

// Promote replaces the pawn on the given square, which must stand on its
// last row, with a piece of the given type.
func (game *State) Promote(square board.Position, t board.PieceType) error {
	if game.Ended {
		return fmt.Errorf("promote on %s: %w", square, ErrGameEnded)
	}

	piece := game.Board.At(square)
	switch {
	case piece == nil:
		return fmt.Errorf("no piece on %s: %w", square, board.ErrIllegalPromotion)
	case piece.Type() != board.Pawn:
		return fmt.Errorf("%s on %s is not a pawn: %w", piece.Type(), square, board.ErrIllegalPromotion)
	case square.Row != board.LastRow(piece.Color()):
		return fmt.Errorf("pawn on %s hasn't reached its last row: %w", square, board.ErrIllegalPromotion)
	case !promotable(t):
		return fmt.Errorf("can't promote to %s: %w", t, board.ErrIllegalPromotion)
	}

	game.Board.NewPiece(t, piece.Color(), square)
	return nil
}

func promotable(t board.PieceType) bool {
	switch t {
	case board.Queen, board.Rook, board.Bishop, board.Knight:
		return true
	default:
		return false
	}
}

// Checkmate ends the game if either side has been checkmated and reports
// whether it did.
func (game *State) Checkmate() bool {
	if game.Ended {
		return false
	}

	side, mated := game.Board.CheckmatedSide()
	if mated {
		game.DeclareWinner(WonBy[side.Other()])
	}

	return mated
}

// Resign ends the game in favor of the side not to move.
func (game *State) Resign() error {
	if game.Ended {
		return fmt.Errorf("resign: %w", ErrGameEnded)
	}

	game.DeclareWinner(WonBy[game.ToMove.Other()])
	return nil
}

// Draw makes or accepts a draw offer on behalf of the side to move. If the
// other side has an offer standing the game ends drawn and Draw reports
// true, otherwise an offer from the side to move is recorded.
func (game *State) Draw() (bool, error) {
	if game.Ended {
		return false, fmt.Errorf("draw: %w", ErrGameEnded)
	}

	if game.DrawOffer != nil && *game.DrawOffer != game.ToMove {
		game.DeclareWinner(Draw)
		return true, nil
	}

	offer := game.ToMove
	game.DrawOffer = &offer
	return false, nil
}
