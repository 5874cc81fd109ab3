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

package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/referee/pkg/board"
	"laptudirm.com/x/referee/pkg/formats/fen"
	"laptudirm.com/x/referee/pkg/game"
)

// Game is a snapshot of a hosted game.
type Game struct {
	ID    string `json:"id"`
	White string `json:"white"`
	Black string `json:"black"`

	FEN     string   `json:"fen"`
	ToMove  string   `json:"toMove"`
	Moves   uint     `json:"moves"`
	History []string `json:"history"`

	// Check is set when the side to move is in check.
	Check     bool   `json:"check"`
	Ended     bool   `json:"ended"`
	Outcome   string `json:"outcome"`
	DrawOffer string `json:"drawOffer,omitempty"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Board decodes a fresh copy of the game's position.
func (g Game) Board() *board.Board {
	b, _, _, err := fen.Decode(g.FEN)
	if err != nil {
		panic("service: game holds an invalid position: " + err.Error())
	}

	return b
}

func (e *entry) view() Game {
	state := e.state

	var offer string
	if state.DrawOffer != nil {
		offer = state.DrawOffer.String()
	}

	return Game{
		ID:    state.ID,
		White: state.White,
		Black: state.Black,

		FEN:     state.FEN(),
		ToMove:  state.ToMove.String(),
		Moves:   state.Moves,
		History: append([]string{}, e.history...),

		Check:     state.Board.InCheck(state.ToMove),
		Ended:     state.Ended,
		Outcome:   state.Outcome.String(),
		DrawOffer: offer,

		Created: e.created,
		Updated: e.updated,
	}
}

// CreateGame starts a game between two registered players, from the given
// position or from the standard starting position if it is empty.
func (svc *Service) CreateGame(white, black, position string) (Game, error) {
	if white == black {
		return Game{}, fmt.Errorf("%s: %w", white, ErrSamePlayer)
	}

	if position == "" {
		position = fen.Start
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, name := range []string{white, black} {
		if _, found := svc.players[name]; !found {
			return Game{}, fmt.Errorf("%s: %w", name, ErrPlayerNotFound)
		}
	}

	e, err := svc.newGame(white, black, position)
	if err != nil {
		return Game{}, err
	}

	return e.view(), nil
}

// newGame creates and saves a game. The caller must hold the lock and have
// checked the players.
func (svc *Service) newGame(white, black, position string) (*entry, error) {
	state, err := game.FromFEN(uuid.NewString(), white, black, position)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	e := &entry{
		state:   state,
		start:   state.FEN(),
		created: now,
		updated: now,
	}

	// a game set up in a mated position is over before it begins
	if err := svc.update(e, state.Checkmate()); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"game":  state.ID,
		"white": white,
		"black": black,
	}).Info("game created")

	return e, nil
}

// Game returns the game with the given id or unique id prefix.
func (svc *Service) Game(id string) (Game, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	e, err := svc.resolve(id)
	if err != nil {
		return Game{}, err
	}

	return e.view(), nil
}

// GameFilter selects games in Games.
type GameFilter struct {
	// Player keeps only the games played by the named player.
	Player string
	// Active keeps only the games which haven't ended.
	Active bool
}

// Games returns the games matching the filter, oldest first.
func (svc *Service) Games(filter GameFilter) []Game {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	var games []Game
	for _, e := range svc.games {
		switch {
		case filter.Active && e.state.Ended:
			continue
		case filter.Player != "" && e.state.White != filter.Player && e.state.Black != filter.Player:
			continue
		}

		games = append(games, e.view())
	}

	sort.Slice(games, func(i, j int) bool {
		if !games[i].Created.Equal(games[j].Created) {
			return games[i].Created.Before(games[j].Created)
		}

		return games[i].ID < games[j].ID
	})

	return games
}

// DeleteGame removes a game. Ratings already applied from it are kept.
func (svc *Service) DeleteGame(id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	e, err := svc.resolve(id)
	if err != nil {
		return err
	}

	if err := svc.store.DeleteGame(e.state.ID); err != nil {
		return err
	}

	delete(svc.games, e.state.ID)
	logrus.WithField("game", e.state.ID).Info("game deleted")
	return nil
}

// LegalMoves returns the squares the piece on the given square may move
// to. An empty square has no moves.
func (svc *Service) LegalMoves(id, square string) ([]string, error) {
	from, err := board.ParsePosition(square)
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	e, err := svc.resolve(id)
	if err != nil {
		return nil, err
	}

	piece := e.state.Board.At(from)
	if piece == nil {
		return []string{}, nil
	}

	moves := []string{}
	for _, to := range piece.PossibleMoves() {
		moves = append(moves, to.String())
	}

	sort.Strings(moves)
	return moves, nil
}

// Move plays a move for the side to move. A pawn reaching its last row is
// promoted to the piece named by promotion, or to a queen if it is empty.
// The game ends if the move delivers checkmate.
func (svc *Service) Move(id, from, to, promotion string) (Game, error) {
	src, err := board.ParsePosition(from)
	if err != nil {
		return Game{}, err
	}

	dst, err := board.ParsePosition(to)
	if err != nil {
		return Game{}, err
	}

	piece := board.Queen
	if promotion != "" {
		var ok bool
		if piece, ok = board.ParsePieceType(promotion); !ok {
			return Game{}, fmt.Errorf("unknown piece %q: %w", promotion, board.ErrIllegalPromotion)
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	e, err := svc.resolve(id)
	if err != nil {
		return Game{}, err
	}

	if e, err = e.clone(); err != nil {
		return Game{}, err
	}

	state := e.state

	move := src.String() + dst.String()
	if p := state.Board.At(src); p != nil && p.Type() == board.Pawn && dst.Row == board.LastRow(p.Color()) {
		move += strings.ToLower(string(piece.Letter()))
	}

	if err := state.MovePromote(src, dst, piece); err != nil {
		return Game{}, err
	}

	e.history = append(e.history, move)
	logrus.WithFields(logrus.Fields{
		"game": state.ID,
		"move": move,
	}).Debug("move played")

	if err := svc.update(e, state.Checkmate()); err != nil {
		return Game{}, err
	}

	return e.view(), nil
}

// Promote replaces a pawn standing on its last row with the named piece.
func (svc *Service) Promote(id, square, piece string) (Game, error) {
	pos, err := board.ParsePosition(square)
	if err != nil {
		return Game{}, err
	}

	t, ok := board.ParsePieceType(piece)
	if !ok {
		return Game{}, fmt.Errorf("unknown piece %q: %w", piece, board.ErrIllegalPromotion)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	e, err := svc.resolve(id)
	if err != nil {
		return Game{}, err
	}

	if e, err = e.clone(); err != nil {
		return Game{}, err
	}

	if err := e.state.Promote(pos, t); err != nil {
		return Game{}, err
	}

	if err := svc.update(e, e.state.Checkmate()); err != nil {
		return Game{}, err
	}

	return e.view(), nil
}

// Resign ends the game in favor of the side not to move.
func (svc *Service) Resign(id string) (Game, error) {
	return svc.conclude(id, func(state *game.State) error {
		return state.Resign()
	})
}

// OfferDraw offers a draw on behalf of the side to move, or accepts the
// opponent's standing offer.
func (svc *Service) OfferDraw(id string) (Game, error) {
	return svc.conclude(id, func(state *game.State) error {
		_, err := state.Draw()
		return err
	})
}

// AcceptDraw accepts the opponent's standing draw offer on behalf of the
// side to move.
func (svc *Service) AcceptDraw(id string) (Game, error) {
	return svc.conclude(id, func(state *game.State) error {
		if state.Ended {
			return fmt.Errorf("draw: %w", ErrGameEnded)
		}

		if state.DrawOffer == nil || *state.DrawOffer == state.ToMove {
			return fmt.Errorf("%s has no offer to accept: %w", state.ToMove, ErrNoDrawOffer)
		}

		_, err := state.Draw()
		return err
	})
}

// conclude applies a resignation or draw claim to a game, finishing it if
// the claim ended the game.
func (svc *Service) conclude(id string, claim func(*game.State) error) (Game, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	e, err := svc.resolve(id)
	if err != nil {
		return Game{}, err
	}

	if e, err = e.clone(); err != nil {
		return Game{}, err
	}

	if err := claim(e.state); err != nil {
		return Game{}, err
	}

	if err := svc.update(e, e.state.Ended); err != nil {
		return Game{}, err
	}

	return e.view(), nil
}

// Import creates one game between white and black for every position. No
// game is created unless every position decodes.
func (svc *Service) Import(white, black string, positions []string) ([]Game, error) {
	for i, position := range positions {
		if _, _, _, err := fen.Decode(position); err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}
	}

	if white == black {
		return nil, fmt.Errorf("%s: %w", white, ErrSamePlayer)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, name := range []string{white, black} {
		if _, found := svc.players[name]; !found {
			return nil, fmt.Errorf("%s: %w", name, ErrPlayerNotFound)
		}
	}

	games := make([]Game, 0, len(positions))
	for _, position := range positions {
		e, err := svc.newGame(white, black, position)
		if err != nil {
			return games, err
		}

		games = append(games, e.view())
	}

	return games, nil
}
