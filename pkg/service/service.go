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

// Package service hosts the players and games of a referee. Every change
// is checked against the rules on a copy of the game, written through to a
// store, and only then made visible. A Service is safe for concurrent use.
package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/referee/pkg/board"
	"laptudirm.com/x/referee/pkg/game"
	"laptudirm.com/x/referee/pkg/rating"
	"laptudirm.com/x/referee/pkg/store"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrAmbiguousGame  = errors.New("game id is ambiguous")
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")
	ErrInvalidName    = errors.New("invalid player name")
	ErrSamePlayer     = errors.New("a player can't play against themselves")
	ErrPlayerBusy     = errors.New("player has unfinished games")
	ErrNoDrawOffer    = errors.New("no draw has been offered")

	// ErrGameEnded is returned for moves and claims in finished games.
	ErrGameEnded = game.ErrGameEnded
)

// Options configures a Service.
type Options struct {
	InitialRating int
	KFactor       float64
}

// DefaultOptions are the options used for a zero Options value.
var DefaultOptions = Options{
	InitialRating: rating.Initial,
	KFactor:       rating.KFactor,
}

// Service is a collection of players and the games between them.
type Service struct {
	mu sync.Mutex

	store store.Store
	opts  Options

	players map[string]*store.PlayerRecord
	games   map[string]*entry

	// now is replaced in tests.
	now func() time.Time
}

// entry is a hosted game along with the bookkeeping the game state itself
// doesn't track.
type entry struct {
	state *game.State

	start   string
	history []string

	created time.Time
	updated time.Time
}

// New creates a service backed by the given store, loading every player
// and game already in it.
func New(s store.Store, opts Options) (*Service, error) {
	if opts == (Options{}) {
		opts = DefaultOptions
	}

	svc := &Service{
		store: s,
		opts:  opts,

		players: map[string]*store.PlayerRecord{},
		games:   map[string]*entry{},

		now: time.Now,
	}

	players, err := s.Players()
	if err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}

	for i := range players {
		svc.players[players[i].Name] = &players[i]
	}

	games, err := s.Games()
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	for _, record := range games {
		e, err := fromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("loading game %s: %w", record.ID, err)
		}

		svc.games[record.ID] = e
	}

	logrus.WithFields(logrus.Fields{
		"players": len(svc.players),
		"games":   len(svc.games),
	}).Debug("service ready")

	return svc, nil
}

// Close closes the underlying store.
func (svc *Service) Close() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	return svc.store.Close()
}

func fromRecord(record store.GameRecord) (*entry, error) {
	state, err := game.FromFEN(record.ID, record.White, record.Black, record.FEN)
	if err != nil {
		return nil, err
	}

	outcome, err := game.ParseOutcome(record.Outcome)
	if err != nil {
		return nil, err
	}

	state.Ended = record.Ended
	state.Outcome = outcome

	switch record.DrawOffer {
	case board.White.Letter():
		offer := board.White
		state.DrawOffer = &offer
	case board.Black.Letter():
		offer := board.Black
		state.DrawOffer = &offer
	}

	return &entry{
		state:   state,
		start:   record.Start,
		history: record.History,
		created: record.Created,
		updated: record.Updated,
	}, nil
}

func (e *entry) record() store.GameRecord {
	var offer string
	if e.state.DrawOffer != nil {
		offer = e.state.DrawOffer.Letter()
	}

	return store.GameRecord{
		ID:    e.state.ID,
		White: e.state.White,
		Black: e.state.Black,

		Start:   e.start,
		FEN:     e.state.FEN(),
		History: e.history,

		Ended:     e.state.Ended,
		Outcome:   e.state.Outcome.String(),
		DrawOffer: offer,

		Created: e.created,
		Updated: e.updated,
	}
}

// resolve finds a game by its id or by a prefix of exactly one game's id.
func (svc *Service) resolve(id string) (*entry, error) {
	if e, found := svc.games[id]; found {
		return e, nil
	}

	var match *entry
	if id != "" {
		for gameID, e := range svc.games {
			if !strings.HasPrefix(gameID, id) {
				continue
			}

			if match != nil {
				return nil, fmt.Errorf("%s: %w", id, ErrAmbiguousGame)
			}

			match = e
		}
	}

	if match == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrGameNotFound)
	}

	return match, nil
}

// clone copies a game so that a change can be tried on the copy and
// committed only once it has been stored.
func (e *entry) clone() (*entry, error) {
	c, err := fromRecord(e.record())
	if err != nil {
		return nil, err
	}

	c.history = append([]string{}, e.history...)
	return c, nil
}

// update commits a changed copy of a game. If the change ended the game the
// players' ratings and records are settled along with it.
func (svc *Service) update(e *entry, ended bool) error {
	var players []store.PlayerRecord
	if ended {
		var err error
		if players, err = svc.settle(e.state); err != nil {
			return err
		}
	}

	if err := svc.commit(e, players...); err != nil {
		return err
	}

	if ended {
		white, black := svc.players[e.state.White], svc.players[e.state.Black]
		logrus.WithFields(logrus.Fields{
			"game":   e.state.ID,
			"result": e.state.Outcome,
		}).Infof("%s (%d) vs %s (%d)", white.Name, white.Rating, black.Name, black.Rating)
	}

	return nil
}

// commit stamps a game as updated and writes it, along with the given
// player records, to the store. The hosted game and players are replaced
// only after every write succeeded; on failure they are left as they were
// and the player records already written are put back.
func (svc *Service) commit(e *entry, players ...store.PlayerRecord) error {
	e.updated = svc.now()

	for i, player := range players {
		if err := svc.store.SavePlayer(player); err != nil {
			svc.restore(players[:i])
			return fmt.Errorf("saving player %s: %w", player.Name, err)
		}
	}

	if err := svc.store.SaveGame(e.record()); err != nil {
		svc.restore(players)
		return fmt.Errorf("saving game %s: %w", e.state.ID, err)
	}

	svc.games[e.state.ID] = e
	for _, player := range players {
		*svc.players[player.Name] = player
	}

	return nil
}

// restore writes the hosted records of the given players back to the store.
func (svc *Service) restore(players []store.PlayerRecord) {
	for _, player := range players {
		if err := svc.store.SavePlayer(*svc.players[player.Name]); err != nil {
			logrus.WithError(err).WithField("player", player.Name).Error("restoring player record")
		}
	}
}
