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
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/referee/internal/util"
	"laptudirm.com/x/referee/pkg/board"
	"laptudirm.com/x/referee/pkg/game"
	"laptudirm.com/x/referee/pkg/rating"
	"laptudirm.com/x/referee/pkg/store"
)

// Player is a snapshot of a player's rating and record.
type Player struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`

	Created time.Time `json:"created"`
}

// Games returns the number of finished games the player has played.
func (p Player) Games() int {
	return p.Wins + p.Losses + p.Draws
}

// Performance estimates the player's strength relative to their opponents
// along with its 95% confidence bounds.
func (p Player) Performance() (lower, mu, upper float64) {
	return rating.Performance(p.Wins, p.Draws, p.Losses)
}

func playerView(record *store.PlayerRecord) Player {
	return Player{
		Name:    record.Name,
		Rating:  record.Rating,
		Wins:    record.Wins,
		Losses:  record.Losses,
		Draws:   record.Draws,
		Created: record.Created,
	}
}

// CreatePlayer registers a new player with the initial rating.
func (svc *Service) CreatePlayer(name string) (Player, error) {
	if !store.ValidHandle(name) {
		return Player{}, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, found := svc.players[name]; found {
		return Player{}, fmt.Errorf("%s: %w", name, ErrPlayerExists)
	}

	record := &store.PlayerRecord{
		Name:    name,
		Rating:  svc.opts.InitialRating,
		Created: svc.now(),
	}

	if err := svc.store.SavePlayer(*record); err != nil {
		return Player{}, err
	}

	svc.players[name] = record
	logrus.WithField("player", name).Info("player registered")
	return playerView(record), nil
}

// Player returns the player with the given name.
func (svc *Service) Player(name string) (Player, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	record, found := svc.players[name]
	if !found {
		return Player{}, fmt.Errorf("%s: %w", name, ErrPlayerNotFound)
	}

	return playerView(record), nil
}

// Players returns every player in natural name order.
func (svc *Service) Players() []Player {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	players := make([]Player, 0, len(svc.players))
	for _, record := range svc.players {
		players = append(players, playerView(record))
	}

	sort.Slice(players, func(i, j int) bool {
		return util.AlphanumCompare(players[i].Name, players[j].Name)
	})

	return players
}

// DeletePlayer removes a player. Players with unfinished games can't be
// removed; their finished games are kept.
func (svc *Service) DeletePlayer(name string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, found := svc.players[name]; !found {
		return fmt.Errorf("%s: %w", name, ErrPlayerNotFound)
	}

	for _, e := range svc.games {
		if !e.state.Ended && (e.state.White == name || e.state.Black == name) {
			return fmt.Errorf("%s is playing %s: %w", name, e.state.ID, ErrPlayerBusy)
		}
	}

	if err := svc.store.DeletePlayer(name); err != nil {
		return err
	}

	delete(svc.players, name)
	logrus.WithField("player", name).Info("player removed")
	return nil
}

// settle computes both players' ratings and records after the given game
// ended. The hosted records are left unchanged.
func (svc *Service) settle(state *game.State) ([]store.PlayerRecord, error) {
	white, black := svc.players[state.White], svc.players[state.Black]
	if white == nil || black == nil {
		return nil, fmt.Errorf("finishing game %s: %w", state.ID, ErrPlayerNotFound)
	}

	w, b := *white, *black

	score := state.Outcome.Score(board.White)
	w.Rating, b.Rating = rating.Update(w.Rating, b.Rating, score, svc.opts.KFactor)

	switch state.Outcome {
	case game.WhiteWins:
		w.Wins++
		b.Losses++
	case game.BlackWins:
		b.Wins++
		w.Losses++
	case game.Draw:
		w.Draws++
		b.Draws++
	}

	return []store.PlayerRecord{w, b}, nil
}
