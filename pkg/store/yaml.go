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

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	referee "laptudirm.com/x/referee/pkg/common"
)

const (
	PlayersFile = "players.yaml"
	GamesFile   = "games.yaml"
)

// PlayerList is the contents of the players file, keyed by name.
type PlayerList map[string]PlayerRecord

// GameList is the contents of the games file, keyed by id.
type GameList map[string]GameRecord

// YAMLStore keeps players and games in two YAML files and rewrites the
// whole file after every change.
type YAMLStore struct {
	mu sync.Mutex

	playersFile string
	gamesFile   string

	players PlayerList
	games   GameList
}

var _ Store = (*YAMLStore)(nil)

// NewYAMLStore opens the YAML files in the given directory, creating empty
// ones if they don't exist yet.
func NewYAMLStore(dir string) (*YAMLStore, error) {
	if err := referee.TryMkdir(dir); err != nil {
		return nil, err
	}

	s := &YAMLStore{
		playersFile: filepath.Join(dir, PlayersFile),
		gamesFile:   filepath.Join(dir, GamesFile),

		players: PlayerList{},
		games:   GameList{},
	}

	if err := load(s.playersFile, &s.players); err != nil {
		return nil, err
	}

	if err := load(s.gamesFile, &s.games); err != nil {
		return nil, err
	}

	logrus.WithField("dir", dir).Debugf("loaded %d players and %d games", len(s.players), len(s.games))
	return s, nil
}

func load(file string, list any) error {
	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	}

	if err := yaml.Unmarshal(data, list); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	return nil
}

func dump(file string, list any) error {
	data, err := yaml.Marshal(list)
	if err != nil {
		return err
	}

	return os.WriteFile(file, data, referee.FilePermissions)
}

func (s *YAMLStore) Players() ([]PlayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]PlayerRecord, 0, len(s.players))
	for name, player := range s.players {
		player.Name = name
		players = append(players, player)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})

	return players, nil
}

func (s *YAMLStore) SavePlayer(player PlayerRecord) error {
	if err := Validate(player); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[player.Name] = player
	return dump(s.playersFile, s.players)
}

func (s *YAMLStore) DeletePlayer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.players, name)
	return dump(s.playersFile, s.players)
}

func (s *YAMLStore) Games() ([]GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]GameRecord, 0, len(s.games))
	for id, game := range s.games {
		game.ID = id
		games = append(games, game)
	}

	sortGames(games)
	return games, nil
}

func (s *YAMLStore) SaveGame(game GameRecord) error {
	if err := Validate(game); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[game.ID] = game
	return dump(s.gamesFile, s.games)
}

func (s *YAMLStore) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, id)
	return dump(s.gamesFile, s.games)
}

// Close is a no-op, every change is already on disk.
func (s *YAMLStore) Close() error {
	return nil
}

// sortGames orders games by creation time, oldest first.
func sortGames(games []GameRecord) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].Created.Equal(games[j].Created) {
			return games[i].Created.Before(games[j].Created)
		}

		return games[i].ID < games[j].ID
	})
}
