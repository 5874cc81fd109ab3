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
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	referee "laptudirm.com/x/referee/pkg/common"
)

// DatabaseFile is the name of the SQLite database inside a data directory.
const DatabaseFile = "referee.db"

// SQLiteStore keeps players and games in a SQLite database. Every write
// runs in its own transaction and is committed before returning.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database in the given directory, creating it
// and its schema if needed.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := referee.TryMkdir(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, DatabaseFile)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// pragmas are per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.initDB(); err != nil {
		db.Close()
		return nil, err
	}

	logrus.WithField("path", path).Debug("opened sqlite store")
	return s, nil
}

// initDB creates the database schema.
func (s *SQLiteStore) initDB() error {
	return s.transact(func(tx *sql.Tx) error {
		if _, err := tx.Exec(Schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}

		return nil
	})
}

// transact runs fn inside a transaction, committing only if it succeeds.
func (s *SQLiteStore) transact(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) Players() ([]PlayerRecord, error) {
	rows, err := s.db.Query(`SELECT name, rating, wins, losses, draws, created_at FROM players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.Name, &p.Rating, &p.Wins, &p.Losses, &p.Draws, &p.Created); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		players = append(players, p)
	}

	return players, rows.Err()
}

func (s *SQLiteStore) SavePlayer(player PlayerRecord) error {
	if err := Validate(player); err != nil {
		return err
	}

	return s.transact(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO players (name, rating, wins, losses, draws, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				rating = excluded.rating,
				wins = excluded.wins,
				losses = excluded.losses,
				draws = excluded.draws`,
			player.Name, player.Rating, player.Wins, player.Losses, player.Draws, player.Created,
		)
		return err
	})
}

func (s *SQLiteStore) DeletePlayer(name string) error {
	return s.transact(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM players WHERE name = ?`, name)
		return err
	})
}

func (s *SQLiteStore) Games() ([]GameRecord, error) {
	rows, err := s.db.Query(`SELECT
		game_id, white, black, start_fen, fen,
		ended, outcome, draw_offer, created_at, updated_at
	FROM games ORDER BY created_at, game_id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	index := map[string]int{}
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(
			&g.ID, &g.White, &g.Black, &g.Start, &g.FEN,
			&g.Ended, &g.Outcome, &g.DrawOffer, &g.Created, &g.Updated,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		index[g.ID] = len(games)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// release the only connection before the next query
	rows.Close()

	moves, err := s.db.Query(`SELECT game_id, move_uci FROM moves ORDER BY game_id, move_number`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer moves.Close()

	for moves.Next() {
		var id, move string
		if err := moves.Scan(&id, &move); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		if i, found := index[id]; found {
			games[i].History = append(games[i].History, move)
		}
	}

	return games, moves.Err()
}

// SaveGame upserts the game row and appends any moves the database
// doesn't have yet. Stored moves are never rewritten.
func (s *SQLiteStore) SaveGame(game GameRecord) error {
	if err := Validate(game); err != nil {
		return err
	}

	return s.transact(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO games (
			game_id, white, black, start_fen, fen,
			ended, outcome, draw_offer, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			fen = excluded.fen,
			ended = excluded.ended,
			outcome = excluded.outcome,
			draw_offer = excluded.draw_offer,
			updated_at = excluded.updated_at`,
			game.ID, game.White, game.Black, game.Start, game.FEN,
			game.Ended, game.Outcome, game.DrawOffer, game.Created, game.Updated,
		)
		if err != nil {
			return err
		}

		for number, move := range game.History {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO moves (game_id, move_number, move_uci) VALUES (?, ?, ?)`,
				game.ID, number+1, move,
			); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteGame removes a game along with its moves.
func (s *SQLiteStore) DeleteGame(id string) error {
	return s.transact(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM games WHERE game_id = ?`, id)
		return err
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
