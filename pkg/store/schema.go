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

// Schema defines the SQLite database structure. Games don't reference
// players so that finished games outlive a removed player.
const Schema = `
CREATE TABLE IF NOT EXISTS players (
	name TEXT PRIMARY KEY,
	rating INTEGER NOT NULL,
	wins INTEGER NOT NULL DEFAULT 0,
	losses INTEGER NOT NULL DEFAULT 0,
	draws INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	white TEXT NOT NULL,
	black TEXT NOT NULL,
	start_fen TEXT NOT NULL,
	fen TEXT NOT NULL,
	ended INTEGER NOT NULL DEFAULT 0,
	outcome TEXT NOT NULL DEFAULT '*' CHECK(outcome IN ('*', '1-0', '0-1', '1/2-1/2')),
	draw_offer TEXT NOT NULL DEFAULT '' CHECK(draw_offer IN ('', 'w', 'b')),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	move_uci TEXT NOT NULL,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_white ON games(white);
CREATE INDEX IF NOT EXISTS idx_games_black ON games(black);
`
