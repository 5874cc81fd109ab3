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

package game

import (
	"fmt"

	"laptudirm.com/x/referee/pkg/board"
)

// Outcome represents the result of a single game.
type Outcome int

const (
	InProgress Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// WonBy maps the winning color to the game's Outcome.
var WonBy = [board.ColorN]Outcome{
	board.White: WhiteWins,
	board.Black: BlackWins,
}

// String returns the PGN result token of the given Outcome.
func (outcome Outcome) String() string {
	switch outcome {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// ParseOutcome converts a PGN result token back into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "*":
		return InProgress, nil
	case "1-0":
		return WhiteWins, nil
	case "0-1":
		return BlackWins, nil
	case "1/2-1/2":
		return Draw, nil
	default:
		return InProgress, fmt.Errorf("game: unknown outcome %q", s)
	}
}

// Score returns the number of points the given color earns from a finished
// game: 1 for a win, 0.5 for a draw, and 0 for a loss.
func (outcome Outcome) Score(c board.Color) float64 {
	switch outcome {
	case Draw:
		return 0.5
	case WonBy[c]:
		return 1
	default:
		return 0
	}
}
