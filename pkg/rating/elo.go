// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

// Package rating implements the Elo rating system used to rank players.
package rating

import "math"

const (
	// Initial is the rating given to a new player.
	Initial = 1200

	// KFactor is the default maximum rating change of a single game.
	KFactor = 32
)

// Expected returns the score a player rated a is expected to make against
// a player rated b, between 0 and 1.
func Expected(a, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/400)) // score sigmoid
}

// Update returns the new ratings of two players rated a and b after a game
// in which the first player scored score (1 for a win, 0.5 for a draw, 0
// for a loss). Rating changes are rounded to the nearest integer.
func Update(a, b int, score, k float64) (int, int) {
	delta := k * (score - Expected(a, b))
	return a + round(delta), b - round(delta)
}

func round(x float64) int {
	return int(math.Round(x))
}

// Performance returns the rating difference a player's results suggest
// along with its p < 0.05 lower and upper bounds, called muMin, mu, and
// muMax respectively. All three are 0 if no games have been played.
func Performance(ws, ds, ls int) (muMin float64, mu float64, muMax float64) {
	N := float64(ws + ds + ls) // total number of games

	if N == 0 {
		return 0, 0, 0
	}

	w := float64(ws) / N // measured win probability
	d := float64(ds) / N // measured draw probability
	l := float64(ls) / N // measured loss probability

	// empirical mean of random variable
	mu = w + d/2

	// standard deviation of the random variable
	sigma := math.Sqrt(w*math.Pow(1-mu, 2)+d*math.Pow(0.5-mu, 2)+l*math.Pow(0-mu, 2)) / math.Sqrt(N)

	muMax = mu + phiInv(0.975)*sigma // upper bound
	muMin = mu + phiInv(0.025)*sigma // lower bound

	return clampElo(muMin), clampElo(mu), clampElo(muMax)
}

// clampElo converts an expected score into a rating difference. Perfect
// and zero scores have no finite difference and map to 0.
func clampElo(x float64) float64 {
	switch {
	case x <= 0, x >= 1:
		return 0

	default:
		return -400 * math.Log10(1/x-1)
	}
}

func phiInv(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
