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

package util

import (
	"regexp"
	"strconv"
	"strings"
)

var chunkifyRegexp = regexp.MustCompile(`(\d+|\D+)`)

func chunkify(s string) []string {
	return chunkifyRegexp.FindAllString(s, -1)
}

// AlphanumCompare reports whether a strictly precedes b in natural order:
// runs of digits compare by value and everything else compares without
// regard to case, so "player2" sorts before "Player10". Names equal under
// that order fall back to a plain byte comparison.
func AlphanumCompare(a, b string) bool {
	chunksA, chunksB := chunkify(a), chunkify(b)

	for i := 0; i < len(chunksA) && i < len(chunksB); i++ {
		x, y := chunksA[i], chunksB[i]

		xInt, xErr := strconv.Atoi(x)
		yInt, yErr := strconv.Atoi(y)

		switch {
		// both chunks are numeric, compare them as integers
		case xErr == nil && yErr == nil:
			if xInt != yInt {
				return xInt < yInt
			}

		case !strings.EqualFold(x, y):
			return strings.ToLower(x) < strings.ToLower(y)
		}
	}

	if len(chunksA) != len(chunksB) {
		// every shared chunk is equal, the shorter string goes first
		return len(chunksA) < len(chunksB)
	}

	return a < b
}
