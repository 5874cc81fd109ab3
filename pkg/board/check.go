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

package board

import "slices"

// contested reports whether a piece of color c standing on square could be
// captured by the other side. Attacks are symmetric, so a probe piece of
// each attacking kind is imagined on square and its own reach is searched
// for an enemy of the same kind. Probes are never placed on the grid.
func (b *Board) contested(square Position, c Color) bool {
	probe := base{color: c, pos: square, board: b}

	return b.threatened(probe, (&KnightPiece{probe}).VisiblePositions(), Knight) ||
		b.threatened(probe, (&PawnPiece{probe}).attacks(), Pawn) ||
		b.threatened(probe, (&RookPiece{probe}).VisiblePositions(), Rook, Queen) ||
		b.threatened(probe, (&BishopPiece{probe}).VisiblePositions(), Bishop, Queen) ||
		b.threatened(probe, (&KingPiece{probe}).VisiblePositions(), King)
}

// threatened reports whether any of the given squares holds an enemy of
// the probe whose type is one of attackers.
func (b *Board) threatened(probe base, squares []Position, attackers ...PieceType) bool {
	for _, pos := range squares {
		if piece := b.At(pos); probe.isEnemy(piece) && slices.Contains(attackers, piece.Type()) {
			return true
		}
	}

	return false
}
