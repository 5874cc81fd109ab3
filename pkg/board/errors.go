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

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the ways a rules query can reject its input. Every
// error returned by this package and by the fen and game packages wraps one
// of these, so callers can branch with errors.Is.
var (
	// ErrIllegalMove is returned when a move breaks the rules of chess
	// or the turn order.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidPosition is returned for malformed square names.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrMalformedFEN is returned when a board encoding can't be decoded.
	ErrMalformedFEN = errors.New("malformed fen")

	// ErrIllegalPromotion is returned when a promotion request doesn't
	// name a pawn standing on its last rank.
	ErrIllegalPromotion = errors.New("illegal promotion")
)

// IllegalMoveError describes a rejected move. Alternatives holds up to two
// destinations the piece could legally move to, if there are any.
type IllegalMoveError struct {
	From, To     Position
	Reason       string
	Alternatives []Position
}

// maxAlternatives is the number of legal destinations reported back.
const maxAlternatives = 2

func newIllegalMoveError(from, to Position, reason string, legal []Position) *IllegalMoveError {
	return &IllegalMoveError{
		From:         from,
		To:           to,
		Reason:       reason,
		Alternatives: legal[:min(len(legal), maxAlternatives)],
	}
}

func (e *IllegalMoveError) Error() string {
	msg := fmt.Sprintf("illegal move %s%s: %s", e.From, e.To, e.Reason)
	if len(e.Alternatives) > 0 {
		alts := make([]string, len(e.Alternatives))
		for i, alt := range e.Alternatives {
			alts[i] = e.From.String() + alt.String()
		}

		msg += " (try " + strings.Join(alts, ", ") + ")"
	}

	return msg
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// NewIllegalMoveError returns an IllegalMoveError without alternatives, for
// rejections that happen before a piece is consulted.
func NewIllegalMoveError(from, to Position, reason string) error {
	return newIllegalMoveError(from, to, reason, nil)
}
