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

package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	referee "laptudirm.com/x/referee/pkg/common"
	"laptudirm.com/x/referee/pkg/service"
)

func Moves() *cobra.Command {
	return &cobra.Command{
		Use:   "moves game square",
		Short: "List the legal moves of the piece on a square",
		Args:  cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				moves, err := svc.LegalMoves(args[0], args[1])
				if err != nil {
					return err
				}

				if len(moves) == 0 {
					fmt.Printf("\x1b[31mNo Legal Moves From %s.\x1b[0m\n", strings.ToLower(args[1]))
					return nil
				}

				fmt.Println(strings.Join(moves, " "))
				return nil
			})
		},
	}
}

func Move() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move game from to",
		Short: "Play a move in a game",
		Args:  cobra.ExactArgs(3),
		Long: heredoc.Doc(`move plays the piece on the from square to the to square
			for the side to move. Squares are named like e2 or e4.

			A pawn reaching its last row is promoted to a queen, or to the
			piece given with --promote (q, r, b or n). If the move
			checkmates the opponent the game ends and both players'
			ratings are updated.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			promotion, _ := cmd.Flags().GetString("promote")

			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				g, err := svc.Move(args[0], args[1], args[2], promotion)
				if err != nil {
					return err
				}

				printGame(g, config)
				return nil
			})
		},
	}

	cmd.Flags().StringP("promote", "p", "", "Piece to promote a pawn to")

	return cmd
}

func Promote() *cobra.Command {
	return &cobra.Command{
		Use:   "promote game square piece",
		Short: "Replace a pawn on its last row with another piece",
		Args:  cobra.ExactArgs(3),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				g, err := svc.Promote(args[0], args[1], args[2])
				if err != nil {
					return err
				}

				printGame(g, config)
				return nil
			})
		},
	}
}

func Resign() *cobra.Command {
	return &cobra.Command{
		Use:   "resign game",
		Short: "Resign a game on behalf of the side to move",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				g, err := svc.Resign(args[0])
				if err != nil {
					return err
				}

				printGame(g, config)
				return nil
			})
		},
	}
}

func Draw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw game",
		Short: "Offer or accept a draw on behalf of the side to move",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`draw offers a draw on behalf of the side to move. If the
			opponent has already offered one, the offer is accepted and the
			game ends drawn. An offer lapses once the opponent moves.

			With --accept the command fails instead of making an offer when
			there is nothing to accept.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			accept, _ := cmd.Flags().GetBool("accept")

			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				claim := svc.OfferDraw
				if accept {
					claim = svc.AcceptDraw
				}

				g, err := claim(args[0])
				if err != nil {
					return err
				}

				printGame(g, config)
				return nil
			})
		},
	}

	cmd.Flags().BoolP("accept", "a", false, "Only accept a standing offer")

	return cmd
}
