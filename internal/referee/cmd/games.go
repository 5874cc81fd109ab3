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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	referee "laptudirm.com/x/referee/pkg/common"
	"laptudirm.com/x/referee/pkg/service"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new white black",
		Short: "Start a new game between two players",
		Args:  cobra.ExactArgs(2),
		Long: heredoc.Doc(`new starts a game between the two given players, the
			first of whom plays white. The game starts from the standard
			position unless another one is given with --fen, in the form

			    <rows> <w|b> [plies]

			The id printed for the new game, or any unique prefix of it,
			names the game in the other commands.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			position, _ := cmd.Flags().GetString("fen")

			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				g, err := svc.CreateGame(args[0], args[1], position)
				if err != nil {
					return err
				}

				printGame(g, config)
				return nil
			})
		},
	}

	cmd.Flags().StringP("fen", "f", "", "Position to start the game from")

	return cmd
}

func Games() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List the unfinished games",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			player, _ := cmd.Flags().GetString("player")
			all, _ := cmd.Flags().GetBool("all")

			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				games := svc.Games(service.GameFilter{
					Player: player,
					Active: !all,
				})

				if len(games) == 0 {
					fmt.Println("\x1b[31mNo Games Found.\x1b[0m")
					return nil
				}

				for _, g := range games {
					status := g.ToMove + " to move"
					if g.Ended {
						status = g.Outcome
					}

					fmt.Printf("\x1b[33m%s\x1b[0m %-16s vs %-16s %3d plies  %s\n",
						g.ID[:8], g.White, g.Black, g.Moves, status)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringP("player", "p", "", "Only list the games of this player")
	cmd.Flags().BoolP("all", "a", false, "List finished games too")

	return cmd
}

func Show() *cobra.Command {
	return &cobra.Command{
		Use:   "show game",
		Short: "Show a game's board and state",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				g, err := svc.Game(args[0])
				if err != nil {
					return err
				}

				printGame(g, config)
				return nil
			})
		},
	}
}

func Delete() *cobra.Command {
	return &cobra.Command{
		Use:     "delete game",
		Aliases: []string{"rm"},
		Short:   "Delete a game",
		Args:    cobra.ExactArgs(1),
		Long: heredoc.Doc(`delete removes a game from the records. Rating changes
			from a game which already ended are kept.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				g, err := svc.Game(args[0])
				if err != nil {
					return err
				}

				if err := svc.DeleteGame(g.ID); err != nil {
					return err
				}

				fmt.Printf("\x1b[32mDeleted Game:\x1b[0m %s\n", g.ID)
				return nil
			})
		},
	}
}
