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

func Players() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Manage the registered players",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`players manages the players known to referee. Every
			player has a unique name made of letters, digits, dashes and
			underscores, and an Elo rating which is updated whenever one
			of their games ends.`),
	}

	cmd.AddCommand(addPlayer())
	cmd.AddCommand(listPlayers())
	cmd.AddCommand(showPlayer())
	cmd.AddCommand(removePlayer())

	return cmd
}

func addPlayer() *cobra.Command {
	return &cobra.Command{
		Use:   "add name...",
		Short: "Register new players",
		Args:  cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				for _, name := range args {
					player, err := svc.CreatePlayer(name)
					if err != nil {
						return err
					}

					fmt.Printf("\x1b[32mRegistered Player:\x1b[0m %s (%d)\n", player.Name, player.Rating)
				}

				return nil
			})
		},
	}
}

func listPlayers() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the registered players and their ratings",
		Args:    cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				players := svc.Players()
				if len(players) == 0 {
					fmt.Println("\x1b[31mNo Players Registered.\x1b[0m")
					return nil
				}

				fmt.Println("\x1b[32mRegistered Players\x1b[0m:")
				fmt.Println()
				for _, p := range players {
					fmt.Printf("- %-32s %4d  +%d =%d -%d\n", p.Name, p.Rating, p.Wins, p.Draws, p.Losses)
				}

				return nil
			})
		},
	}
}

func showPlayer() *cobra.Command {
	return &cobra.Command{
		Use:   "show name",
		Short: "Show a player's rating and record",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				p, err := svc.Player(args[0])
				if err != nil {
					return err
				}

				fmt.Printf("\x1b[34mPlayer\x1b[0m:  %s\n", p.Name)
				fmt.Printf("\x1b[34mRating\x1b[0m:  %d\n", p.Rating)
				fmt.Printf("\x1b[34mRecord\x1b[0m:  %d games, +%d =%d -%d\n", p.Games(), p.Wins, p.Draws, p.Losses)

				if p.Games() > 0 {
					lower, mu, upper := p.Performance()
					fmt.Printf("\x1b[34mPerf\x1b[0m:    %+.1f [%+.1f, %+.1f]\n", mu, lower, upper)
				}

				fmt.Printf("\x1b[34mJoined\x1b[0m:  %s\n", p.Created.Format("2006-01-02 15:04"))

				games := svc.Games(service.GameFilter{Player: p.Name, Active: true})
				if len(games) > 0 {
					fmt.Printf("\x1b[34mPlaying\x1b[0m: %d games\n", len(games))
				}

				return nil
			})
		},
	}
}

func removePlayer() *cobra.Command {
	return &cobra.Command{
		Use:     "remove name",
		Aliases: []string{"rm"},
		Short:   "Remove a player who has no unfinished games",
		Args:    cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				if err := svc.DeletePlayer(args[0]); err != nil {
					return err
				}

				fmt.Printf("\x1b[32mRemoved Player:\x1b[0m %s\n", args[0])
				return nil
			})
		},
	}
}
