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
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	referee "laptudirm.com/x/referee/pkg/common"
	"laptudirm.com/x/referee/pkg/service"
)

const playHelp = `Commands:
  <from><to>[piece]  play a move, like e2e4 or a7a8n
  moves <square>     list the legal moves from a square
  promote <sq> <p>   promote a pawn standing on its last row
  board              show the board again
  fen                print the current position
  draw               offer or accept a draw
  resign             resign on behalf of the side to move
  help               show this message
  quit               leave without ending the game`

func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play game",
		Short: "Play a game interactively",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`play opens an interactive prompt for the given game, in
			which moves are entered one after another for alternating
			sides. Type help at the prompt for the list of commands.
			Every move is saved as soon as it is played.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				g, err := svc.Game(args[0])
				if err != nil {
					return err
				}

				rl, err := readline.NewEx(&readline.Config{
					Prompt:          prompt(g),
					HistoryFile:     filepath.Join(config.Directory, ".play_history"),
					InterruptPrompt: "^C",
					EOFPrompt:       "quit",
					AutoComplete: readline.NewPrefixCompleter(
						readline.PcItem("moves"),
						readline.PcItem("promote"),
						readline.PcItem("board"),
						readline.PcItem("fen"),
						readline.PcItem("draw"),
						readline.PcItem("resign"),
						readline.PcItem("help"),
						readline.PcItem("quit"),
					),
				})
				if err != nil {
					return err
				}
				defer rl.Close()

				printGame(g, config)
				return playLoop(rl, svc, config, g)
			})
		},
	}
}

func prompt(g service.Game) string {
	if g.Ended {
		return fmt.Sprintf("\x1b[33m%s\x1b[0m> ", g.Outcome)
	}

	player := g.White
	if g.ToMove == "black" {
		player = g.Black
	}

	return fmt.Sprintf("\x1b[34m%s\x1b[0m (%s)> ", player, g.ToMove)
}

func playLoop(rl *readline.Instance, svc *service.Service, config *referee.Config, g service.Game) error {
	for {
		rl.SetPrompt(prompt(g))

		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}

		next := g
		switch fields[0] {
		case "quit", "exit":
			return nil

		case "help":
			fmt.Println(playHelp)
			continue

		case "board":
			printGame(g, config)
			continue

		case "fen":
			fmt.Println(g.FEN)
			continue

		case "moves":
			if len(fields) != 2 {
				fmt.Println("usage: moves <square>")
				continue
			}

			moves, err := svc.LegalMoves(g.ID, fields[1])
			if err != nil {
				fmt.Printf("\x1b[31m%v\x1b[0m\n", err)
				continue
			}

			fmt.Println(strings.Join(moves, " "))
			continue

		case "promote":
			if len(fields) != 3 {
				fmt.Println("usage: promote <square> <piece>")
				continue
			}

			next, err = svc.Promote(g.ID, fields[1], fields[2])

		case "draw":
			next, err = svc.OfferDraw(g.ID)

		case "resign":
			next, err = svc.Resign(g.ID)

		default:
			move := fields[0]
			if len(move) < 4 || len(move) > 5 {
				fmt.Printf("\x1b[31munknown command %q, type help for a list\x1b[0m\n", fields[0])
				continue
			}

			next, err = svc.Move(g.ID, move[:2], move[2:4], move[4:])
		}

		if err != nil {
			fmt.Printf("\x1b[31m%v\x1b[0m\n", err)
			continue
		}

		g = next
		printGame(g, config)
	}
}
