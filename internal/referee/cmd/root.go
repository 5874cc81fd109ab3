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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"laptudirm.com/x/referee/pkg/board"
	referee "laptudirm.com/x/referee/pkg/common"
	"laptudirm.com/x/referee/pkg/service"
	"laptudirm.com/x/referee/pkg/store"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "referee",
		Short: "Referee chess games between registered players",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Referee's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().StringP("data-dir", "d", referee.Directory, "Directory holding the configuration and records")
	root.PersistentFlags().StringP("store", "s", "", "Storage backend to use (yaml or sqlite)")
	root.PersistentFlags().String("theme", "", "Board colour theme (off, brown, green or gray)")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Players())
	root.AddCommand(New())
	root.AddCommand(Games())
	root.AddCommand(Show())
	root.AddCommand(Moves())
	root.AddCommand(Move())
	root.AddCommand(Promote())
	root.AddCommand(Resign())
	root.AddCommand(Draw())
	root.AddCommand(Delete())
	root.AddCommand(Play())
	root.AddCommand(Import())
	root.AddCommand(Serve())

	return root
}

// open loads the configuration selected by the global flags and opens the
// service on top of the configured store. The caller closes the service.
func open(cmd *cobra.Command) (*service.Service, *referee.Config, error) {
	dir, _ := cmd.Flags().GetString("data-dir")

	config, err := referee.LoadConfig(dir)
	if err != nil {
		return nil, nil, err
	}

	if cmd.Flag("store").Changed {
		config.Store, _ = cmd.Flags().GetString("store")
	}

	if cmd.Flag("theme").Changed {
		config.Theme, _ = cmd.Flags().GetString("theme")
	}

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"dir":   dir,
		"store": config.Store,
	}).Trace("opening store")

	s, err := store.Open(config.Store, dir)
	if err != nil {
		return nil, nil, err
	}

	svc, err := service.New(s, service.Options{
		InitialRating: config.Rating.Initial,
		KFactor:       config.Rating.KFactor,
	})
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}

	return svc, config, nil
}

// run opens the service, calls fn with it, and closes it again.
func run(cmd *cobra.Command, fn func(*service.Service, *referee.Config) error) error {
	svc, config, err := open(cmd)
	if err != nil {
		return err
	}

	defer func() {
		if err := svc.Close(); err != nil {
			logrus.Warnf("closing store: %v", err)
		}
	}()

	return fn(svc, config)
}

// theme returns the configured board theme if stdout is a terminal, and no
// colouring otherwise.
func theme(config *referee.Config) board.Theme {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return board.ThemeOff
	}

	return board.Theme(config.Theme)
}

// printGame prints a game's board along with its state.
func printGame(g service.Game, config *referee.Config) {
	fmt.Println(g.Board().Render(theme(config)))
	fmt.Printf("\x1b[34mGame\x1b[0m:    %s (%s vs %s)\n", g.ID, g.White, g.Black)
	fmt.Printf("\x1b[34mFEN\x1b[0m:     %s\n", g.FEN)

	switch {
	case g.Ended:
		fmt.Printf("\x1b[34mResult\x1b[0m:  %s\n", g.Outcome)
	case g.Check:
		fmt.Printf("\x1b[34mTo Move\x1b[0m: %s \x1b[31m(check)\x1b[0m\n", g.ToMove)
	default:
		fmt.Printf("\x1b[34mTo Move\x1b[0m: %s\n", g.ToMove)
	}

	if g.DrawOffer != "" && !g.Ended {
		fmt.Printf("\x1b[33m%s offers a draw\x1b[0m\n", g.DrawOffer)
	}
}
