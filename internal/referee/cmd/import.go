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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/referee/internal/util"
	referee "laptudirm.com/x/referee/pkg/common"
	"laptudirm.com/x/referee/pkg/service"
)

func Import() *cobra.Command {
	return &cobra.Command{
		Use:   "import white black file",
		Short: "Start a game from every position in a file",
		Args:  cobra.ExactArgs(3),
		Long: heredoc.Doc(`import reads one position per line from the given file
			and starts a game between white and black from each of them.
			Blank lines and lines starting with # are skipped. No game is
			started unless every position in the file is valid.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			positions, err := readPositions(args[2])
			if err != nil {
				return err
			}

			return run(cmd, func(svc *service.Service, _ *referee.Config) error {
				util.StartSpinner(fmt.Sprintf("Importing %d positions", len(positions)))
				games, err := svc.Import(args[0], args[1], positions)
				util.PauseSpinner()

				for _, g := range games {
					fmt.Printf("\x1b[32mStarted Game:\x1b[0m %s %s\n", g.ID[:8], g.FEN)
				}

				return err
			})
		},
	}
}

// readPositions reads the non-blank, non-comment lines of a file.
func readPositions(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var positions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		positions = append(positions, line)
	}

	return positions, scanner.Err()
}
