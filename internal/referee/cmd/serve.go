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
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	referee "laptudirm.com/x/referee/pkg/common"
	"laptudirm.com/x/referee/pkg/server"
	"laptudirm.com/x/referee/pkg/service"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the players and games over HTTP",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve starts a JSON HTTP API over the players and games,
			listening on the configured server address unless --addr is
			given. The server stops on an interrupt.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *service.Service, config *referee.Config) error {
				addr := config.Server.Address
				if cmd.Flag("addr").Changed {
					addr, _ = cmd.Flags().GetString("addr")
				}

				app := server.New(svc)

				quit := make(chan os.Signal, 1)
				signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
				go func() {
					<-quit
					logrus.Info("shutting down server")
					_ = app.Shutdown()
				}()

				logrus.Infof("listening on %s", addr)
				return app.Listen(addr)
			})
		},
	}

	cmd.Flags().String("addr", "", "Address to listen on")

	return cmd
}
