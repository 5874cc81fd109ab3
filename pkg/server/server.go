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

// Package server exposes a referee service over a JSON HTTP API.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/referee/pkg/board"
	"laptudirm.com/x/referee/pkg/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	svc *service.Service
}

// New creates the fiber app serving svc.
func New(svc *service.Service) *fiber.App {
	h := &handler{svc: svc}

	app := fiber.New(fiber.Config{
		AppName:               "referee",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestLogger)

	app.Get("/health", h.health)

	api := app.Group("/api")

	api.Get("/players", h.listPlayers)
	api.Post("/players", h.createPlayer)
	api.Get("/players/:name", h.getPlayer)
	api.Delete("/players/:name", h.deletePlayer)

	api.Get("/games", h.listGames)
	api.Post("/games", h.createGame)
	api.Get("/games/:id", h.getGame)
	api.Delete("/games/:id", h.deleteGame)
	api.Get("/games/:id/moves/:square", h.legalMoves)
	api.Post("/games/:id/moves", h.move)
	api.Post("/games/:id/promote", h.promote)
	api.Post("/games/:id/resign", h.resign)
	api.Post("/games/:id/draw", h.draw)

	return app
}

// requestLogger logs every request once it has been handled.
func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else if err != nil {
		status = statusOf(err)
	}

	entry := logrus.WithFields(logrus.Fields{
		"method":  c.Method(),
		"path":    c.Path(),
		"status":  status,
		"latency": time.Since(start).Round(time.Microsecond),
	})

	if status >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.Debug("request")
	}

	return err
}

// statusOf maps an error from the service to an HTTP status code.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrPlayerNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, service.ErrPlayerExists),
		errors.Is(err, service.ErrPlayerBusy),
		errors.Is(err, service.ErrAmbiguousGame):
		return fiber.StatusConflict

	case errors.Is(err, board.ErrIllegalMove),
		errors.Is(err, board.ErrIllegalPromotion),
		errors.Is(err, board.ErrMalformedFEN),
		errors.Is(err, service.ErrGameEnded),
		errors.Is(err, service.ErrNoDrawOffer):
		return fiber.StatusUnprocessableEntity

	case errors.Is(err, board.ErrInvalidPosition),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrSamePlayer):
		return fiber.StatusBadRequest
	}

	return fiber.StatusInternalServerError
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := statusOf(err)
	message := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code == fiber.StatusInternalServerError {
		message = "internal server error"
	}

	return c.Status(code).JSON(ErrorResponse{Error: message})
}
