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

package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"laptudirm.com/x/referee/pkg/service"
)

var validate = validator.New()

// CreatePlayerRequest is the body of POST /api/players.
type CreatePlayerRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}

// CreateGameRequest is the body of POST /api/games.
type CreateGameRequest struct {
	White string `json:"white" validate:"required"`
	Black string `json:"black" validate:"required,nefield=White"`
	FEN   string `json:"fen"`
}

// MoveRequest is the body of POST /api/games/:id/moves.
type MoveRequest struct {
	From      string `json:"from" validate:"required,len=2"`
	To        string `json:"to" validate:"required,len=2"`
	Promotion string `json:"promotion" validate:"omitempty,oneof=q r b n queen rook bishop knight"`
}

// PromoteRequest is the body of POST /api/games/:id/promote.
type PromoteRequest struct {
	Square string `json:"square" validate:"required,len=2"`
	Piece  string `json:"piece" validate:"required"`
}

// DrawRequest is the optional body of POST /api/games/:id/draw. Without
// Accept the side to move offers a draw, or accepts a standing offer.
type DrawRequest struct {
	Accept bool `json:"accept"`
}

// parse decodes and validates a JSON request body.
func parse(c *fiber.Ctx, body any) error {
	if err := c.BodyParser(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}

	return checkBody(body)
}

// checkBody validates a decoded request body. Failed field rules are a bad
// request; anything else the validator reports is a server error.
func checkBody(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("validating request body: %w", err)
	}

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s failed %s", strings.ToLower(field.Field()), field.Tag()))
	}

	return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+strings.Join(details, "; "))
}

func (h *handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"players": len(h.svc.Players()),
		"games":   len(h.svc.Games(service.GameFilter{Active: true})),
	})
}

func (h *handler) listPlayers(c *fiber.Ctx) error {
	return c.JSON(h.svc.Players())
}

func (h *handler) createPlayer(c *fiber.Ctx) error {
	var req CreatePlayerRequest
	if err := parse(c, &req); err != nil {
		return err
	}

	player, err := h.svc.CreatePlayer(req.Name)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(player)
}

func (h *handler) getPlayer(c *fiber.Ctx) error {
	player, err := h.svc.Player(c.Params("name"))
	if err != nil {
		return err
	}

	return c.JSON(player)
}

func (h *handler) deletePlayer(c *fiber.Ctx) error {
	if err := h.svc.DeletePlayer(c.Params("name")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handler) listGames(c *fiber.Ctx) error {
	games := h.svc.Games(service.GameFilter{
		Player: c.Query("player"),
		Active: c.QueryBool("active"),
	})

	if games == nil {
		games = []service.Game{}
	}

	return c.JSON(games)
}

func (h *handler) createGame(c *fiber.Ctx) error {
	var req CreateGameRequest
	if err := parse(c, &req); err != nil {
		return err
	}

	game, err := h.svc.CreateGame(req.White, req.Black, req.FEN)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(game)
}

func (h *handler) getGame(c *fiber.Ctx) error {
	game, err := h.svc.Game(c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(game)
}

func (h *handler) deleteGame(c *fiber.Ctx) error {
	if err := h.svc.DeleteGame(c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *handler) legalMoves(c *fiber.Ctx) error {
	moves, err := h.svc.LegalMoves(c.Params("id"), c.Params("square"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"square": strings.ToLower(c.Params("square")),
		"moves":  moves,
	})
}

func (h *handler) move(c *fiber.Ctx) error {
	var req MoveRequest
	if err := parse(c, &req); err != nil {
		return err
	}

	game, err := h.svc.Move(c.Params("id"), req.From, req.To, req.Promotion)
	if err != nil {
		return err
	}

	return c.JSON(game)
}

func (h *handler) promote(c *fiber.Ctx) error {
	var req PromoteRequest
	if err := parse(c, &req); err != nil {
		return err
	}

	game, err := h.svc.Promote(c.Params("id"), req.Square, req.Piece)
	if err != nil {
		return err
	}

	return c.JSON(game)
}

func (h *handler) resign(c *fiber.Ctx) error {
	game, err := h.svc.Resign(c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(game)
}

func (h *handler) draw(c *fiber.Ctx) error {
	var req DrawRequest
	if len(c.Body()) > 0 {
		if err := parse(c, &req); err != nil {
			return err
		}
	}

	var (
		game service.Game
		err  error
	)

	if req.Accept {
		game, err = h.svc.AcceptDraw(c.Params("id"))
	} else {
		game, err = h.svc.OfferDraw(c.Params("id"))
	}

	if err != nil {
		return err
	}

	return c.JSON(game)
}
