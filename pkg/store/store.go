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

// Package store persists players and games, either as YAML files or in a
// SQLite database.
package store

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"laptudirm.com/x/referee/pkg/formats/fen"
)

// Store is a persistent collection of players and games. Saving a record
// whose key already exists replaces the stored record.
type Store interface {
	Players() ([]PlayerRecord, error)
	SavePlayer(PlayerRecord) error
	DeletePlayer(name string) error

	Games() ([]GameRecord, error)
	SaveGame(GameRecord) error
	DeleteGame(id string) error

	Close() error
}

// PlayerRecord is a stored player, keyed by name.
type PlayerRecord struct {
	Name   string `yaml:"-" db:"name" validate:"handle"`
	Rating int    `yaml:"rating" db:"rating" validate:"gte=0"`

	Wins   int `yaml:"wins" db:"wins" validate:"gte=0"`
	Losses int `yaml:"losses" db:"losses" validate:"gte=0"`
	Draws  int `yaml:"draws" db:"draws" validate:"gte=0"`

	Created time.Time `yaml:"created" db:"created_at"`
}

// GameRecord is a stored game, keyed by id. FEN holds the current position
// and History the moves played from the starting position, in order.
type GameRecord struct {
	ID    string `yaml:"-" db:"game_id" validate:"required"`
	White string `yaml:"white" db:"white" validate:"handle"`
	Black string `yaml:"black" db:"black" validate:"handle,nefield=White"`

	Start   string   `yaml:"start" db:"start_fen" validate:"position"`
	FEN     string   `yaml:"fen" db:"fen" validate:"position"`
	History []string `yaml:"history,omitempty" validate:"dive,min=4,max=5"`

	Ended     bool   `yaml:"ended" db:"ended"`
	Outcome   string `yaml:"outcome" db:"outcome" validate:"oneof=* 1-0 0-1 1/2-1/2"`
	DrawOffer string `yaml:"draw-offer,omitempty" db:"draw_offer" validate:"omitempty,oneof=w b"`

	Created time.Time `yaml:"created" db:"created_at"`
	Updated time.Time `yaml:"updated" db:"updated_at"`
}

// Kinds of Store which can be opened.
const (
	KindYAML   = "yaml"
	KindSQLite = "sqlite"
)

// Open opens the store of the given kind kept in the given directory.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case KindYAML:
		return NewYAMLStore(dir)
	case KindSQLite:
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("store: unknown kind %q", kind)
	}
}

var handleRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// ValidHandle reports whether name can be used as a player's name.
func ValidHandle(name string) bool {
	return handleRegexp.MatchString(name)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return ValidHandle(fl.Field().String())
	})

	_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		_, _, _, err := fen.Decode(fl.Field().String())
		return err == nil
	})

	return v
}

// Validate checks a record before it is written.
func Validate(record any) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("store: invalid record: %w", err)
	}

	return nil
}
