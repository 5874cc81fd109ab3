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

package referee

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var BaseConfigFile []byte

// ConfigFile is the name of the configuration file inside a data directory.
const ConfigFile = "config.yaml"

// Config is the user's configuration, read from the data directory.
type Config struct {
	Store string `yaml:"store" validate:"oneof=yaml sqlite"`
	Theme string `yaml:"theme" validate:"oneof=off brown green gray"`

	Rating RatingConfig `yaml:"rating"`
	Server ServerConfig `yaml:"server"`

	// Directory is the data directory the configuration was loaded from.
	Directory string `yaml:"-"`
}

type RatingConfig struct {
	Initial int     `yaml:"initial" validate:"gte=0,lte=4000"`
	KFactor float64 `yaml:"k-factor" validate:"gt=0,lte=100"`
}

type ServerConfig struct {
	Address string `yaml:"address" validate:"required,hostname_port"`
}

var validate = validator.New()

// LoadConfig reads the configuration in the given data directory, creating
// the directory and a default configuration file first if they are missing.
func LoadConfig(dir string) (*Config, error) {
	if err := TryMkdir(dir); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFile)
	if err := TryCreate(path, BaseConfigFile); err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// missing keys keep their defaults
	var config Config
	if err := yaml.Unmarshal(BaseConfigFile, &config); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	config.Directory = dir
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &config, nil
}

// Validate checks every field of the configuration for a sensible value.
func (config *Config) Validate() error {
	return validate.Struct(config)
}
