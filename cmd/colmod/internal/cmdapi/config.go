// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package cmdapi

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// envPrefix is the prefix of the environment variables read by colmod.
const envPrefix = "COLMOD_"

// EnvConfig holds the configuration read from the process environment.
// Values set on the command line take precedence over it.
type EnvConfig struct {
	URL     string `env:"URL"`
	Dialect string `env:"DIALECT"`
	Version string `env:"VERSION"`
	Format  string `env:"FORMAT"`
	Dir     string `env:"DIR"`
	LogJSON bool   `env:"LOG_JSON" envDefault:"false"`
	Debug   bool   `env:"DEBUG" envDefault:"false"`
}

// LoadEnvConfig loads the given dotenv files, if they exist, and parses
// the COLMOD_* environment variables. Variables that are already set in
// the environment are not overridden by the dotenv files.
func LoadEnvConfig(files ...string) (*EnvConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %q: %w", f, err)
		}
	}
	cfg := &EnvConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("config parsing error: %w", err)
	}
	return cfg, nil
}
