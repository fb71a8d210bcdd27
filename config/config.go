/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads the application configuration from the environment,
// an optional .env file and per-environment profiles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/tomoncle/roster/database"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvLocal       = "local"
)

// Env holds the settings read from environment variables.
type Env struct {
	AppEnv        string `envconfig:"APP_ENV"`
	FlaskEnv      string `envconfig:"FLASK_ENV"`
	DBUser        string `envconfig:"DB_USER"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	Port          int    `envconfig:"PORT" default:"8080"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"text"`
	ConfigDir     string `envconfig:"CONFIG_DIR" default:"configs"`
	SeedOnStartup bool   `envconfig:"SEED_ON_STARTUP" default:"false"`
}

// Profile is the per-environment part of the configuration. Files named
// <CONFIG_DIR>/<env>.yaml override the built-in profile of the same name.
type Profile struct {
	Debug    bool            `yaml:"debug"`
	Database database.Config `yaml:"database"`
}

// Config is the resolved application configuration.
type Config struct {
	Env       string
	Port      int
	LogLevel  string
	LogFormat string
	Debug     bool
	Database  *database.Config
}

// Load resolves the configuration: .env, environment variables, the
// selected profile and finally the database credentials.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return Resolve(env)
}

// Resolve builds a Config from already-read environment settings.
func Resolve(env Env) (*Config, error) {
	name := strings.ToLower(strings.TrimSpace(env.AppEnv))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(env.FlaskEnv))
	}
	if name == "" {
		name = EnvDevelopment
	}

	profile, err := loadProfile(name, env.ConfigDir)
	if err != nil {
		return nil, err
	}

	db := profile.Database
	if env.DBUser != "" {
		db.ConnectionConfig.Username = env.DBUser
	}
	if env.DBPassword != "" {
		db.ConnectionConfig.Password = env.DBPassword
	}
	if db.DataInitConfig.Environment == "" {
		db.DataInitConfig.Environment = name
	}
	if db.DataInitConfig.Filepath == "" {
		db.DataInitConfig.Filepath = filepath.Join(env.ConfigDir, "sql")
	}
	if env.SeedOnStartup {
		db.DataInitConfig.AutoInitOnMigration = true
	}

	return &Config{
		Env:       name,
		Port:      env.Port,
		LogLevel:  env.LogLevel,
		LogFormat: env.LogFormat,
		Debug:     profile.Debug,
		Database:  &db,
	}, nil
}

func loadProfile(name, dir string) (*Profile, error) {
	profile, builtin := builtinProfile(name)

	if dir == "" {
		if !builtin {
			return nil, fmt.Errorf("unknown environment %q", name)
		}
		return profile, nil
	}

	path := filepath.Join(dir, name+".yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if !builtin {
			return nil, fmt.Errorf("unknown environment %q: no built-in profile and no %s", name, path)
		}
		return profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return profile, nil
}

// builtinProfile returns the profile for name, or a default-filled profile
// and false when name is not built in.
func builtinProfile(name string) (*Profile, bool) {
	db := *database.DefaultConfig()
	db.DataInitConfig.Filepath = ""

	switch name {
	case EnvDevelopment:
		db.ConnectionConfig.Type = "mysql"
		db.ConnectionConfig.Host = "db-dev"
		db.ConnectionConfig.Port = 3306
		db.ConnectionConfig.DBName = "flask-db"
		return &Profile{Debug: true, Database: db}, true
	case EnvTest:
		db.ConnectionConfig.Type = "mysql"
		db.ConnectionConfig.Host = "db-test"
		db.ConnectionConfig.Port = 3306
		db.ConnectionConfig.DBName = "flask-db"
		return &Profile{Database: db}, true
	case EnvLocal:
		db.ConnectionConfig.Type = "sqlite"
		db.ConnectionConfig.DBName = "roster"
		return &Profile{Debug: true, Database: db}, true
	}
	return &Profile{Database: db}, false
}
