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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tomoncle/roster/config"
	"github.com/tomoncle/roster/database"
	_ "github.com/tomoncle/roster/model"
	"github.com/tomoncle/roster/server"
	"github.com/tomoncle/roster/utils"
)

var log = utils.NewLogger("MAIN")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	utils.ConfigureConsoleLogFormat(cfg.LogFormat)
	utils.ConfigureLogLevel(cfg.LogLevel)
	if cfg.Debug && cfg.LogLevel == "info" {
		utils.ConfigureLogLevel("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			log.WithError(err).Warn("failed to close database")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.Database.ConnectionConfig.DBName),
	)

	router := server.NewRouter(server.Deps{
		DB:       db,
		Health:   database.GetDatabaseManager(),
		Registry: registry,
	})

	log.WithField("env", cfg.Env).Info("starting roster")
	if err := server.New(cfg.Port, router).Run(ctx); err != nil {
		log.WithError(err).Error("server error")
		stop()
		_ = database.CloseDB()
		os.Exit(1)
	}
}
