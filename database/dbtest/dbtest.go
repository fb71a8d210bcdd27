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

// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/model"
	"github.com/uptrace/bun"
)

// Open returns a manager over a fresh in-memory database holding the teams
// and players tables. The connection is closed when the test ends.
func Open(t testing.TB) database.AbstractDatabaseManager {
	t.Helper()

	registry := database.NewModelRegistry()
	model.Register(registry)

	cfg := database.DefaultConfig()
	cfg.ConnectionConfig.Type = "sqlite"
	cfg.ConnectionConfig.DBName = ":memory:"

	manager := database.NewDatabaseManager(cfg, registry)
	ctx := context.Background()
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })
	require.NoError(t, manager.RunMigrations(ctx))
	return manager
}

// OpenDB is Open for callers that only need the Bun handle.
func OpenDB(t testing.TB) *bun.DB {
	return Open(t).GetDB()
}
