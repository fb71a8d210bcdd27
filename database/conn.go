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

package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

var globalManager AbstractDatabaseManager

// GetDB returns the global Bun database instance.
func GetDB() *bun.DB {
	if globalManager == nil {
		return nil
	}
	return globalManager.GetDB()
}

// GetDatabaseManager returns the global database manager.
func GetDatabaseManager() AbstractDatabaseManager {
	return globalManager
}

// InitDB connects the global database for the models of the default
// registry and runs migrations when configured to.
func InitDB(ctx context.Context, cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	if !isSupportedType(cfg.ConnectionConfig.Type) {
		return nil, fmt.Errorf("unsupported database type: %s, supported types: %v", cfg.ConnectionConfig.Type, SupportedTypes)
	}

	manager := NewDatabaseManager(cfg, nil)
	if err := manager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.DataMigrateConfig.EnableMigrateOnStartup {
		if err := manager.RunMigrations(ctx); err != nil {
			_ = manager.Disconnect()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	globalManager = manager
	GetLogger().Info("Database initialization completed!")
	return manager.GetDB(), nil
}

func isSupportedType(t string) bool {
	switch t {
	case "mysql", "postgres", "postgresql", "sqlite", "sqlite3":
		return true
	}
	return false
}

// CloseDB closes the global database connection.
func CloseDB() error {
	if globalManager == nil {
		return nil
	}
	return globalManager.Disconnect()
}

// GetHealthStatus returns the current global database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	if globalManager == nil {
		return &HealthStatus{LastError: "Database not initialized"}
	}
	return globalManager.HealthCheck(ctx)
}

// InitData seeds the global database from the configured SQL files.
func InitData(ctx context.Context) error {
	if globalManager == nil {
		return fmt.Errorf("database not initialized")
	}
	return globalManager.InitData(ctx)
}
