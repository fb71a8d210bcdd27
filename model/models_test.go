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

package model

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster/database"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newBunDB(t *testing.T) *bun.DB {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqlDB, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTimestamps_Hook(t *testing.T) {
	ctx := context.Background()
	db := newBunDB(t)

	team := &Team{Name: "Lakers", City: "Los Angeles"}
	require.NoError(t, team.BeforeAppendModel(ctx, db.NewInsert()))
	assert.False(t, team.CreatedAt.IsZero())
	assert.Equal(t, team.CreatedAt, team.UpdatedAt)
	assert.Equal(t, time.UTC, team.CreatedAt.Location())

	created := team.CreatedAt
	time.Sleep(time.Millisecond)
	require.NoError(t, team.BeforeAppendModel(ctx, db.NewUpdate()))
	assert.Equal(t, created, team.CreatedAt)
	assert.True(t, team.UpdatedAt.After(created))

	updated := team.UpdatedAt
	require.NoError(t, team.BeforeAppendModel(ctx, db.NewSelect()))
	assert.Equal(t, updated, team.UpdatedAt)
}

func TestTimestamps_InsertKeepsCreatedAt(t *testing.T) {
	db := newBunDB(t)
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	player := &Player{Timestamps: Timestamps{CreatedAt: past}}
	require.NoError(t, player.BeforeAppendModel(context.Background(), db.NewInsert()))
	assert.Equal(t, past, player.CreatedAt)
	assert.True(t, player.UpdatedAt.After(past))
}

func TestRegister(t *testing.T) {
	registry := database.NewModelRegistry()
	Register(registry)

	instances := registry.Instances()
	require.Len(t, instances, 2)
	assert.IsType(t, (*Team)(nil), instances[0])
	assert.IsType(t, (*Player)(nil), instances[1])
	assert.Equal(t, []database.ForeignKeyConstraint{PlayersTeamForeignKey}, registry.ForeignKeys())
	assert.NoError(t, PlayersTeamForeignKey.Validate())
}
