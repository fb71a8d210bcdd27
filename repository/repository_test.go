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

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/roster/database/dbtest"
	"github.com/tomoncle/roster/model"
	"github.com/tomoncle/roster/repository"
	"github.com/tomoncle/roster/types"
)

func newRepos(t *testing.T) (repository.Repository[model.Team], repository.Repository[model.Player]) {
	db := dbtest.OpenDB(t)
	return repository.NewRepository[model.Team](db), repository.NewRepository[model.Player](db)
}

func TestRepository_Metadata(t *testing.T) {
	teams, players := newRepos(t)

	assert.Equal(t, "Team", teams.Name())
	assert.Equal(t, "teams", teams.Table().Name)
	assert.Equal(t, []string{"id", "name", "city", "created_at", "updated_at"}, teams.Columns())
	assert.Equal(t, []string{"id", "name", "age", "position", "team_id", "created_at", "updated_at"}, players.Columns())
}

func TestRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	teams, _ := newRepos(t)

	team, err := teams.Create(ctx, types.JsonObject{"name": "Lakers", "city": "Los Angeles", "unknown": 1})
	require.NoError(t, err)
	assert.NotZero(t, team.ID)
	assert.Equal(t, "Lakers", team.Name)
	assert.False(t, team.CreatedAt.IsZero())
	assert.Equal(t, team.CreatedAt, team.UpdatedAt)

	found, err := teams.Find(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, team.ID, found.ID)
	assert.Equal(t, "Los Angeles", found.City)
	assert.True(t, team.CreatedAt.Equal(found.CreatedAt))

	_, err = teams.Find(ctx, team.ID+1)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRepository_CreateIgnoresIdentifier(t *testing.T) {
	ctx := context.Background()
	teams, _ := newRepos(t)

	team, err := teams.Create(ctx, types.JsonObject{"id": 99, "name": "Bulls", "city": "Chicago"})
	require.NoError(t, err)
	assert.NotEqual(t, int64(99), team.ID)
}

func TestRepository_CreateConflict(t *testing.T) {
	ctx := context.Background()
	teams, players := newRepos(t)

	_, err := teams.Create(ctx, types.JsonObject{"name": "Lakers", "city": "Los Angeles"})
	require.NoError(t, err)
	_, err = teams.Create(ctx, types.JsonObject{"name": "Lakers", "city": "Minneapolis"})
	assert.ErrorIs(t, err, types.ErrConflict)

	_, err = players.Create(ctx, types.JsonObject{"name": "Ghost", "team_id": 404})
	assert.ErrorIs(t, err, types.ErrConflict)
}

func TestRepository_CreateInvalidType(t *testing.T) {
	_, players := newRepos(t)

	_, err := players.Create(context.Background(), types.JsonObject{"name": "Kobe", "age": "twenty"})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "age", err.(*types.Error).Field)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()
	teams, players := newRepos(t)

	team, err := teams.Create(ctx, types.JsonObject{"name": "Lakers", "city": "Los Angeles"})
	require.NoError(t, err)
	player, err := players.Create(ctx, types.JsonObject{"name": "Kobe", "age": 20})
	require.NoError(t, err)
	assert.Nil(t, player.TeamID)

	time.Sleep(2 * time.Millisecond)
	updated, err := players.Update(ctx, player.ID, types.JsonObject{"team_id": team.ID, "position": "Guard"})
	require.NoError(t, err)
	require.NotNil(t, updated.TeamID)
	assert.Equal(t, team.ID, *updated.TeamID)
	assert.Equal(t, "Guard", *updated.Position)
	assert.Equal(t, "Kobe", *updated.Name)
	assert.True(t, updated.UpdatedAt.After(player.UpdatedAt))

	found, err := players.Find(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, *found.Age)
	assert.Equal(t, "Guard", *found.Position)
	assert.True(t, found.CreatedAt.Equal(player.CreatedAt))

	cleared, err := players.Update(ctx, player.ID, types.JsonObject{"position": nil})
	require.NoError(t, err)
	assert.Nil(t, cleared.Position)
}

func TestRepository_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	teams, _ := newRepos(t)

	_, err := teams.Update(ctx, 1, types.JsonObject{"name": "Nowhere"})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = teams.Create(ctx, types.JsonObject{"name": "Lakers", "city": "Los Angeles"})
	require.NoError(t, err)
	celtics, err := teams.Create(ctx, types.JsonObject{"name": "Celtics", "city": "Boston"})
	require.NoError(t, err)

	_, err = teams.Update(ctx, celtics.ID, types.JsonObject{"name": "Lakers"})
	assert.ErrorIs(t, err, types.ErrConflict)

	found, err := teams.Find(ctx, celtics.ID)
	require.NoError(t, err)
	assert.Equal(t, "Celtics", found.Name)

	_, err = teams.Update(ctx, celtics.ID, types.JsonObject{"name": nil, "city": "Worcester"})
	require.ErrorIs(t, err, types.ErrValidation)
	var e *types.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "name", e.Field)
	assert.Equal(t, "attribute 'name' cannot be null", e.Message)

	found, err = teams.Find(ctx, celtics.ID)
	require.NoError(t, err)
	assert.Equal(t, "Celtics", found.Name)
	assert.Equal(t, "Boston", found.City)
}

func TestRepository_CreateNullNotNullable(t *testing.T) {
	teams, players := newRepos(t)

	_, err := teams.Create(context.Background(), types.JsonObject{"name": "Lakers", "city": nil})
	var e *types.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, types.KindValidation, e.Kind)
	assert.Equal(t, "city", e.Field)

	player, err := players.Create(context.Background(), types.JsonObject{"name": "Kobe", "age": nil})
	require.NoError(t, err)
	assert.Nil(t, player.Age)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	teams, players := newRepos(t)

	team, err := teams.Create(ctx, types.JsonObject{"name": "Lakers", "city": "Los Angeles"})
	require.NoError(t, err)
	player, err := players.Create(ctx, types.JsonObject{"name": "Kobe", "team_id": team.ID})
	require.NoError(t, err)

	err = teams.Delete(ctx, team.ID)
	assert.ErrorIs(t, err, types.ErrConflict)

	require.NoError(t, players.Delete(ctx, player.ID))
	_, err = players.Find(ctx, player.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, players.Delete(ctx, player.ID), types.ErrNotFound)

	require.NoError(t, teams.Delete(ctx, team.ID))
}

func TestRepository_AllAndPage(t *testing.T) {
	ctx := context.Background()
	teams, _ := newRepos(t)

	all, err := teams.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	names := []string{"Lakers", "Celtics", "Bulls", "Heat", "Spurs"}
	for _, name := range names {
		_, err := teams.Create(ctx, types.JsonObject{"name": name, "city": "Somewhere"})
		require.NoError(t, err)
	}

	all, err = teams.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, team := range all {
		assert.Equal(t, names[i], team.Name)
	}

	page, err := teams.Page(ctx, types.NewPageRequest(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Bulls", page.Items[0].Name)
	assert.Equal(t, "Heat", page.Items[1].Name)

	last, err := teams.Page(ctx, types.NewPageRequest(3, 2))
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "Spurs", last.Items[0].Name)

	beyond, err := teams.Page(ctx, types.NewPageRequest(9, 2))
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 5, beyond.Total)
}
