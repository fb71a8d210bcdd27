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
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func teamsFK() ForeignKeyConstraint {
	return ForeignKeyConstraint{
		Table:           "players",
		Column:          "team_id",
		ReferenceTable:  "teams",
		ReferenceColumn: "id",
		OnDelete:        "restrict",
	}
}

func TestForeignKeyConstraint_GenerateSQL(t *testing.T) {
	fk := teamsFK()
	assert.Equal(t, "fk_players_team_id", fk.GenerateConstraintName())
	assert.Equal(t,
		"ALTER TABLE players ADD CONSTRAINT fk_players_team_id FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE RESTRICT",
		fk.GenerateSQL())

	fk.ConstraintName = "players_team"
	fk.OnUpdate = "cascade"
	assert.Equal(t,
		"ALTER TABLE players ADD CONSTRAINT players_team FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE RESTRICT ON UPDATE CASCADE",
		fk.GenerateSQL())
}

func TestForeignKeyConstraint_Validate(t *testing.T) {
	valid := teamsFK()
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(fk *ForeignKeyConstraint)
	}{
		{"missing table", func(fk *ForeignKeyConstraint) { fk.Table = "" }},
		{"missing column", func(fk *ForeignKeyConstraint) { fk.Column = "" }},
		{"missing reference table", func(fk *ForeignKeyConstraint) { fk.ReferenceTable = "" }},
		{"missing reference column", func(fk *ForeignKeyConstraint) { fk.ReferenceColumn = "" }},
		{"bad action", func(fk *ForeignKeyConstraint) { fk.OnDelete = "EXPLODE" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fk := teamsFK()
			tt.mutate(&fk)
			assert.Error(t, fk.Validate())
		})
	}
}

func TestLoadForeignKeyManager(t *testing.T) {
	defaults := []ForeignKeyConstraint{teamsFK()}

	fkm, err := LoadForeignKeyManager(nil, "", defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, fkm.Constraints())

	fkm, err = LoadForeignKeyManager(nil, filepath.Join(t.TempDir(), "missing.yaml"), defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, fkm.Constraints())

	path := filepath.Join(t.TempDir(), "fk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
foreign_keys:
  - table: players
    column: team_id
    reference_table: teams
    reference_column: id
    on_delete: CASCADE
  - table: players
    column: coach_id
    reference_table: coaches
`), 0o644))

	fkm, err = LoadForeignKeyManager(nil, path, defaults)
	require.NoError(t, err)
	require.Len(t, fkm.Constraints(), 2)
	assert.Equal(t, "CASCADE", fkm.Constraints()[0].OnDelete)
	assert.Len(t, fkm.ValidateConstraints(), 1)
}

func TestForeignKeyManager_AddAllForeignKeys(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqlDB, pgdialect.New())
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(
		`ALTER TABLE "players" ADD CONSTRAINT "fk_players_team_id" FOREIGN KEY ("team_id") REFERENCES "teams" ("id") ON DELETE RESTRICT`,
	)).WillReturnResult(sqlmock.NewResult(0, 0))

	fkm := NewForeignKeyManager(nil, []ForeignKeyConstraint{teamsFK()})
	require.NoError(t, fkm.AddAllForeignKeys(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
