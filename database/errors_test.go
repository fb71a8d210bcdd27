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
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/tomoncle/roster/types"
)

func TestIsSqlError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   bool
		want SQLError
	}{
		{"nil", nil, false, UnknownErr},
		{"no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), true, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true, DuplicateKeyErr},
		{"mysql foreign key", &mysql.MySQLError{Number: 1451}, true, ForeignKeyViolationErr},
		{"mysql not null", &mysql.MySQLError{Number: 1048}, true, NotNullViolationErr},
		{"mysql truncated", &mysql.MySQLError{Number: 1406}, true, DataTruncatedErr},
		{"mysql other", &mysql.MySQLError{Number: 1205}, true, UnknownErr},
		{"pq unique", &pq.Error{Code: "23505"}, true, DuplicateKeyErr},
		{"pq foreign key", &pq.Error{Code: "23503"}, true, ForeignKeyViolationErr},
		{"pq cast", &pq.Error{Code: "22P02"}, true, InvalidTypeCastErr},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: teams.name (2067)"), true, DuplicateKeyErr},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), true, ForeignKeyViolationErr},
		{"sqlite no table", errors.New("SQL logic error: no such table: teams (1)"), true, NoTableErr},
		{"plain", errors.New("connection refused"), false, UnknownErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is, got := IsSqlError(tt.err)
			assert.Equal(t, tt.is, is)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil, "Team", "created"))

	err := Classify(sql.ErrNoRows, "Team", "found")
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = Classify(&mysql.MySQLError{Number: 1062}, "Team", "created")
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.Equal(t, "Team cannot be created: integrity error", err.(*types.Error).Message)

	err = Classify(&pq.Error{Code: "22001"}, "Player", "updated")
	assert.ErrorIs(t, err, types.ErrValidation)

	err = Classify(errors.New("boom"), "Team", "deleted")
	assert.ErrorIs(t, err, types.ErrUnknown)

	typed := types.NotFound("Team 1 not found")
	assert.Same(t, typed, Classify(typed, "Team", "updated"))
}
