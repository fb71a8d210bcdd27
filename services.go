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

package roster

import (
	"github.com/tomoncle/roster/model"
	"github.com/tomoncle/roster/repository"
	"github.com/uptrace/bun"
)

// TeamRules requires the NOT NULL team columns on create.
func TeamRules() Rules {
	rules := DefaultRules()
	rules.RequiredOnCreate = []string{"name", "city"}
	return rules
}

// PlayerRules requires nothing: every player column is nullable.
func PlayerRules() Rules {
	return DefaultRules()
}

// NewTeamService wires the team repository and rules over db.
func NewTeamService(db *bun.DB) Service[model.Team] {
	return NewService(repository.NewRepository[model.Team](db), TeamRules())
}

// NewPlayerService wires the player repository and rules over db.
func NewPlayerService(db *bun.DB) Service[model.Player] {
	return NewService(repository.NewRepository[model.Player](db), PlayerRules())
}
