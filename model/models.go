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
	"time"

	"github.com/tomoncle/roster/database"
	"github.com/uptrace/bun"
)

// Timestamps are stamped by the ORM on insert and on every update.
type Timestamps struct {
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

func (t *Timestamps) touch(query bun.Query) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	switch query.(type) {
	case *bun.InsertQuery:
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.UpdatedAt = now
	case *bun.UpdateQuery:
		t.UpdatedAt = now
	}
}

// Team is a row of the teams table.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,type:varchar(255),notnull,unique" json:"name"`
	City string `bun:"city,type:varchar(255),notnull" json:"city"`
	Timestamps

	Players []*Player `bun:"rel:has-many,join:id=team_id" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Team)(nil)

func (t *Team) BeforeAppendModel(_ context.Context, query bun.Query) error {
	t.touch(query)
	return nil
}

// Player is a row of the players table. Every column but the keys and
// timestamps is nullable.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID       int64   `bun:"id,pk,autoincrement" json:"id"`
	Name     *string `bun:"name,type:varchar(255)" json:"name"`
	Age      *int    `bun:"age" json:"age"`
	Position *string `bun:"position,type:varchar(50)" json:"position"`
	TeamID   *int64  `bun:"team_id" json:"team_id"`
	Timestamps

	Team *Team `bun:"rel:belongs-to,join:team_id=id" json:"-"`
}

var _ bun.BeforeAppendModelHook = (*Player)(nil)

func (p *Player) BeforeAppendModel(_ context.Context, query bun.Query) error {
	p.touch(query)
	return nil
}

// PlayersTeamForeignKey keeps players.team_id pointing at an existing team.
var PlayersTeamForeignKey = database.ForeignKeyConstraint{
	Table:           "players",
	Column:          "team_id",
	ReferenceTable:  "teams",
	ReferenceColumn: "id",
	OnDelete:        "RESTRICT",
}

// Register adds the models to registry in dependency order.
func Register(registry *database.ModelRegistry) {
	registry.Register(database.NewModelAdapter((*Team)(nil), 10))
	registry.Register(database.NewModelAdapter((*Player)(nil), 20), PlayersTeamForeignKey)
}

func init() {
	Register(database.DefaultRegistry())
}
