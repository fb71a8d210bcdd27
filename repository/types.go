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

package repository

import (
	"context"

	"github.com/tomoncle/roster/types"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines the basic operations for a generic entity type.
// Create and Update only apply fields naming a declared, non-key column.
type CrudRepository[T any] interface {
	Find(ctx context.Context, id int64) (*T, error)

	All(ctx context.Context) ([]*T, error)

	Create(ctx context.Context, fields types.JsonObject) (*T, error)

	Update(ctx context.Context, id int64, fields types.JsonObject) (*T, error)

	Delete(ctx context.Context, id int64) error
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[*T], error)
}

// Repository combines CRUD and pagination and exposes the entity's table
// metadata for serialization and validation.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	Name() string
	Table() *schema.Table
	Columns() []string
}
