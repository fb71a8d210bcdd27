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
	"database/sql"
	"encoding/json"
	"errors"
	"reflect"

	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

const updatedAtColumn = "updated_at"

type baseRepositoryImpl[T any] struct {
	db      *bun.DB
	table   *schema.Table
	name    string
	pk      string
	columns []string
	// columns whose Go type cannot hold a JSON null
	notNull map[string]bool
}

// NewRepository returns a generic repository for T backed by db. T must be a
// Bun model struct.
func NewRepository[T any](db *bun.DB) Repository[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	table := db.Table(typ)

	r := &baseRepositoryImpl[T]{db: db, table: table, name: typ.Name(), pk: "id", notNull: map[string]bool{}}
	if len(table.PKs) > 0 {
		r.pk = table.PKs[0].Name
	}
	for _, f := range table.Fields {
		r.columns = append(r.columns, f.Name)
		if !nullable(f.StructField.Type) {
			r.notNull[f.Name] = true
		}
	}
	return r
}

func (r *baseRepositoryImpl[T]) Name() string { return r.name }

func (r *baseRepositoryImpl[T]) Table() *schema.Table { return r.table }

func (r *baseRepositoryImpl[T]) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

func (r *baseRepositoryImpl[T]) Find(ctx context.Context, id int64) (*T, error) {
	return r.find(ctx, r.db, id)
}

func (r *baseRepositoryImpl[T]) find(ctx context.Context, db bun.IDB, id int64) (*T, error) {
	entity := new(T)
	err := db.NewSelect().
		Model(entity).
		Where("? = ?", bun.Ident(r.pk), id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NotFound("%s %d not found", r.name, id)
	}
	if err != nil {
		return nil, database.Classify(err, r.name, "found")
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) All(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	err := r.db.NewSelect().
		Model(&entities).
		OrderExpr("? ASC", bun.Ident(r.pk)).
		Scan(ctx)
	if err != nil {
		return nil, database.Classify(err, r.name, "listed")
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.Pagination[*T], error) {
	if pageRequest == nil {
		pageRequest = types.NewPageRequest(1, types.DefaultPageSize)
	}
	entities := make([]*T, 0)
	pagination := types.NewDefaultPagination[*T](pageRequest.GetPage(), pageRequest.GetPageSize())

	query := r.db.NewSelect().Model(&entities)
	total, err := query.Count(ctx)
	if err != nil {
		return nil, database.Classify(err, r.name, "counted")
	}
	pagination.Total = total
	if total == 0 {
		return pagination, nil
	}

	if orders := pageRequest.GetOrders(); len(orders) > 0 {
		query = query.Order(orders...)
	}
	err = query.
		OrderExpr("? ASC", bun.Ident(r.pk)).
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Scan(ctx)
	if err != nil {
		return nil, database.Classify(err, r.name, "listed")
	}
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, fields types.JsonObject) (*T, error) {
	entity := new(T)
	if _, err := r.apply(entity, fields); err != nil {
		return nil, err
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(entity).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, database.Classify(err, r.name, "created")
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, id int64, fields types.JsonObject) (*T, error) {
	var entity *T
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := r.find(ctx, tx, id)
		if err != nil {
			return err
		}
		columns, err := r.apply(found, fields)
		if err != nil {
			return err
		}
		if _, ok := r.table.FieldMap[updatedAtColumn]; ok && !contains(columns, updatedAtColumn) {
			columns = append(columns, updatedAtColumn)
		}
		entity = found
		if len(columns) == 0 {
			return nil
		}
		_, err = tx.NewUpdate().Model(found).Column(columns...).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, database.Classify(err, r.name, "updated")
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id int64) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		found, err := r.find(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = tx.NewDelete().Model(found).WherePK().Exec(ctx)
		return err
	})
	return database.Classify(err, r.name, "deleted")
}

// apply copies the fields naming declared non-key columns onto entity and
// returns the applied column names. Columns share their name with the JSON
// field of the model, so encoding/json performs the type conversion.
func (r *baseRepositoryImpl[T]) apply(entity *T, fields types.JsonObject) ([]string, error) {
	var columns []string
	for _, col := range r.columns {
		if col == r.pk || !fields.Has(col) {
			continue
		}
		if fields[col] == nil && r.notNull[col] {
			return nil, types.Validation(col, "attribute '%s' cannot be null", col)
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(fields.Pick(columns...))
	if err != nil {
		return nil, &types.Error{Kind: types.KindValidation, Message: "payload cannot be encoded", Err: err}
	}
	if err := json.Unmarshal(raw, entity); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, types.Validation(typeErr.Field, "attribute '%s' has an invalid value", typeErr.Field)
		}
		return nil, &types.Error{Kind: types.KindValidation, Message: "payload cannot be decoded", Err: err}
	}
	return columns, nil
}

func nullable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
