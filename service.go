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
	"context"

	"github.com/tomoncle/roster/repository"
	"github.com/tomoncle/roster/serializer"
	"github.com/tomoncle/roster/types"
)

// DeletedMessage is the body returned after a successful delete.
const DeletedMessage = "Entity deleted successfully"

// DefaultIgnored lists the columns a payload may never set.
var DefaultIgnored = []string{"id", "slug", "created_at", "updated_at"}

// Rules holds the per-operation column lists used to validate payloads.
type Rules struct {
	RequiredOnCreate   []string
	RequiredOnRetrieve []string
	RequiredOnUpdate   []string
	RequiredOnDelete   []string
	IgnoreOnCreate     []string
	IgnoreOnUpdate     []string
}

// DefaultRules requires nothing and ignores DefaultIgnored on writes.
func DefaultRules() Rules {
	return Rules{
		IgnoreOnCreate: append([]string(nil), DefaultIgnored...),
		IgnoreOnUpdate: append([]string(nil), DefaultIgnored...),
	}
}

type Service[T any] interface {
	// Create validates payload and inserts a new entity.
	Create(ctx context.Context, payload types.JsonObject) (types.JsonObject, error)

	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id int64, args types.JsonObject) (types.JsonObject, error)

	// All returns all entities in store order.
	All(ctx context.Context, args types.JsonObject) (types.JsonArray, error)

	// Page returns a paginated list of entities.
	Page(ctx context.Context, args types.JsonObject, page *types.PageRequest) (*types.Pagination[types.JsonObject], error)

	// Update validates payload and modifies an existing entity.
	Update(ctx context.Context, id int64, payload types.JsonObject) (types.JsonObject, error)

	// Delete removes an entity by its identifier.
	Delete(ctx context.Context, id int64, args types.JsonObject) (types.JsonObject, error)

	// Repository returns the underlying repository.
	Repository() repository.Repository[T]
}

type serviceImpl[T any] struct {
	repo  repository.Repository[T]
	rules Rules
}

// NewService creates a service for T validated by rules.
func NewService[T any](repo repository.Repository[T], rules Rules) Service[T] {
	return &serviceImpl[T]{repo: repo, rules: rules}
}

func (s *serviceImpl[T]) Repository() repository.Repository[T] { return s.repo }

func (s *serviceImpl[T]) Create(ctx context.Context, payload types.JsonObject) (types.JsonObject, error) {
	args, err := s.validate(payload, s.rules.RequiredOnCreate, s.rules.IgnoreOnCreate)
	if err != nil {
		return nil, err
	}
	entity, err := s.repo.Create(ctx, args)
	if err != nil {
		return nil, err
	}
	return s.serialize(entity)
}

func (s *serviceImpl[T]) Get(ctx context.Context, id int64, args types.JsonObject) (types.JsonObject, error) {
	if _, err := s.validate(args, s.rules.RequiredOnRetrieve, nil); err != nil {
		return nil, err
	}
	entity, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.serialize(entity)
}

func (s *serviceImpl[T]) All(ctx context.Context, args types.JsonObject) (types.JsonArray, error) {
	if _, err := s.validate(args, s.rules.RequiredOnRetrieve, nil); err != nil {
		return nil, err
	}
	entities, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.serializeAll(entities)
}

func (s *serviceImpl[T]) Page(ctx context.Context, args types.JsonObject, page *types.PageRequest) (*types.Pagination[types.JsonObject], error) {
	if _, err := s.validate(args, s.rules.RequiredOnRetrieve, nil); err != nil {
		return nil, err
	}
	result, err := s.repo.Page(ctx, page)
	if err != nil {
		return nil, err
	}
	items, err := s.serializeAll(result.Items)
	if err != nil {
		return nil, err
	}
	pagination := types.NewDefaultPagination[types.JsonObject](result.Page, result.PageSize)
	pagination.Total = result.Total
	pagination.Items = items
	return pagination, nil
}

func (s *serviceImpl[T]) Update(ctx context.Context, id int64, payload types.JsonObject) (types.JsonObject, error) {
	args, err := s.validate(payload, s.rules.RequiredOnUpdate, s.rules.IgnoreOnUpdate)
	if err != nil {
		return nil, err
	}
	entity, err := s.repo.Update(ctx, id, args)
	if err != nil {
		return nil, err
	}
	return s.serialize(entity)
}

func (s *serviceImpl[T]) Delete(ctx context.Context, id int64, args types.JsonObject) (types.JsonObject, error) {
	if _, err := s.validate(args, s.rules.RequiredOnDelete, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return types.JsonObject{"message": DeletedMessage}, nil
}

// validate checks payload against the declared columns of T. Required
// columns must be present and non-blank, ignored columns are stripped and
// keys that are not columns are dropped.
func (s *serviceImpl[T]) validate(payload types.JsonObject, required, ignored []string) (types.JsonObject, error) {
	args := make(types.JsonObject)
	for _, column := range s.repo.Columns() {
		switch {
		case contains(required, column):
			if !payload.Has(column) {
				return nil, types.Validation(column, "attribute '%s' is required", column)
			}
			if payload.IsBlank(column) {
				return nil, types.Validation(column, "attribute '%s' cannot be blank", column)
			}
			args[column] = payload[column]
		case contains(ignored, column):
		case payload.Has(column):
			args[column] = payload[column]
		}
	}
	return args, nil
}

func (s *serviceImpl[T]) serialize(entity *T) (types.JsonObject, error) {
	return serializer.Entity(s.repo.Table(), entity)
}

func (s *serviceImpl[T]) serializeAll(entities []*T) (types.JsonArray, error) {
	out := make(types.JsonArray, 0, len(entities))
	for _, entity := range entities {
		record, err := s.serialize(entity)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
