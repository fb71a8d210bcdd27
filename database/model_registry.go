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
	"sort"
	"sync"
)

var defaultRegistry = NewModelRegistry()

// SQLModel is a table managed by the migrations. Instance returns a Bun
// struct pointer; Priority orders table creation, lower first, so referenced
// tables exist before their dependents.
type SQLModel interface {
	Instance() interface{}
	Priority() int
}

// ModelRegistry stores SQL models and exposes them in a deterministic order.
type ModelRegistry struct {
	mu          sync.RWMutex
	models      []SQLModel
	foreignKeys []ForeignKeyConstraint
}

func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{}
}

func (r *ModelRegistry) Register(model SQLModel, fks ...ForeignKeyConstraint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, model)
	r.foreignKeys = append(r.foreignKeys, fks...)
}

// Models returns the registered models sorted by ascending priority.
func (r *ModelRegistry) Models() []SQLModel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]SQLModel, len(r.models))
	copy(result, r.models)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority() < result[j].Priority()
	})
	return result
}

func (r *ModelRegistry) Instances() []interface{} {
	models := r.Models()
	instances := make([]interface{}, len(models))
	for i, m := range models {
		instances[i] = m.Instance()
	}
	return instances
}

func (r *ModelRegistry) ForeignKeys() []ForeignKeyConstraint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]ForeignKeyConstraint, len(r.foreignKeys))
	copy(result, r.foreignKeys)
	return result
}

type modelAdapter struct {
	instance interface{}
	priority int
}

// NewModelAdapter wraps a struct instance and priority into an SQLModel.
func NewModelAdapter(instance interface{}, priority int) SQLModel {
	return &modelAdapter{instance: instance, priority: priority}
}

func (a *modelAdapter) Instance() interface{} { return a.instance }

func (a *modelAdapter) Priority() int { return a.priority }

// RegisterModel adds a model and the foreign keys it owns to the default
// registry.
func RegisterModel(model SQLModel, fks ...ForeignKeyConstraint) {
	defaultRegistry.Register(model, fks...)
}

// DefaultRegistry returns the registry populated by RegisterModel.
func DefaultRegistry() *ModelRegistry {
	return defaultRegistry
}
