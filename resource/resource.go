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

package resource

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	roster "github.com/tomoncle/roster"
	"github.com/tomoncle/roster/types"
)

const (
	pageParam     = "page"
	pageSizeParam = "page_size"
)

// Resource dispatches the HTTP verbs of one entity collection to a service.
type Resource[T any] struct {
	service roster.Service[T]
}

// New creates a Resource backed by service.
func New[T any](service roster.Service[T]) *Resource[T] {
	return &Resource[T]{service: service}
}

// Routes returns a router serving the collection at "/" and single entities
// at "/{id}".
func (res *Resource[T]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", res.List)
	r.Post("/", res.Create)
	r.Put("/", res.missingID)
	r.Delete("/", res.missingID)

	r.Get("/{id:[0-9]+}", res.Get)
	r.Put("/{id:[0-9]+}", res.Update)
	r.Delete("/{id:[0-9]+}", res.Delete)

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	return r
}

// List answers all entities, or one page of them when page or page_size is
// given.
func (res *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := types.ParsePageRequest(query.Get(pageParam), query.Get(pageSizeParam))
	if err != nil {
		Error(w, err)
		return
	}

	args := queryArgs(r)
	if page != nil {
		result, err := res.service.Page(r.Context(), args, page)
		if err != nil {
			Error(w, err)
			return
		}
		JSON(w, http.StatusOK, result)
		return
	}

	result, err := res.service.All(r.Context(), args)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

func (res *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, err)
		return
	}
	result, err := res.service.Get(r.Context(), id, queryArgs(r))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

func (res *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r)
	if err != nil {
		Error(w, err)
		return
	}
	result, err := res.service.Create(r.Context(), payload)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, result)
}

func (res *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, err)
		return
	}
	payload, err := decodeBody(r)
	if err != nil {
		Error(w, err)
		return
	}
	result, err := res.service.Update(r.Context(), id, payload)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

func (res *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, err)
		return
	}
	result, err := res.service.Delete(r.Context(), id, queryArgs(r))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

func (res *Resource[T]) missingID(w http.ResponseWriter, _ *http.Request) {
	Error(w, types.Validation("id", "cannot find entity without an identifier"))
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, types.Validation("id", "invalid identifier '%s'", raw)
	}
	return id, nil
}

// queryArgs collects the first value of every query parameter.
func queryArgs(r *http.Request) types.JsonObject {
	args := make(types.JsonObject)
	for key, values := range r.URL.Query() {
		if key == pageParam || key == pageSizeParam || len(values) == 0 {
			continue
		}
		args[key] = values[0]
	}
	return args
}

// decodeBody reads a JSON object body. An empty body is an empty payload.
func decodeBody(r *http.Request) (types.JsonObject, error) {
	payload := make(types.JsonObject)
	if r.Body == nil {
		return payload, nil
	}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return make(types.JsonObject), nil
		}
		return nil, &types.Error{Kind: types.KindValidation, Message: "request body must be a JSON object", Err: err}
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, &types.Error{Kind: types.KindValidation, Message: "request body must be a single JSON object", Err: err}
	}
	if payload == nil {
		payload = make(types.JsonObject)
	}
	return payload, nil
}
