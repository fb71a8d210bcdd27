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
	"fmt"
	"net/http"

	"github.com/tomoncle/roster/types"
	"github.com/tomoncle/roster/utils"
)

var log = utils.NewLogger("RESOURCE")

// Exception is the error body of every failed request.
type Exception struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

type exceptionBody struct {
	Exception Exception `json:"exception"`
}

// StatusOf returns the HTTP status for an error kind.
func StatusOf(kind types.ErrorKind) int {
	switch kind {
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindConflict:
		return http.StatusConflict
	case types.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// Error renders err as an exception body. Errors that are not *types.Error
// are reported as Unknown without exposing their text.
func Error(w http.ResponseWriter, err error) {
	var e *types.Error
	if !errors.As(err, &e) {
		e = types.Unknown(err, "an unexpected error occurred")
	}

	message := e.Message
	if message == "" {
		message = e.Kind.Desc()
	}
	if e.Kind == types.KindUnknown {
		log.WithError(err).Error("request failed")
	}

	JSON(w, StatusOf(e.Kind), exceptionBody{Exception: Exception{
		Type:    e.Kind.Name(),
		Message: message,
		Field:   e.Field,
	}})
}

// NotFound renders the exception body for paths no route matches.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, types.NotFound("no route for %s", r.URL.Path))
}

// MethodNotAllowed renders the exception body for a known path requested
// with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, exceptionBody{Exception: Exception{
		Type:    "MethodNotAllowed",
		Message: fmt.Sprintf("method %s is not allowed on %s", r.Method, r.URL.Path),
	}})
}
