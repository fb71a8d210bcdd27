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

package types

import "strings"

// JsonObject is a serialized entity or request payload keyed by column name.
type JsonObject map[string]interface{}

// JsonArray is a list of serialized entities.
type JsonArray []JsonObject

// Has reports whether key is present, even with a nil value.
func (j JsonObject) Has(key string) bool {
	_, ok := j[key]
	return ok
}

// IsBlank reports whether key is absent, nil or a whitespace-only string.
func (j JsonObject) IsBlank(key string) bool {
	v, ok := j[key]
	if !ok || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Pick returns a copy holding only the given keys that are present in j.
func (j JsonObject) Pick(keys ...string) JsonObject {
	out := make(JsonObject, len(keys))
	for _, k := range keys {
		if v, ok := j[k]; ok {
			out[k] = v
		}
	}
	return out
}
