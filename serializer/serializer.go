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

// Package serializer turns entity column values into JSON-safe values.
package serializer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/tomoncle/roster/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// TimeLayout is the ISO-8601 layout used for timestamps.
const TimeLayout = time.RFC3339Nano

var baseModelType = reflect.TypeOf(bun.BaseModel{})

// Value converts v into a value encoding/json renders unambiguously.
// Unsupported types fail with a KindUnknown error.
func Value(v interface{}) (interface{}, error) {
	switch e := v.(type) {
	case nil:
		return nil, nil
	case string:
		return e, nil
	case bool:
		return e, nil
	case time.Time:
		return e.UTC().Format(TimeLayout), nil
	case bun.BaseModel, *bun.BaseModel:
		return nil, nil
	case map[string]interface{}:
		return jsonString(e)
	case types.JsonObject:
		return jsonString(e)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		return Value(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	}
	return nil, &types.Error{Kind: types.KindUnknown, Message: fmt.Sprintf("cannot identify type: %T", v)}
}

func jsonString(m map[string]interface{}) (interface{}, error) {
	b, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return nil, types.Unknown(err, "cannot serialize object")
	}
	return string(b), nil
}

// Entity serializes the column values of entity, a pointer to a struct
// described by table, keyed by column name.
func Entity(table *schema.Table, entity interface{}) (types.JsonObject, error) {
	strct := reflect.Indirect(reflect.ValueOf(entity))
	if strct.Kind() != reflect.Struct {
		return nil, &types.Error{Kind: types.KindUnknown, Message: fmt.Sprintf("cannot serialize %T", entity)}
	}

	out := make(types.JsonObject, len(table.Fields))
	for _, f := range table.Fields {
		if f.IndirectType == baseModelType {
			continue
		}
		v, err := Value(strct.FieldByIndex(f.Index).Interface())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", f.Name, err)
		}
		out[f.Name] = v
	}
	return out, nil
}
