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

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest describes pagination and ordering of a list query.
type PageRequest struct {
	page     int
	pageSize int
	orders   []string // "id ASC", "name DESC"
}

func (p *PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		p.pageSize = DefaultPageSize
	}
	if p.pageSize > MaxPageSize {
		p.pageSize = MaxPageSize
	}
	return p.pageSize
}

func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		p.page = 1
	}
	return p.page
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

func (p *PageRequest) GetOrders() []string {
	return p.orders
}

// NewPageRequest constructs a PageRequest with order settings.
func NewPageRequest(page int, pageSize int, orders ...string) *PageRequest {
	return &PageRequest{page: page, pageSize: pageSize, orders: orders}
}

// ParsePageRequest builds a PageRequest from raw "page" and "page_size"
// values. It returns nil when neither is set, meaning "no pagination".
func ParsePageRequest(page, pageSize string) (*PageRequest, error) {
	if page == "" && pageSize == "" {
		return nil, nil
	}
	p, err := parsePositive("page", page)
	if err != nil {
		return nil, err
	}
	s, err := parsePositive("page_size", pageSize)
	if err != nil {
		return nil, err
	}
	return NewPageRequest(p, s), nil
}

func parsePositive(field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, Validation(field, "attribute '%s' must be a positive integer", field)
	}
	return n, nil
}

// Pagination holds paged result items along with pagination metadata.
type Pagination[T any] struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
	Items    []T `json:"items"`
}

// NewDefaultPagination constructs an empty pagination container.
func NewDefaultPagination[T any](page int, pageSize int) *Pagination[T] {
	return &Pagination[T]{Page: page, PageSize: pageSize, Items: make([]T, 0)}
}
