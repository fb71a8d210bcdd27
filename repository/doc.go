// Package repository provides a generic repository built on Bun: find, list,
// paginate, create, update and delete one entity type, each mutation in its
// own transaction, with store errors mapped onto the API error kinds.
package repository
