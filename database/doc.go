// Package database provides connection management for MySQL, PostgreSQL and
// SQLite, schema migrations for registered models, foreign key handling, SQL
// seed files, store error classification and query logging, built on Bun.
package database
