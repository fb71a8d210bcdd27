// Package model declares the persisted entities, teams and players, and
// registers them with the database model registry.
package model
