// Package server bootstraps the HTTP API: middleware, routes and a server
// with graceful shutdown.
package server
