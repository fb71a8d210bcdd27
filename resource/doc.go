// Package resource maps HTTP verbs onto a generic service and renders its
// results and errors as JSON.
package resource
