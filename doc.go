// Package roster is the service layer of the teams and players API. A
// Service validates request payloads against per-operation column rules
// before delegating to a generic repository and serializing the result.
package roster
