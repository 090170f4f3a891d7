// Package server exposes a mount's view state over HTTP: the HTML grid at
// "/", a JSON snapshot at "/api/state" and a health check.
package server
