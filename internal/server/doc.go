// Package server implements the optional monitoring HTTP server exposing
// health and Prometheus metrics endpoints.
package server
