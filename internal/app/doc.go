// Package app wires the application together: configuration, logging,
// metrics, the record store, services, and the HTTP router, plus the server
// lifecycle (start, signal handling, graceful shutdown).
package app
