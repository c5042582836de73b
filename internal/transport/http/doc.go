// Package http contains the HTTP transport layer: chi routers and handlers
// that translate query parameters into filter inputs, invoke the service
// layer, and render JSON or file downloads.
package http
