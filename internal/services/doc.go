// Package services contains the business logic layer between the HTTP
// handlers and the record store. Services are stateless with respect to
// requests: every call re-filters and re-aggregates from the immutable
// dataset loaded at startup.
package services
