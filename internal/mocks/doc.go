// Package mocks provides hand-written in-memory implementations of the
// store interfaces for service and handler tests. They honor the same
// sentinel-error contracts as the PostgreSQL implementations but keep
// everything in ordered in-memory slices.
package mocks
