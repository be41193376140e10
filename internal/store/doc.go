// Package store defines the persistence interfaces the application depends
// on, along with the sentinel errors implementations return and helpers for
// running multi-statement operations inside a database transaction.
package store
