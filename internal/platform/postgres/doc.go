// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx driver through database/sql and mapping driver
// errors onto the store package's sentinel errors.
package postgres
