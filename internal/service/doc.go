// Package service contains the application's orchestration layer: it wires
// the pure scheduling core to the persistence interfaces, running each
// user-facing operation inside a single database transaction so planning
// passes over one account are serialized against their own writes.
package service
