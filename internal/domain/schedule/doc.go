// Package schedule implements the recurring-task scheduling core: pure,
// deterministic functions that decide when a completed recurring task must
// spawn its next occurrence, build the data for that occurrence, plan
// de-duplicated batches of new instances over a full task set, and detect
// tasks that have silently become overdue.
//
// Nothing in this package performs I/O, reads the wall clock, or holds
// state. Every operation takes the task set and the evaluation time as
// explicit parameters and returns values for the caller to persist.
package schedule
