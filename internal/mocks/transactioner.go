package mocks

import (
	"context"

	"github.com/taskloop/taskloop-api/internal/store"
)

// Verify interface compliance at compile time
var _ store.Transactioner = (*Transactioner)(nil)

// Transactioner runs the transaction function directly, with no database
// underneath. The in-memory stores ignore their WithTx receiver, so the
// function operates on the same state either way. BeginErr, when set,
// simulates a transaction that fails to start.
type Transactioner struct {
	BeginErr error
}

// RunInTransaction implements store.Transactioner.
func (t *Transactioner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if t.BeginErr != nil {
		return t.BeginErr
	}
	return fn(ctx, nil)
}
