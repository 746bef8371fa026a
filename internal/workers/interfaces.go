// Package workers provides the background jobs of the sidecar and the
// Workers aggregate that runs long-lived components side by side.
package workers

import (
	"context"
	"math/big"
)

// Worker is a long-lived component. Run blocks until ctx is cancelled or
// the worker fails; a nil error means a clean stop.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

// Run implements Worker.
func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// BalanceSource reports the spendable balance of an engine wallet.
type BalanceSource interface {
	SpendableBalance(ctx context.Context, walletID string) (*big.Int, error)
}
