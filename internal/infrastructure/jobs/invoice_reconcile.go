// Package jobs holds the periodic background loops of the faucet engine.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rln-faucet.backend/pkg/logger"
)

// Reconciler is the slice of the purchase usecase the job drives
type Reconciler interface {
	ReconcilePending(ctx context.Context) error
}

// InvoiceReconcileJob periodically sweeps pending purchases
type InvoiceReconcileJob struct {
	reconciler Reconciler
	interval   time.Duration
	stop       chan struct{}
}

// NewInvoiceReconcileJob creates a new invoice reconcile job
func NewInvoiceReconcileJob(reconciler Reconciler, interval time.Duration) *InvoiceReconcileJob {
	return &InvoiceReconcileJob{
		reconciler: reconciler,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start begins the reconcile loop. Runs one pass immediately, then on
// every tick until Stop is called or the context ends.
func (j *InvoiceReconcileJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting invoice reconcile job", zap.Duration("interval", j.interval))

	j.run(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.run(ctx)
		case <-j.stop:
			logger.Info(ctx, "invoice reconcile job stopped")
			return
		case <-ctx.Done():
			logger.Info(ctx, "invoice reconcile job stopped", zap.Error(ctx.Err()))
			return
		}
	}
}

// Stop stops the job
func (j *InvoiceReconcileJob) Stop() {
	close(j.stop)
}

func (j *InvoiceReconcileJob) run(ctx context.Context) {
	if err := j.reconciler.ReconcilePending(ctx); err != nil {
		logger.Error(ctx, "invoice reconcile pass failed", zap.Error(err))
	}
}
