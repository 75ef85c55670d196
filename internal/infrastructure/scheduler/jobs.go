package scheduler

import (
	"context"

	"go.uber.org/zap"
)

// Job names
const (
	JobInvoiceOverdueSweep = "invoice-overdue-sweep"
)

// OverdueSweeper marks past-due invoices overdue
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context) (int, error)
}

// OverdueSweepJob returns the body of the invoice overdue sweep
func OverdueSweepJob(sweeper OverdueSweeper, logger *zap.Logger) JobFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context) error {
		marked, err := sweeper.SweepOverdue(ctx)
		if err != nil {
			return err
		}
		if marked > 0 {
			logger.Info("overdue sweep finished", zap.Int("marked", marked))
		}
		return nil
	}
}
