package jobs

import (
	"context"
	"log/slog"

	"freshmarket/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reconciliationBatchLimit caps how many drifted pairs one run examines.
// Leftovers are picked up by the next run.
const reconciliationBatchLimit = 100

// ReconciliationJob periodically converges order/delivery pairs whose
// statuses drifted apart after a propagation failure.
type ReconciliationJob struct {
	handler commands.ReconcileStatusesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReconciliationJob creates a job that repairs status drift once a minute.
func NewReconciliationJob(handler commands.ReconcileStatusesCommandHandler, logger *slog.Logger) *ReconciliationJob {
	return &ReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reconciliation_job"),
	}
}

// Start begins the reconciliation job to run once a minute.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReconcileStatusesCommand(reconciliationBatchLimit)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation command construction failed", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation job failed", "error", err)
			return
		}

		if result.Examined > 0 {
			j.logger.InfoContext(ctx, "Reconciliation run finished",
				"examined", result.Examined, "repaired", result.Repaired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
