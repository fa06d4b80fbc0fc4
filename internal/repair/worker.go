package repair

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/DevLabStudio/goldquest-ledger/internal/logging"
)

// worker drains the queue, rebuilding one account per item. Exits when the
// queue is closed.
type worker struct {
	recalc Recalculator
	queue  chan workItem
	logger *logrus.Logger
}

func newWorker(recalc Recalculator, queue chan workItem, logger *logrus.Logger) *worker {
	return &worker{recalc: recalc, queue: queue, logger: logger}
}

func (w *worker) run() {
	for item := range w.queue {
		w.process(item)
	}
}

func (w *worker) process(item workItem) {
	operation := logging.OperationWrapper("Repair", w.logger, func(ctx context.Context, data *logging.LogData) error {
		data.AddData("accountID", item.accountID.String())
		return w.recalc.RecalculateAccount(ctx, item.accountID)
	})
	item.response <- operation(item.ctx)
}
