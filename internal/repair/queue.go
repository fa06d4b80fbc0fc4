// Package repair funnels on-demand account rebuilds through a small worker
// pool, so a burst of drift reports does not turn into a burst of concurrent
// full-history scans.
package repair

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

// Recalculator rebuilds one account's balances from history.
//
//go:generate mockery --name Recalculator --inpackage
type Recalculator interface {
	RecalculateAccount(ctx context.Context, accountID uuid.UUID) error
}

// Queue manages the work channel, starts and stops workers, and enqueues
// accounts. Each item rebuilds exactly one account, so stopping between
// items never leaves an account half-rebuilt.
type Queue struct {
	recalc     Recalculator
	queue      chan workItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
	logger     *logrus.Logger
}

type workItem struct {
	ctx       context.Context
	accountID uuid.UUID
	response  chan error
}

func NewQueue(recalc Recalculator, numWorkers int, logger *logrus.Logger) *Queue {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Queue{
		recalc:     recalc,
		queue:      make(chan workItem, 1000),
		numWorkers: numWorkers,
		logger:     logger,
	}
}

func (q *Queue) Start() {
	for i := 0; i < q.numWorkers; i++ {
		q.wg.Add(1)
		w := newWorker(q.recalc, q.queue, q.logger)
		go func() {
			defer q.wg.Done()
			w.run()
		}()
	}
}

func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.queue)
		q.wg.Wait()
	})
}

// Enqueue submits one account for rebuilding and waits for the result or
// context cancellation.
func (q *Queue) Enqueue(ctx context.Context, accountID uuid.UUID) error {
	respCh := make(chan error, 1)
	q.queue <- workItem{ctx: ctx, accountID: accountID, response: respCh}

	select {
	case err := <-respCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
