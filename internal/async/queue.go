// Package async runs fire-and-forget side effects (audit appends, low-stock
// mail) on a bounded queue so a burst of mutations cannot spawn unbounded
// concurrent work. Tasks run after the triggering response, eventually and
// unordered relative to it.
package async

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "warehouse_async_queue_depth",
	Help: "Tasks currently waiting in the async side-effect queue.",
})

// Task is one unit of deferred work. The context carries the queue's
// lifetime, not the originating request's: the request may already be done.
type Task func(ctx context.Context)

// Queue is a bounded task queue drained by a fixed worker pool.
type Queue struct {
	tasks   chan Task
	log     *logrus.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	timeout time.Duration
}

// NewQueue starts workers goroutines draining a queue of the given capacity.
func NewQueue(log *logrus.Logger, workers, capacity int) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		tasks:   make(chan Task, capacity),
		log:     log,
		cancel:  cancel,
		timeout: 30 * time.Second,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
	return q
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-q.tasks:
			if !ok {
				return
			}
			queueDepth.Set(float64(len(q.tasks)))
			taskCtx, cancel := context.WithTimeout(ctx, q.timeout)
			task(taskCtx)
			cancel()
		}
	}
}

// Submit enqueues a task. A full queue drops the task with a warning rather
// than blocking the caller's request.
func (q *Queue) Submit(task Task) {
	select {
	case q.tasks <- task:
		queueDepth.Set(float64(len(q.tasks)))
	default:
		q.log.Warn("async queue full, dropping task")
	}
}

// Close stops the workers after the queued tasks drain, waiting at most the
// given timeout.
func (q *Queue) Close(timeout time.Duration) {
	close(q.tasks)
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		q.cancel()
		<-done
	}
}
