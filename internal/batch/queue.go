// Package batch runs many documents through analysis on a bounded worker
// pool, so a folder of invoices does not serialize behind one slow remote
// escalation.
package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/extract"
)

// Job is one document queued for analysis.
type Job struct {
	DocumentID  uuid.UUID
	Name        string
	Request     extract.Request
	UserID      string
	SubmittedAt time.Time
}

// Outcome pairs a job with its analysis result. Err is non-nil only when the
// context died before a local result existed.
type Outcome struct {
	Job    Job
	Result *entity.DocumentAnalysisResult
	Err    error
}

// Analyzer is the routing entry point the queue drives; satisfied by
// router.Router.
type Analyzer interface {
	Analyze(ctx context.Context, req extract.Request, userID string) (*entity.DocumentAnalysisResult, error)
}

// Queue fans jobs out to a fixed worker pool and hands every outcome to the
// sink. The sink is called from worker goroutines and must be safe for
// concurrent use.
type Queue struct {
	analyzer Analyzer
	sink     func(Outcome)
	logger   *slog.Logger
	workers  int
	timeout  time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithJobTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// NewQueue builds and starts the pool.
func NewQueue(analyzer Analyzer, sink func(Outcome), logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		analyzer: analyzer,
		sink:     sink,
		logger:   logger,
		workers:  4,
		timeout:  2 * time.Minute,
		ch:       make(chan Job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("batch.worker_started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					res, err := q.analyzer.Analyze(ctx, job.Request, job.UserID)
					cancel()

					if err != nil {
						q.logger.Error("batch.analyze_failed",
							"worker_id", workerID, "document_id", job.DocumentID, "name", job.Name, "error", err)
					} else {
						q.logger.Info("batch.analyzed",
							"worker_id", workerID, "document_id", job.DocumentID, "name", job.Name,
							"provider", res.Provider, "overall_confidence", res.OverallConfidence)
					}
					q.sink(Outcome{Job: job, Result: res, Err: err})
				}

				q.logger.Info("batch.worker_stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Enqueue queues a job, blocking when the buffer is full. Jobs enqueued after
// shutdown began are dropped.
func (q *Queue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("batch.enqueue_after_shutdown", "document_id", job.DocumentID)
		return nil
	}
	select {
	case q.ch <- job:
	default:
		q.logger.Warn("batch.queue_full", "document_id", job.DocumentID)
		q.ch <- job
	}
	return nil
}

// Shutdown stops intake and waits for in-flight jobs, bounded by ctx.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("batch.shutdown_interrupted")
	case <-done:
		q.logger.Info("batch.drained")
	}
}
