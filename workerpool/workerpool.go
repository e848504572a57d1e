package workerpool

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	defaultWorkerCount = 1
	defaultQueueSize   = 100
)

var (
	ErrAlreadyRunning = errors.New("workerpool: pool is already running")
	ErrNotRunning     = errors.New("workerpool: pool is not running")
	ErrStopped        = errors.New("workerpool: pool has been stopped")
	ErrNilJob         = errors.New("workerpool: job is nil")
)

// Job is a unit of work run by exactly one worker.
type Job func()

// Pool runs submitted jobs on a fixed number of workers. At most WorkerCount
// jobs execute at the same time; the rest wait in a bounded queue.
//
// A pool is single-use: once stopped it cannot be started again. Jobs already
// queued when Stop is called still run before Stop returns.
type Pool struct {
	name        string
	workerCount int
	queueSize   int
	jobChan     chan Job
	quit        chan struct{}
	quitOnce    sync.Once
	stopWatch   func() bool
	wg          sync.WaitGroup
	mu          sync.RWMutex
	running     bool
	stopped     bool
}

type Option func(*Pool)

func New(opts ...Option) *Pool {
	pool := &Pool{
		name:        "worker-pool",
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		jobChan:     nil,
		quit:        make(chan struct{}),
		quitOnce:    sync.Once{},
		stopWatch:   nil,
		wg:          sync.WaitGroup{},
		mu:          sync.RWMutex{},
		running:     false,
		stopped:     false,
	}

	for _, opt := range opts {
		opt(pool)
	}

	return pool
}

func WithWorkerCount(count int) Option {
	return func(pool *Pool) {
		if count > 0 {
			pool.workerCount = count
		}
	}
}

func WithQueueSize(size int) Option {
	return func(pool *Pool) {
		if size >= 0 {
			pool.queueSize = size
		}
	}
}

func WithName(name string) Option {
	return func(pool *Pool) {
		if name != "" {
			pool.name = name
		}
	}
}

func (pool *Pool) Name() string {
	return pool.name
}

func (pool *Pool) WorkerCount() int {
	return pool.workerCount
}

func (pool *Pool) Running() bool {
	pool.mu.RLock()
	defer pool.mu.RUnlock()

	return pool.running
}

// Start launches the workers. Cancelling ctx stops the pool as if Stop had
// been called.
func (pool *Pool) Start(ctx context.Context) error {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	if pool.stopped {
		return ErrStopped
	}

	if pool.running {
		return ErrAlreadyRunning
	}

	pool.running = true
	pool.jobChan = make(chan Job, pool.queueSize)

	log.Info().
		Str("pool", pool.name).
		Int("worker_count", pool.workerCount).
		Int("queue_size", pool.queueSize).
		Msg("Worker pool is starting.")

	for workerID := range pool.workerCount {
		pool.wg.Add(1)

		go pool.worker(workerID)
	}

	pool.stopWatch = context.AfterFunc(ctx, func() {
		_ = pool.Stop()
	})

	return nil
}

// Submit queues job for execution. It blocks only while the queue is full,
// returning early if ctx is done or the pool stops.
func (pool *Pool) Submit(ctx context.Context, job Job) error {
	if job == nil {
		return ErrNilJob
	}

	pool.mu.RLock()
	defer pool.mu.RUnlock()

	if !pool.running {
		return ErrNotRunning
	}

	select {
	case pool.jobChan <- job:
		return nil
	case <-pool.quit:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (pool *Pool) Stop() error {
	// Wake submitters blocked on a full queue so they release the read lock.
	pool.quitOnce.Do(func() {
		close(pool.quit)
	})

	pool.mu.Lock()
	if !pool.running {
		pool.stopped = true
		pool.mu.Unlock()

		return nil
	}

	pool.running = false
	pool.stopped = true
	close(pool.jobChan)

	if pool.stopWatch != nil {
		pool.stopWatch()
	}
	pool.mu.Unlock()

	log.Info().Str("pool", pool.name).Msg("Worker pool is stopping.")

	pool.wg.Wait()

	log.Info().Str("pool", pool.name).Msg("Worker pool has stopped.")

	return nil
}

func (pool *Pool) worker(id int) {
	defer pool.wg.Done()

	log.Debug().
		Str("pool", pool.name).
		Int("worker_id", id).
		Msg("Worker has started.")

	for job := range pool.jobChan {
		pool.run(id, job)
	}

	log.Debug().
		Str("pool", pool.name).
		Int("worker_id", id).
		Msg("Worker is shutting down.")
}

func (pool *Pool) run(workerID int, job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("pool", pool.name).
				Int("worker_id", workerID).
				Interface("panic", rec).
				Msg("Job panicked.")
		}
	}()

	job()
}
