package lightapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/andyle182810/lightcloud/workerpool"
)

// RequestExecutor schedules exchanges. A client picks one implementation when
// it is built and keeps it for its lifetime.
type RequestExecutor interface {
	Execute(ctx context.Context, req *Request) *Pending
	Close() error
}

type exchangeFunc func(ctx context.Context, req *Request) (any, *Response, error)

var (
	_ RequestExecutor = (*blockingExecutor)(nil)
	_ RequestExecutor = (*concurrentExecutor)(nil)
)

// blockingExecutor runs the exchange on the calling goroutine and hands back
// an already resolved handle.
type blockingExecutor struct {
	exchange exchangeFunc
}

func newBlockingExecutor(exchange exchangeFunc) *blockingExecutor {
	return &blockingExecutor{exchange: exchange}
}

func (e *blockingExecutor) Execute(ctx context.Context, req *Request) *Pending {
	pending := newPending(req.RequestID)
	pending.resolve(e.exchange(ctx, req))

	return pending
}

func (e *blockingExecutor) Close() error {
	return nil
}

// concurrentExecutor queues exchanges on a pool of MaxConcurrentRequests
// workers and returns before the exchange starts.
type concurrentExecutor struct {
	exchange exchangeFunc
	pool     *workerpool.Pool
}

func newConcurrentExecutor(exchange exchangeFunc) (*concurrentExecutor, error) {
	pool := workerpool.New(
		workerpool.WithName("lightapi"),
		workerpool.WithWorkerCount(MaxConcurrentRequests),
	)

	// The pool lives as long as the client, not any single request context.
	if err := pool.Start(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to start request pool: %w", err)
	}

	return &concurrentExecutor{exchange: exchange, pool: pool}, nil
}

func (e *concurrentExecutor) Execute(ctx context.Context, req *Request) *Pending {
	pending := newPending(req.RequestID)

	err := e.pool.Submit(ctx, func() {
		pending.resolve(e.exchange(ctx, req))
	})
	if err != nil {
		if errors.Is(err, workerpool.ErrNotRunning) {
			err = ErrClientClosed
		}

		pending.resolve(nil, nil, err)
	}

	return pending
}

func (e *concurrentExecutor) Close() error {
	return e.pool.Stop()
}
