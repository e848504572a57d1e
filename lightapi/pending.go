package lightapi

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pending is the handle of a submitted request. It resolves exactly once,
// with either a value or an error.
type Pending struct {
	requestID string
	done      chan struct{}
	once      sync.Once

	value    any
	response *Response
	err      error
}

func newPending(requestID string) *Pending {
	return &Pending{ //nolint:exhaustruct
		requestID: requestID,
		done:      make(chan struct{}),
	}
}

func (p *Pending) resolve(value any, response *Response, err error) {
	p.once.Do(func() {
		p.value = value
		p.response = response
		p.err = err
		close(p.done)
	})
}

func (p *Pending) RequestID() string {
	return p.requestID
}

// Done is closed once the request has completed or failed.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the request completes or ctx is done. A handle that has
// already resolved returns its outcome even when ctx is done. Giving up on
// ctx does not cancel the request itself.
func (p *Pending) Wait(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.value, p.err
	default:
	}

	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result reports the outcome without blocking. The bool is false while the
// request is still in flight.
func (p *Pending) Result() (any, bool, error) {
	select {
	case <-p.done:
		return p.value, true, p.err
	default:
		return nil, false, nil
	}
}

// Response is the parsed response, or nil while the request is in flight or
// if it never got one.
func (p *Pending) Response() *Response {
	select {
	case <-p.done:
		return p.response
	default:
		return nil
	}
}

// AsCompleted yields each handle once, in the order they finish. The channel
// is closed after the last one.
func AsCompleted(pendings ...*Pending) <-chan *Pending {
	out := make(chan *Pending, len(pendings))

	var wg sync.WaitGroup

	for _, pending := range pendings {
		wg.Add(1)

		go func() {
			defer wg.Done()

			<-pending.Done()
			out <- pending
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// WaitAll waits for every handle and returns their values in argument order.
// It returns the first failure it sees, without waiting for the rest.
func WaitAll(ctx context.Context, pendings ...*Pending) ([]any, error) {
	values := make([]any, len(pendings))
	group, groupCtx := errgroup.WithContext(ctx)

	for idx, pending := range pendings {
		group.Go(func() error {
			value, err := pending.Wait(groupCtx)
			if err != nil {
				return err
			}

			values[idx] = value

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return values, nil
}
