// Package closingclient wraps a transport with graceful shutdown:
// Close cancels every in-flight request and waits for them to return.
package closingclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
)

// ErrClosing is returned by Do after Close has been called.
var ErrClosing = errors.New("client is closing")

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

type ClosingClient struct {
	impl HttpClient

	mu      sync.Mutex
	closing bool
	nextKey uint64
	cancels map[uint64]context.CancelFunc

	wg sync.WaitGroup
}

func New(impl HttpClient) *ClosingClient {
	return &ClosingClient{
		impl:    impl,
		cancels: make(map[uint64]context.CancelFunc),
	}
}

func (c *ClosingClient) Do(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithCancel(req.Context())

	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		cancel()
		return nil, ErrClosing
	}
	// wg.Add must not race with wg.Wait in Close; both run under mu
	// while c.closing is still false.
	c.wg.Add(1)
	key := c.nextKey
	c.nextKey++
	c.cancels[key] = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.cancels, key)
		c.mu.Unlock()
		c.wg.Done()
	}()

	return c.impl.Do(req.Clone(ctx))
}

func (c *ClosingClient) CloseIdleConnections() {
	c.impl.CloseIdleConnections()
}

// Close cancels in-flight requests, waits for them and closes the
// wrapped transport if it is an io.Closer.
func (c *ClosingClient) Close() error {
	c.mu.Lock()
	if !c.closing {
		c.closing = true
		for _, cancel := range c.cancels {
			cancel()
		}
		c.cancels = nil
	}
	c.mu.Unlock()

	c.impl.CloseIdleConnections()
	c.wg.Wait()

	if closer, ok := c.impl.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
