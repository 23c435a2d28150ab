// Package debugclient wraps a transport so that every exchange is
// logged: the request as a curl command, the response as a full dump.
package debugclient

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"sync/atomic"

	"github.com/rs/zerolog"
	"moul.io/http2curl"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// DebugClient numbers exchanges so concurrent requests and responses
// can be matched up in the log.
type DebugClient struct {
	impl HttpClient
	log  zerolog.Logger
	n    atomic.Uint64
}

func New(impl HttpClient, log zerolog.Logger) *DebugClient {
	return &DebugClient{
		impl: impl,
		log:  log,
	}
}

func (c *DebugClient) Do(req *http.Request) (*http.Response, error) {
	n := c.n.Add(1)

	curl, err := http2curl.GetCurlCommand(req)
	if err != nil {
		return nil, fmt.Errorf("http2curl.GetCurlCommand failed for %d: %w", n, err)
	}
	c.log.Debug().Uint64("exchange", n).Str("curl", curl.String()).Msg("client request")

	res, err := c.impl.Do(req)
	if err != nil {
		c.log.Debug().Uint64("exchange", n).Err(err).Msg("transport failure")
		return nil, err
	}

	resDump, err := httputil.DumpResponse(res, true)
	if err != nil {
		return nil, fmt.Errorf("httputil.DumpResponse failed for %d: %w", n, err)
	}
	c.log.Debug().Uint64("exchange", n).Str("response", string(resDump)).Msg("server response")

	return res, nil
}

func (c *DebugClient) CloseIdleConnections() {
	c.impl.CloseIdleConnections()
}
