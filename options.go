package routype

import (
	"context"
	"log"
	"net/http"
)

// DefaultMaxBody limits how much of a response body is read.
const DefaultMaxBody = 10 * 1024 * 1024

type Config struct {
	errorf         func(format string, args ...interface{})
	header         http.Header
	headerFunc     func(ctx context.Context) (http.Header, error)
	authorization  string
	maxBody        int64
	decodeResponse func(ctx context.Context, res *http.Response, out interface{}) error
	parseError     func(res *http.Response) (interface{}, error)
}

func NewDefaultConfig() *Config {
	return &Config{
		errorf:  log.Printf,
		maxBody: DefaultMaxBody,
	}
}

type Option func(*Config)

// ErrorLogger sets the function used to report failures that cannot be
// returned to the caller (currently only response body close errors).
func ErrorLogger(logger func(format string, args ...interface{})) Option {
	return func(config *Config) {
		config.errorf = logger
	}
}

// Header sets static headers merged into every outgoing request.
func Header(header http.Header) Option {
	return func(config *Config) {
		config.header = header
	}
}

// HeaderFunc sets a header source evaluated once per call. Its result
// is merged over the static headers.
func HeaderFunc(f func(ctx context.Context) (http.Header, error)) Option {
	return func(config *Config) {
		config.headerFunc = f
	}
}

// Authorization sets the Authorization header value for every request.
func Authorization(value string) Option {
	return func(config *Config) {
		config.authorization = value
	}
}

// MaxBody overrides the response body size limit.
func MaxBody(maxBody int64) Option {
	return func(config *Config) {
		config.maxBody = maxBody
	}
}

// ResponseDecoder replaces the whole success path: when set, it alone
// turns a 2xx response into the output value, including for 204.
func ResponseDecoder(decode func(ctx context.Context, res *http.Response, out interface{}) error) Option {
	return func(config *Config) {
		config.decodeResponse = decode
	}
}

// ErrorParser replaces the default decoding of non-2xx bodies. Its
// result becomes the Body of the returned HTTPError verbatim.
func ErrorParser(parse func(res *http.Response) (interface{}, error)) Option {
	return func(config *Config) {
		config.parseError = parse
	}
}
