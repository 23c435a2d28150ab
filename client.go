package routype

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// HttpClient is the injected transport performing the actual network
// exchange. *http.Client implements it.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// Client exposes the operations of a contract as callables. It is
// immutable after construction; concurrent calls share nothing mutable.
type Client struct {
	ops     map[string]*Operation
	baseURL string
	client  HttpClient
	config  *Config
}

// Args carries the per-call inputs of an operation. Every slot is
// optional at the language level; slots not declared by the route must
// stay nil.
type Args struct {
	// Params supplies path parameter values by placeholder name.
	Params map[string]interface{}

	// Query is nil, url.Values, map[string]interface{} or a struct
	// with `query` tags.
	Query interface{}

	// Body is nil, an io.Reader or []byte (sent raw), a proto.Message
	// (sent as protobuf) or any JSON-serializable value.
	Body interface{}
}

// Operation is one callable endpoint, bound to its route and the
// client's shared configuration.
type Operation struct {
	name   string
	route  Route
	client *Client
}

// NewClient builds a client for a contract.
//
// The transport is a required dependency: there is no fallback to a
// process-wide HTTP client, which keeps every client substitutable in
// tests. Paths from the contract are appended to baseURL; a trailing
// slash on baseURL is stripped once here.
func NewClient(contract *Contract, baseURL string, client HttpClient, opts ...Option) *Client {
	if contract == nil {
		panic("routype: NewClient called with nil contract")
	}
	if client == nil {
		panic("routype: NewClient called with nil transport")
	}
	config := NewDefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	c := &Client{
		ops:     make(map[string]*Operation, contract.Len()),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		config:  config,
	}
	for _, name := range contract.Names() {
		route, _ := contract.Route(name)
		c.ops[name] = &Operation{name: name, route: route, client: c}
	}
	return c
}

// Op returns the named operation. Asking for an operation the contract
// does not define is a programmer error and panics.
func (c *Client) Op(name string) *Operation {
	op, has := c.ops[name]
	if !has {
		panic(fmt.Sprintf("routype: no operation %q in the contract", name))
	}
	return op
}

// Names returns the operation names in sorted order.
func (c *Client) Names() []string {
	names := make([]string, 0, len(c.ops))
	for _, op := range c.ops {
		names = append(names, op.name)
	}
	sort.Strings(names)
	return names
}

// Close releases idle connections held by the transport and closes it
// if it is an io.Closer.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	if closer, ok := c.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Route returns the declaration behind the operation.
func (o *Operation) Route() Route {
	return o.route
}

// Name returns the operation's name in the contract.
func (o *Operation) Name() string {
	return o.name
}

// Call performs the operation: build the URL from args, run exactly one
// exchange through the transport, decode the response into out.
//
// out may be nil when the route declares no output. A non-2xx status
// yields an *HTTPError; transport failures are returned unwrapped, so
// whatever the injected transport reports reaches the caller as is.
func (o *Operation) Call(ctx context.Context, out interface{}, args Args) error {
	if err := o.checkArgs(args); err != nil {
		return err
	}
	config := o.client.config

	header := make(http.Header, len(config.header))
	for key, values := range config.header {
		header[key] = values
	}
	if config.headerFunc != nil {
		dynamic, err := config.headerFunc(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve headers: %w", err)
		}
		for key, values := range dynamic {
			header[key] = values
		}
	}

	path, err := buildPath(o.route.Path, args.Params)
	if err != nil {
		return err
	}
	query, err := encodeQuery(args.Query)
	if err != nil {
		return err
	}
	urlStr := o.client.baseURL + path
	if query != "" {
		urlStr += "?" + query
	}

	req, err := newHTTPRequest(ctx, o.route.Method, urlStr, args.Body, header)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	if config.authorization != "" {
		req.Header.Set("Authorization", config.authorization)
	}

	res, err := o.client.client.Do(req)
	if err != nil {
		return err
	}
	res.Body = http.MaxBytesReader(nil, res.Body, config.maxBody)
	defer func() {
		if err := res.Body.Close(); err != nil {
			config.errorf("failed to close response body: %v", err)
		}
	}()

	if 200 <= res.StatusCode && res.StatusCode < 300 {
		if config.decodeResponse != nil {
			return config.decodeResponse(ctx, res, out)
		}
		return decodeSuccess(res, out)
	}
	return decodeError(res, config.parseError)
}

// checkArgs rejects inputs for slots the route does not declare and
// inputs incompatible with a declared concrete shape.
func (o *Operation) checkArgs(args Args) error {
	if len(args.Params) > 0 && !o.route.Params.Declared() {
		return fmt.Errorf("operation %q does not declare path parameters", o.name)
	}
	if args.Query != nil && !o.route.Query.Declared() {
		return fmt.Errorf("operation %q does not declare a query", o.name)
	}
	if args.Body != nil && !o.route.Body.Declared() {
		return fmt.Errorf("operation %q does not declare a body", o.name)
	}
	if args.Query != nil && !o.route.Query.accepts(args.Query) {
		return fmt.Errorf("operation %q: query of type %T does not match declared shape %s", o.name, args.Query, o.route.Query)
	}
	if args.Body != nil && !o.route.Body.accepts(args.Body) {
		return fmt.Errorf("operation %q: body of type %T does not match declared shape %s", o.name, args.Body, o.route.Body)
	}
	return nil
}

// Call invokes a named operation and returns its decoded output. The
// success type is fixed at the call site, recovering a typed signature
// from the contract.
func Call[Out any](ctx context.Context, c *Client, name string, args Args) (Out, error) {
	var out Out
	err := c.Op(name).Call(ctx, &out, args)
	return out, err
}
