package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/httpkit/client/metrics"
	"github.com/adamwoolhether/httpkit/client/throttle"
	"github.com/adamwoolhether/httpkit/client/transport"
)

// Client is bound to a base URL, default headers and default query
// parameters. Its configuration is fixed at [New] and never changes, so a
// Client is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	header    http.Header
	params    Params
	transport transport.Transport
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *metrics.Collector
}

// New builds a [Client] for baseURL, which must be absolute with a host.
// Any query string on baseURL is dropped; every call sends only the
// merged parameters.
func New(baseURL string, optFns ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be absolute with a host", ErrInvalidBaseURL, baseURL)
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		baseURL: u,
		header:  mergeHeaders(opts.header),
		params:  mergeParams(opts.params, nil),
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer("httpkit"),
		metrics: opts.metrics,
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	var t transport.Transport = transport.Default()
	if opts.transport != nil {
		t = opts.transport
	}
	if opts.throttle != nil {
		t, err = throttle.New(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, t)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
	}
	client.transport = t

	return client, nil
}

// BaseURL returns the URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// DefaultHeaders returns a copy of the headers sent on every call.
func (c *Client) DefaultHeaders() http.Header {
	return c.header.Clone()
}

// DefaultParams returns a copy of the query parameters sent on every call.
func (c *Client) DefaultParams() Params {
	return mergeParams(c.params, nil)
}

// Get issues a GET for path and decodes into an untyped value: a string
// for HTML bodies, or the generic JSON structure for JSON bodies.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response[any], error) {
	return Get[any](ctx, c, path, opts...)
}

// Post sends payload to path and decodes into an untyped value.
// See [Post] for how payload is encoded.
func (c *Client) Post(ctx context.Context, path string, payload any, opts ...RequestOption) (*Response[any], error) {
	return Post[any](ctx, c, path, payload, opts...)
}

// Get issues a GET for path on c and decodes the response body into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Response[T], error) {
	return exec[T](ctx, c, http.MethodGet, path, nil, opts)
}

// Post sends payload to path on c and decodes the response body into T.
// A nil payload sends no body, a string is sent as text/plain, and any
// other value is sent as application/json. Content-Type and Content-Length
// are set from the encoded body unless overridden with [WithHeaders].
func Post[T any](ctx context.Context, c *Client, path string, payload any, opts ...RequestOption) (*Response[T], error) {
	return exec[T](ctx, c, http.MethodPost, path, payload, opts)
}

// exec runs the request pipeline. Each stage either succeeds or ends the
// call with an *Error; nothing partial is ever returned.
func exec[T any](ctx context.Context, c *Client, method, path string, payload any, opts []RequestOption) (*Response[T], error) {
	var settings requestOpts
	for _, opt := range opts {
		opt(&settings)
	}

	params := mergeParams(c.params, settings.params)
	cl := call{
		method: method,
		url:    buildURL(c.baseURL, path, params).String(),
	}

	ctx, span := c.tracer.Start(ctx, "httpkit."+strings.ToLower(method), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", cl.method),
		attribute.String("http.url", cl.url),
	)

	done := c.metrics.Start(method)
	defer done()

	start := time.Now()
	c.logger.Debug("request started", "method", cl.method, "url", cl.url)

	var enc encoded
	if method == http.MethodPost {
		var err error
		enc, err = guard(func() (encoded, error) { return encodeBody(payload) })
		if err != nil {
			return nil, c.fail(span, cl, KindEncode, start, err)
		}
	}

	req := transport.Request{
		Method: method,
		Header: mergeHeaders(c.header, enc.header, settings.header),
		Body:   enc.body,
	}

	resp, err := guard(func() (*transport.Response, error) {
		return c.transport.RoundTrip(ctx, cl.url, &req)
	})
	if err == nil && resp == nil {
		err = errors.New("transport returned no response")
	}
	if err != nil {
		return nil, c.fail(span, cl, KindTransport, start, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.Status))

	data, err := guard(func() (*T, error) {
		return decodeBody[T](resp.Header, resp.Body, settings.useNumber)
	})
	if err != nil {
		return nil, c.fail(span, cl, KindDecode, start, err)
	}

	c.metrics.RecordRequest(method, resp.Status, time.Since(start))
	c.logger.Debug("request completed", "method", cl.method, "url", cl.url, "status", resp.Status, "since", time.Since(start).String())

	return &Response[T]{
		Status: resp.Status,
		Header: resp.Header,
		Data:   data,
	}, nil
}

// fail records a failed stage on every observer and builds the returned error.
func (c *Client) fail(span trace.Span, cl call, kind Kind, start time.Time, err error) error {
	e := &Error{
		Kind:   kind,
		Method: cl.method,
		URL:    cl.url,
		Err:    err,
	}

	span.RecordError(e)
	span.SetStatus(codes.Error, kind.String())
	c.metrics.RecordError(cl.method, kind.String(), time.Since(start))
	c.logger.Debug("request failed", "method", cl.method, "url", cl.url, "kind", kind.String(), "error", err)

	return e
}
