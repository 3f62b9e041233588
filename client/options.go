package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/httpkit/client/metrics"
	"github.com/adamwoolhether/httpkit/client/throttle"
	"github.com/adamwoolhether/httpkit/client/transport"
)

// Option is a functional option for configuring a [Client] via [New].
type Option func(*options) error
type options struct {
	header    http.Header
	params    Params
	transport transport.Transport
	throttle  *throttle.Config
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *metrics.Collector
}

// WithDefaultHeaders sets headers sent on every call. The map is copied.
func WithDefaultHeaders(h http.Header) Option {
	return func(o *options) error {
		o.header = mergeHeaders(h)
		return nil
	}
}

// WithDefaultParams sets query parameters sent on every call. The slice is copied.
func WithDefaultParams(p Params) Option {
	return func(o *options) error {
		o.params = mergeParams(p, nil)
		return nil
	}
}

// WithTransport sets the [transport.Transport] that performs exchanges.
// Defaults to [transport.Default].
func WithTransport(t transport.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		o.transport = t
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used to span each call.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// WithMetrics records every call outcome on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) error {
		o.metrics = c
		return nil
	}
}

// RequestOption is a functional option for a single call.
type RequestOption func(*requestOpts)

type requestOpts struct {
	header    http.Header
	params    Params
	useNumber bool
}

// WithHeaders sets per-call headers. They win over both the client's
// defaults and the headers implied by the payload.
func WithHeaders(h http.Header) RequestOption {
	return func(o *requestOpts) {
		o.header = h
	}
}

// WithParams sets per-call query parameters. For any key also present in
// the client's defaults, these values replace the defaults.
func WithParams(p Params) RequestOption {
	return func(o *requestOpts) {
		o.params = p
	}
}

// WithJSONNumber tells the JSON decoder to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
func WithJSONNumber() RequestOption {
	return func(o *requestOpts) {
		o.useNumber = true
	}
}
