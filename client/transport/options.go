package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring an [HTTP] transport via [New].
type Option func(*options) error
type options struct {
	client          *http.Client
	rt              http.RoundTripper
	timeout         *time.Duration
	userAgent       string
	requestIDHeader string
	maxBodySize     int64
	logger          *slog.Logger
}

// WithClient replaces the default [http.Client] used by the transport.
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithRoundTripper sets a custom [http.RoundTripper] as the base transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("round tripper must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall exchange timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithRequestID stamps a random UUID into the named header on every
// request that doesn't already carry one.
func WithRequestID(header string) Option {
	return func(o *options) error {
		if header == "" {
			return errors.New("request id header must not be empty")
		}
		o.requestIDHeader = http.CanonicalHeaderKey(header)
		return nil
	}
}

// WithMaxBodySize caps how many response bytes are buffered. Bodies
// larger than n fail with [ErrBodyTooLarge].
func WithMaxBodySize(n int64) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.New("max body size must be greater than zero")
		}
		o.maxBodySize = n
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the transport.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
