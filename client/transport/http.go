package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// defaultMaxBodySize bounds response buffering when no explicit
// limit is configured.
const defaultMaxBodySize = 32 << 20 // 32MB

// ErrBodyTooLarge is returned when a response body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTP is a [Transport] backed by [net/http]. It buffers the whole
// response body and hands it back to the caller.
type HTTP struct {
	c               *http.Client
	requestIDHeader string
	maxBodySize     int64
	logger          *slog.Logger
}

// Default returns an [HTTP] transport on [http.DefaultTransport] with
// no further configuration.
func Default() *HTTP {
	return &HTTP{
		c:           &http.Client{Transport: http.DefaultTransport},
		maxBodySize: defaultMaxBodySize,
		logger:      slog.Default(),
	}
}

// New builds an [HTTP] transport with the provided options.
// If not specified, a fresh http.Client on http.DefaultTransport is used.
func New(optFns ...Option) (*HTTP, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying transport option: %w", err)
		}
	}

	t := Default()

	if opts.client != nil {
		// Copy so later tweaks don't leak into the caller's client.
		cpy := *opts.client
		t.c = &cpy
	}

	if opts.logger != nil {
		t.logger = opts.logger
	}

	if opts.timeout != nil {
		t.c.Timeout = *opts.timeout
	}

	if opts.maxBodySize > 0 {
		t.maxBodySize = opts.maxBodySize
	}

	t.requestIDHeader = opts.requestIDHeader

	var rt http.RoundTripper
	switch {
	case opts.rt != nil:
		rt = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		rt = opts.client.Transport
	default:
		rt = http.DefaultTransport
	}
	if opts.userAgent != "" {
		rt = userAgent{value: opts.userAgent, base: rt}
	}
	t.c.Transport = rt

	return t, nil
}

// RoundTrip executes one exchange against url.
func (t *HTTP) RoundTrip(ctx context.Context, url string, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	hreq.Header = req.Header.Clone()
	if hreq.Header == nil {
		hreq.Header = make(http.Header)
	}
	// net/http writes Content-Length from the field, not the header map.
	hreq.Header.Del("Content-Length")
	hreq.ContentLength = int64(len(req.Body))

	if t.requestIDHeader != "" && hreq.Header.Get(t.requestIDHeader) == "" {
		hreq.Header.Set(t.requestIDHeader, uuid.NewString())
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(hreq.Header))

	resp, err := t.c.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("exec http do: %w", err)
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err := io.Copy(io.Discard, resp.Body); err != nil {
				t.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err := resp.Body.Close(); err != nil {
			t.logger.Error("failed to close response body", "error", err)
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(b)) > t.maxBodySize {
		discardBody = false
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, t.maxBodySize)
	}

	out := Response{
		Status: resp.StatusCode,
		Header: resp.Header,
	}
	if len(b) > 0 {
		out.Body = b
	}

	return &out, nil
}
