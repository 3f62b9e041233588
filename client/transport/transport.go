// Package transport defines the boundary between the client core and
// whatever performs the actual network exchange.
package transport

import (
	"context"
	"net/http"
)

// Request is what the core hands to a [Transport]: method, final
// headers, and an optional body. URL is passed separately.
type Request struct {
	Method string
	Header http.Header
	Body   []byte
}

// Response is the raw outcome of a round trip. Body is nil when the
// server sent nothing.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport performs a single exchange. Implementations must not retain
// req after returning.
type Transport interface {
	RoundTrip(ctx context.Context, url string, req *Request) (*Response, error)
}

// Func adapts an ordinary function into a [Transport].
type Func func(ctx context.Context, url string, req *Request) (*Response, error)

// RoundTrip calls f.
func (f Func) RoundTrip(ctx context.Context, url string, req *Request) (*Response, error) {
	return f(ctx, url, req)
}
