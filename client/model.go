package client

import "net/http"

// Response is the outcome of a successful call. Data is nil when the
// body was empty or its content type is not one the client decodes.
type Response[T any] struct {
	Status int
	Header http.Header
	Data   *T
}

// call carries the per-call state that logging, tracing and metrics
// share. It never outlives the call.
type call struct {
	method string
	url    string
}
