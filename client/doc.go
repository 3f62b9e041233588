// Package client provides a small typed HTTP client bound to a base URL,
// default headers and default query parameters.
//
// # Building a Client
//
// Use [New] with functional options:
//
//	c, err := client.New("https://api.example.com",
//		client.WithDefaultHeaders(http.Header{"X-Client": {"v1"}}),
//		client.WithDefaultParams(client.Params{{Key: "lang", Value: "en"}}),
//	)
//
// # Making Requests
//
// [Get] and [Post] decode the response body into a caller-chosen type:
//
//	resp, err := client.Get[[]User](ctx, c, "/users",
//		client.WithParams(client.Params{{Key: "page", Value: "2"}}),
//	)
//
// The request URL is the base URL with path appended verbatim and the
// merged parameters as its query, here /users?lang=en&page=2.
//
// # Precedence
//
// Per-call parameters replace defaults for the same key. Headers are
// layered, highest first: per-call headers, headers implied by the POST
// payload (Content-Type, Content-Length), then the client defaults. The
// client's own defaults are never modified by a call.
//
// # Decoding
//
// Bodies declared text/html decode as a string; application/json bodies
// decode with encoding/json. Empty bodies, a missing Content-Type, or any
// other content type give a [Response] with nil Data and no error.
//
// # Errors
//
// Every failure is an [*Error] whose Kind tells which stage failed:
//
//	if errors.Is(err, client.ErrTransport) { ... }
//
// For transport customisation see the
// [github.com/adamwoolhether/httpkit/client/transport] package.
package client
