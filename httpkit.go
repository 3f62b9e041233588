// Package httpkit builds typed HTTP clients, either directly or from a
// YAML config file.
//
// The client itself lives in [github.com/adamwoolhether/httpkit/client];
// this package only assembles one from parts.
package httpkit

import (
	"fmt"
	"net/http"

	"github.com/adamwoolhether/httpkit/client"
	"github.com/adamwoolhether/httpkit/client/transport"
	"github.com/adamwoolhether/httpkit/config"
)

// NewClient instantiates a new *client.Client bound to baseURL.
// If not specified, the default transport is used.
func NewClient(baseURL string, opts ...client.Option) (*client.Client, error) {
	return client.New(baseURL, opts...)
}

// FromConfig builds a client from cfg. opts are applied after the
// options derived from cfg, so they take precedence.
func FromConfig(cfg *config.Client, opts ...client.Option) (*client.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	var tOpts []transport.Option
	if cfg.Timeout > 0 {
		tOpts = append(tOpts, transport.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		tOpts = append(tOpts, transport.WithUserAgent(cfg.UserAgent))
	}
	if cfg.RequestIDHeader != "" {
		tOpts = append(tOpts, transport.WithRequestID(cfg.RequestIDHeader))
	}
	if cfg.MaxBodySize > 0 {
		tOpts = append(tOpts, transport.WithMaxBodySize(cfg.MaxBodySize))
	}

	tr, err := transport.New(tOpts...)
	if err != nil {
		return nil, fmt.Errorf("building transport: %w", err)
	}

	header := make(http.Header, len(cfg.Headers))
	for k, v := range cfg.Headers {
		header.Set(k, v)
	}

	params := make(client.Params, 0, len(cfg.Params))
	for _, p := range cfg.Params {
		params = append(params, client.Param{Key: p.Key, Value: p.Value})
	}

	base := []client.Option{
		client.WithTransport(tr),
		client.WithDefaultHeaders(header),
		client.WithDefaultParams(params),
	}
	if cfg.Throttle != nil {
		base = append(base, client.WithThrottle(cfg.Throttle.RPS, cfg.Throttle.Burst))
	}

	return client.New(cfg.BaseURL, append(base, opts...)...)
}

// Load reads a YAML config from path and builds a client from it.
func Load(path string, opts ...client.Option) (*client.Client, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return FromConfig(cfg, opts...)
}
