// Package config loads client settings from YAML.
//
// A minimal file:
//
//	base_url: https://api.example.com
//	headers:
//	  X-Client: v1
//	params:
//	  - key: lang
//	    value: en
//	timeout: 10s
//	throttle:
//	  rps: 20
//	  burst: 5
//
// Params is a list rather than a map so the encoded query keeps the
// order written in the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Client describes one client bound to a base URL.
type Client struct {
	BaseURL         string            `yaml:"base_url" validate:"required,http_url"`
	Headers         map[string]string `yaml:"headers" validate:"dive,keys,required,endkeys"`
	Params          []Param           `yaml:"params" validate:"dive"`
	Timeout         time.Duration     `yaml:"timeout" validate:"gte=0"`
	UserAgent       string            `yaml:"user_agent"`
	RequestIDHeader string            `yaml:"request_id_header"`
	MaxBodySize     int64             `yaml:"max_body_size" validate:"gte=0"`
	Throttle        *Throttle         `yaml:"throttle"`
}

// Param is one default query parameter.
type Param struct {
	Key   string `yaml:"key" validate:"required"`
	Value string `yaml:"value"`
}

// Throttle enables client-side rate limiting.
type Throttle struct {
	RPS   int `yaml:"rps" validate:"gt=0"`
	Burst int `yaml:"burst" validate:"gt=0"`
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
func Parse(data []byte) (*Client, error) {
	var cfg Client

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Load reads the file at path and hands it to [Parse].
func Load(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Validate checks c against its declared constraints. A failure is
// returned as [FieldErrors].
func (c *Client) Validate() error {
	return check(c)
}
