package client

import (
	"net/url"
	"slices"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered multimap of query parameters. Duplicate keys
// are kept in insertion order.
type Params []Param

// ParamsFromValues converts v into Params. Keys are sorted so the
// result is deterministic; values keep their order.
func ParamsFromValues(v url.Values) Params {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var p Params
	for _, k := range keys {
		for _, val := range v[k] {
			p = append(p, Param{Key: k, Value: val})
		}
	}

	return p
}

// Add returns p with key=value appended. p itself is left untouched.
func (p Params) Add(key, value string) Params {
	return append(slices.Clip(p), Param{Key: key, Value: value})
}

// Get returns the first value for key, or "".
func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

// Values returns every value for key in order.
func (p Params) Values(key string) []string {
	var vals []string
	for _, param := range p {
		if param.Key == key {
			vals = append(vals, param.Value)
		}
	}
	return vals
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	return slices.ContainsFunc(p, func(param Param) bool { return param.Key == key })
}

// Encode serialises p in insertion order using query escaping.
func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}

// mergeParams combines defaults with a per-call override. For a key present
// in both, the override's values replace every default value and take the
// position of the key's first default occurrence. Override keys unknown to
// defaults follow in override order. Neither input is modified.
func mergeParams(defaults, override Params) Params {
	merged := make(Params, 0, len(defaults)+len(override))
	if len(override) == 0 {
		return append(merged, defaults...)
	}

	overridden := make(map[string]bool, len(override))
	for _, param := range override {
		overridden[param.Key] = false
	}

	for _, param := range defaults {
		emitted, ok := overridden[param.Key]
		switch {
		case !ok:
			merged = append(merged, param)
		case !emitted:
			for _, o := range override {
				if o.Key == param.Key {
					merged = append(merged, o)
				}
			}
			overridden[param.Key] = true
		}
	}

	for _, param := range override {
		if !overridden[param.Key] {
			merged = append(merged, param)
		}
	}

	return merged
}
