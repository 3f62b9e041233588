package client

import (
	"net/url"
	"strings"
)

// buildURL appends path verbatim to base's escaped path and replaces the
// query with the encoded params. Percent-escapes already present in path
// are kept as written. base is not modified.
func buildURL(base *url.URL, path string, params Params) *url.URL {
	u := *base

	raw := base.EscapedPath() + escapePathVerbatim(path)
	if p, err := url.PathUnescape(raw); err == nil {
		u.Path = p
		u.RawPath = raw
	} else {
		u.Path = base.Path + path
		u.RawPath = ""
	}

	u.RawQuery = params.Encode()
	u.ForceQuery = false

	return &u
}

// escapePathVerbatim percent-encodes the bytes of s that may not appear
// in a URL path, leaving valid %XX escapes and legal path bytes alone.
// A '%' not followed by two hex digits is encoded as %25.
func escapePathVerbatim(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteString(s[i : i+3])
			i += 2
		case c != '%' && isPathByte(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isPathByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/", c) >= 0
}
