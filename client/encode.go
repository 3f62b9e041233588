package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"unicode/utf8"
)

const (
	contentTypeText = "text/plain"
	contentTypeJSON = "application/json"
)

// encoded is a serialised payload plus the headers it implies.
type encoded struct {
	body   []byte
	header http.Header
}

// encodeBody classifies payload: nil (or a nil pointer) yields no body,
// a string is sent as text, anything else as JSON.
func encodeBody(payload any) (encoded, error) {
	if isAbsent(payload) {
		return encoded{}, nil
	}

	var (
		body        []byte
		contentType string
	)

	switch v := payload.(type) {
	case string:
		if !utf8.ValidString(v) {
			return encoded{}, fmt.Errorf("text payload: %w", ErrInvalidUTF8)
		}
		body = []byte(v)
		contentType = contentTypeText
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return encoded{}, fmt.Errorf("encoding json payload: %w", err)
		}
		body = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
		contentType = contentTypeJSON
	}

	h := make(http.Header, 2)
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))

	return encoded{body: body, header: h}, nil
}

func isAbsent(payload any) bool {
	if payload == nil {
		return true
	}
	v := reflect.ValueOf(payload)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
