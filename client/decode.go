package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode/utf8"
)

// contentKind is the closed set of body interpretations.
type contentKind uint8

const (
	kindNone contentKind = iota
	kindText
	kindJSON
	kindUnrecognized
)

var errTrailingData = errors.New("unexpected data after top-level json value")

// classify picks how a body should be read from its Content-Type.
func classify(h http.Header, body []byte) contentKind {
	if len(body) == 0 {
		return kindNone
	}

	ct := strings.ToLower(h.Get("Content-Type"))
	switch {
	case ct == "":
		return kindNone
	case strings.Contains(ct, "text/html"):
		return kindText
	case strings.Contains(ct, "application/json"):
		return kindJSON
	default:
		return kindUnrecognized
	}
}

// decodeBody interprets body according to the response headers. A nil
// result with a nil error means there is no value to report.
func decodeBody[T any](h http.Header, body []byte, useNumber bool) (*T, error) {
	switch classify(h, body) {
	case kindText:
		if !utf8.Valid(body) {
			return nil, fmt.Errorf("text body: %w", ErrInvalidUTF8)
		}
		return decodeText[T](string(body))
	case kindJSON:
		if !utf8.Valid(body) {
			return nil, fmt.Errorf("json body: %w", ErrInvalidUTF8)
		}
		return decodeJSON[T](body, useNumber)
	case kindNone, kindUnrecognized:
		return nil, nil
	}

	return nil, nil
}

func decodeText[T any](s string) (*T, error) {
	var v T

	rv := reflect.ValueOf(&v).Elem()
	switch {
	case rv.Kind() == reflect.String:
		rv.SetString(s)
	case rv.Kind() == reflect.Interface && reflect.TypeOf(s).Implements(rv.Type()):
		rv.Set(reflect.ValueOf(s))
	default:
		return nil, fmt.Errorf("%w: cannot hold text in %s", ErrTypeMismatch, rv.Type())
	}

	return &v, nil
}

func decodeJSON[T any](body []byte, useNumber bool) (*T, error) {
	d := json.NewDecoder(bytes.NewReader(body))
	if useNumber {
		d.UseNumber()
	}

	var v T
	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding json body: %w", err)
	}

	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return &v, nil
}
