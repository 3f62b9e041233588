package client

import "fmt"

// guard runs a single pipeline step. A panic inside fn is recovered and
// returned as an error wrapping ErrPanic, so no step can escape the call.
func guard[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return fn()
}
