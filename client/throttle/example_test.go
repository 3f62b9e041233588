package throttle_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adamwoolhether/httpkit/client/throttle"
	"github.com/adamwoolhether/httpkit/client/transport"
)

func ExampleNew() {
	next := transport.Func(func(ctx context.Context, url string, req *transport.Request) (*transport.Response, error) {
		return &transport.Response{Status: http.StatusNoContent}, nil
	})

	t, err := throttle.New(
		10, // requests per second
		5,  // burst capacity
		func() *slog.Logger { return slog.Default() },
		next,
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	resp, err := t.RoundTrip(context.Background(), "https://example.com", &transport.Request{Method: http.MethodGet})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(resp.Status)
	// Output: 204
}
