package throttle

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adamwoolhether/httpkit/client/transport"
)

func okTransport(calls *int32) transport.Transport {
	return transport.Func(func(ctx context.Context, url string, req *transport.Request) (*transport.Response, error) {
		atomic.AddInt32(calls, 1)
		return &transport.Response{Status: http.StatusOK}, nil
	})
}

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		rps    int
		burst  int
		expErr error
	}{
		{
			name:   "Invalid RPS (zero)",
			rps:    0,
			burst:  10,
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid RPS (negative)",
			rps:    -5,
			burst:  10,
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid Burst (zero)",
			rps:    10,
			burst:  0,
			expErr: ErrMustNotBeZero,
		},
		{
			name:   "Invalid Burst (negative)",
			rps:    10,
			burst:  -5,
			expErr: ErrMustNotBeZero,
		},
		{
			name:  "Valid input",
			rps:   10,
			burst: 20,
		},
	}

	var calls int32
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := New(tc.rps, tc.burst, func() *slog.Logger { return nil }, okTransport(&calls))

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Errorf("exp nil err, got: %v", err)
			}
			if tr == nil {
				t.Error("exp non-nil Transport")
			}
		})
	}
}

func TestNew_NilNext(t *testing.T) {
	if _, err := New(10, 10, nil, nil); err == nil {
		t.Fatal("expected error for nil next transport")
	}
}

func TestThrottle_Behavior(t *testing.T) {
	testCases := map[string]struct {
		rps         int
		burst       int
		numRequests int
		reqTimeout  time.Duration
		expErrs     int
		minDuration time.Duration
		maxDuration time.Duration
	}{
		"highLimits": {
			rps:         10000,
			burst:       100,
			numRequests: 50,
			maxDuration: 200 * time.Millisecond,
		},
		"exceedBurstTimeoutWaiting": {
			rps:         5,
			burst:       2,
			numRequests: 5, // 2 use burst, the rest wait ~200ms each
			reqTimeout:  50 * time.Millisecond,
			expErrs:     3,
		},
		"exceedBurstSucceedWaiting": {
			rps:         10,
			burst:       5,
			numRequests: 8,
			reqTimeout:  500 * time.Millisecond,
			// (8-5) calls / 10 RPS
			minDuration: 300 * time.Millisecond,
		},
		"withinBurst": {
			rps:         5,
			burst:       5,
			numRequests: 5,
			maxDuration: 100 * time.Millisecond,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var calls int32
			tr, err := New(tc.rps, tc.burst, func() *slog.Logger { return nil }, okTransport(&calls))
			if err != nil {
				t.Fatal(err)
			}

			var wg sync.WaitGroup
			errs := make([]error, tc.numRequests)
			start := time.Now()

			for i := range tc.numRequests {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					ctx := context.Background()
					if tc.reqTimeout > 0 {
						var cancel context.CancelFunc
						ctx, cancel = context.WithTimeout(ctx, tc.reqTimeout)
						defer cancel()
					}

					_, errs[idx] = tr.RoundTrip(ctx, "https://example.com", &transport.Request{Method: http.MethodGet})
				}(i)
			}

			wg.Wait()
			duration := time.Since(start)

			var failed int
			for _, err := range errs {
				if err == nil {
					continue
				}
				failed++
				if !errors.Is(err, ErrWaitingFailed) {
					t.Errorf("exp ErrWaitingFailed, got: %v", err)
				}
			}

			if failed != tc.expErrs {
				t.Errorf("exp %d failed calls; got %d", tc.expErrs, failed)
			}
			if got := atomic.LoadInt32(&calls); got != int32(tc.numRequests-failed) {
				t.Errorf("exp %d calls to reach next; got %d", tc.numRequests-failed, got)
			}
			if tc.minDuration > 0 && duration < tc.minDuration {
				t.Errorf("exp throttle to slow calls to >= %v, took %v", tc.minDuration, duration)
			}
			if tc.maxDuration > 0 && duration > tc.maxDuration {
				t.Errorf("exp calls to be fast (< %v), took %v", tc.maxDuration, duration)
			}
		})
	}
}

func TestThrottle_PreCancelled(t *testing.T) {
	var calls int32
	tr, err := New(20, 10, nil, okTransport(&calls))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tr.RoundTrip(ctx, "https://example.com", &transport.Request{Method: http.MethodGet})
	if !errors.Is(err, ErrContextEnded) {
		t.Errorf("exp ErrContextEnded, got: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("exp context.Canceled, got: %v", err)
	}
	if calls != 0 {
		t.Errorf("exp no calls to reach next, got %d", calls)
	}
}

func TestThrottle_LogsExhaustion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var calls int32
	tr, err := New(50, 1, func() *slog.Logger { return logger }, okTransport(&calls))
	if err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if _, err := tr.RoundTrip(t.Context(), "https://example.com/x", &transport.Request{Method: http.MethodGet}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	out := buf.String()
	if !strings.Contains(out, "throttle tokens exhausted") {
		t.Errorf("expected exhaustion log, got: %q", out)
	}
	if !strings.Contains(out, "throttle wait complete") {
		t.Errorf("expected wait complete log, got: %q", out)
	}
}
