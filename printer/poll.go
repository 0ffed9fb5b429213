package printer

import (
	"context"
	"fmt"
	"time"
)

// Outcome tells whether a decoded response carries usable data.
type Outcome int

const (
	Ready Outcome = iota
	// NotReady means the device answered with placeholder data and the
	// request should be repeated.
	NotReady
)

func (o Outcome) String() string {
	if o == NotReady {
		return "not ready"
	}
	return "ready"
}

// Response is a decoded reply or a retryable not-ready marker.
type Response[T any] struct {
	Value   T
	Outcome Outcome
}

func readyResponse[T any](v T) Response[T] { return Response[T]{Value: v, Outcome: Ready} }

func notReadyResponse[T any]() Response[T] { return Response[T]{Outcome: NotReady} }

// RetryPolicy bounds a poll: Attempts tries with a fixed Delay in between.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy waits up to about five seconds for NFC data.
var DefaultRetryPolicy = RetryPolicy{Attempts: 10, Delay: 500 * time.Millisecond}

// Poll runs attempt until it returns a Ready response, an error, or the
// policy runs out. Errors are not retried. Cancelling ctx aborts the wait.
func Poll[T any](ctx context.Context, policy RetryPolicy, attempt func(context.Context) (Response[T], error)) (T, error) {
	var zero T
	attempts := max(policy.Attempts, 1)

	for i := 1; ; i++ {
		resp, err := attempt(ctx)
		if err != nil {
			return zero, err
		}
		if resp.Outcome == Ready {
			return resp.Value, nil
		}
		if i >= attempts {
			return zero, fmt.Errorf("%w after %d attempts", ErrNotReady, attempts)
		}

		if policy.Delay <= 0 {
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			continue
		}
		timer := time.NewTimer(policy.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
