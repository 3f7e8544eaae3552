// Package wait provides bounded polling for page readiness.
package wait

import (
	"context"
	"errors"
	"fmt"
	"time"

	k8swait "k8s.io/apimachinery/pkg/util/wait"
)

// ErrTimeout is returned when a condition is not met before its deadline.
var ErrTimeout = errors.New("timed out")

// DefaultInterval is the polling interval used when none is given.
const DefaultInterval = 100 * time.Millisecond

// Condition reports whether the awaited state has been reached.
// A non-nil error aborts the wait immediately.
type Condition func(ctx context.Context) (bool, error)

// Until polls cond every interval until it returns true, returns an error,
// or timeout elapses. The first check runs immediately.
//
// Expiry yields an error wrapping ErrTimeout that names what was awaited.
// Cancellation of ctx is returned as ctx.Err().
func Until(ctx context.Context, what string, interval, timeout time.Duration, cond Condition) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		return fmt.Errorf("wait for %s: timeout must be positive, got %s", what, timeout)
	}

	err := k8swait.PollUntilContextTimeout(ctx, interval, timeout, true, k8swait.ConditionWithContextFunc(cond))
	if err == nil {
		return nil
	}
	if k8swait.Interrupted(err) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("wait for %s: %w after %s", what, ErrTimeout, timeout)
	}
	return err
}
