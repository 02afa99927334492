package ai

import (
	"context"
	"errors"
	"net"
)

// asTimeout returns an *ErrTimeout when err stems from an expired deadline,
// nil otherwise.
func asTimeout(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ErrTimeout{Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &ErrProviderUnavailable{Err: err}
	}
	return nil
}
