package ports

import "context"

// LoginLimiter throttles repeated failed login attempts per username.
type LoginLimiter interface {
	// TooManyFailures reports whether the username has exhausted its
	// attempt budget within the current window.
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
