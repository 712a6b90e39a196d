package bridge

import (
	"context"
	"errors"
	"net"
)

var (
	ErrBridgeClosed      = errors.New("bridge: closed")
	ErrConnect           = errors.New("bridge: connect failed")
	ErrChannelClosed     = errors.New("bridge: channel closed")
	ErrEmptyReply        = errors.New("bridge: empty reply")
	ErrAttemptsExhausted = errors.New("bridge: attempts exhausted")
)

// IsTimeout reports whether err is a deadline expiry, either from the
// network stack or from context cancellation by deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
