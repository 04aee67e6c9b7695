package transport

import (
	goerrors "errors"
	"net"
)

// IsTransient reports whether a receive error is an expected transient
// condition rather than a failure: an interrupted system call or an
// expired read deadline. Callers skip logging for transient errors and
// simply receive again.
func IsTransient(err error) bool {
	var netErr net.Error
	if goerrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return isInterrupted(err)
}
