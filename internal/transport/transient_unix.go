//go:build !windows

package transport

import (
	goerrors "errors"

	"golang.org/x/sys/unix"
)

// isInterrupted reports whether err is EINTR. The Go runtime restarts
// most interrupted reads itself, but EINTR can still surface through
// raw socket paths and is never worth logging.
func isInterrupted(err error) bool {
	return goerrors.Is(err, unix.EINTR)
}
