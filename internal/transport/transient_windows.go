//go:build windows

package transport

import (
	goerrors "errors"

	"golang.org/x/sys/windows"
)

// isInterrupted reports whether err is an interrupted socket call.
func isInterrupted(err error) bool {
	return goerrors.Is(err, windows.WSAEINTR)
}
