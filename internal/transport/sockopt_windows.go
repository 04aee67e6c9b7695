//go:build windows

package transport

import "golang.org/x/sys/windows"

// setSocketOptions enables address reuse on the LLMNR socket before
// bind. Windows supports SO_REUSEADDR only; there is no SO_REUSEPORT.
func setSocketOptions(fd uintptr) error {
	return windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
}
