//go:build !windows

package transport

import "golang.org/x/sys/unix"

// setSocketOptions enables address reuse on the LLMNR socket before
// bind. SO_REUSEADDR lets the daemon restart while old sockets linger;
// SO_REUSEPORT lets it share port 5355 with another LLMNR stack
// (systemd-resolved, for one) on platforms that support it.
func setSocketOptions(fd uintptr) error {
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return err
	}
	// Best effort: not every unix exposes SO_REUSEPORT.
	_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	return nil
}
