// Package transport provides the UDP transport for LLMNR datagrams.
//
// The package owns socket creation, multicast group membership, and the
// recovery of the arrival interface from ancillary data; everything
// above it deals in payload bytes, source addresses, and interface
// indexes. A Transport is injectable so the answer pipeline can be
// driven by a test double.
package transport

import (
	"context"
	"net"
)

// Transport abstracts the socket an LLMNR responder serves on.
type Transport interface {
	// Receive blocks for one inbound datagram, respecting context
	// cancellation and deadline.
	//
	// interfaceIndex is the OS index of the interface the datagram
	// arrived on, recovered from ancillary control data (IP_PKTINFO on
	// Linux, IP_RECVIF on macOS/BSD). Zero means the interface could
	// not be determined; RFC 4795 §2.4 requires interface-specific
	// answers, so callers drop such datagrams.
	//
	// Transient receive conditions (interrupted call, read deadline)
	// are reported as errors satisfying IsTransient; callers retry by
	// calling Receive again.
	Receive(ctx context.Context) (payload []byte, src net.Addr, interfaceIndex int, err error)

	// Send transmits one datagram to dest over the same socket queries
	// arrive on, so replies leave with the expected source port.
	Send(ctx context.Context, payload []byte, dest net.Addr) error

	// Close releases the socket. Errors are propagated, not swallowed.
	Close() error
}
