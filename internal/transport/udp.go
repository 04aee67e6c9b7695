package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"syscall"

	"golang.org/x/net/ipv4"

	"github.com/localecho/llmnr/internal/errors"
	"github.com/localecho/llmnr/internal/protocol"
)

// UDPv4Transport implements Transport over an IPv4 UDP socket bound to
// the LLMNR port, joined to the LLMNR multicast group on every
// multicast-capable interface.
//
// The socket is wrapped in an ipv4.PacketConn with FlagInterface control
// messages enabled, which is how the arrival interface index reaches
// Receive (IP_PKTINFO on Linux, IP_RECVIF on macOS/BSD).
type UDPv4Transport struct {
	conn     net.PacketConn
	ipv4Conn *ipv4.PacketConn
}

// NewUDPv4Transport creates the LLMNR socket: bound to UDP port 5355
// with SO_REUSEADDR (and SO_REUSEPORT where available) so it coexists
// with other resolver stacks on the host, joined to 224.0.0.252 on each
// eligible interface.
//
// A failed group join on one interface is logged as a warning and does
// not fail construction; queries still arrive on the interfaces that
// joined. Failure to enable interface control messages is fatal: without
// the arrival interface every query would have to be dropped.
func NewUDPv4Transport(log *slog.Logger) (*UDPv4Transport, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var optErr error
			if err := c.Control(func(fd uintptr) {
				optErr = setSocketOptions(fd)
			}); err != nil {
				return err
			}
			return optErr
		},
	}

	conn, err := lc.ListenPacket(context.Background(), "udp4", net.JoinHostPort("", strconv.Itoa(protocol.Port)))
	if err != nil {
		return nil, &errors.NetworkError{
			Operation: "create socket",
			Err:       err,
			Details:   fmt.Sprintf("failed to bind UDP port %d", protocol.Port),
		}
	}

	p := ipv4.NewPacketConn(conn)

	if err := p.SetControlMessage(ipv4.FlagInterface, true); err != nil {
		_ = conn.Close()
		return nil, &errors.NetworkError{
			Operation: "configure socket",
			Err:       err,
			Details:   "failed to enable arrival-interface control messages",
		}
	}

	group := &net.UDPAddr{IP: net.ParseIP(protocol.MulticastAddrIPv4)}
	ifis, err := net.Interfaces()
	if err != nil {
		_ = conn.Close()
		return nil, &errors.NetworkError{
			Operation: "list interfaces",
			Err:       err,
			Details:   "cannot enumerate interfaces for multicast join",
		}
	}

	joined := 0
	for i := range ifis {
		ifi := &ifis[i]
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagMulticast == 0 {
			continue
		}
		if err := p.JoinGroup(ifi, group); err != nil {
			log.Warn("failed to join LLMNR multicast group",
				"interface", ifi.Name, "group", protocol.MulticastAddrIPv4, "error", err)
			continue
		}
		joined++
	}
	if joined == 0 {
		_ = conn.Close()
		return nil, &errors.NetworkError{
			Operation: "join group",
			Err:       fmt.Errorf("no interface joined %s", protocol.MulticastAddrIPv4),
			Details:   "no up, multicast-capable interface available",
		}
	}

	return &UDPv4Transport{
		conn:     conn,
		ipv4Conn: p,
	}, nil
}

// Receive reads one datagram and the interface it arrived on.
//
// The receive buffer comes from a pool sized to
// protocol.MaxDatagramSize; the returned payload is a copy, so the
// caller owns it beyond the next Receive.
func (t *UDPv4Transport) Receive(ctx context.Context) ([]byte, net.Addr, int, error) {
	select {
	case <-ctx.Done():
		return nil, nil, 0, &errors.NetworkError{
			Operation: "receive query",
			Err:       ctx.Err(),
			Details:   "context canceled before receive",
		}
	default:
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := t.conn.SetReadDeadline(deadline); err != nil {
			return nil, nil, 0, &errors.NetworkError{
				Operation: "set read deadline",
				Err:       err,
				Details:   fmt.Sprintf("failed to set deadline %v", deadline),
			}
		}
	}

	bufPtr := GetBuffer()
	defer PutBuffer(bufPtr)
	buffer := *bufPtr

	n, cm, src, err := t.ipv4Conn.ReadFrom(buffer)
	if err != nil {
		return nil, nil, 0, &errors.NetworkError{
			Operation: "receive query",
			Err:       err,
			Details:   "failed to read from socket",
		}
	}

	// Zero means the control message was absent; the caller drops the
	// datagram rather than answer with addresses from the wrong link.
	interfaceIndex := 0
	if cm != nil {
		interfaceIndex = cm.IfIndex
	}

	payload := make([]byte, n)
	copy(payload, buffer[:n])
	return payload, src, interfaceIndex, nil
}

// Send transmits one response datagram to dest.
func (t *UDPv4Transport) Send(ctx context.Context, payload []byte, dest net.Addr) error {
	select {
	case <-ctx.Done():
		return &errors.NetworkError{
			Operation: "send response",
			Err:       ctx.Err(),
			Details:   "context canceled before send",
		}
	default:
	}

	n, err := t.conn.WriteTo(payload, dest)
	if err != nil {
		return &errors.NetworkError{
			Operation: "send response",
			Err:       err,
			Details:   fmt.Sprintf("failed to send %d bytes to %s", len(payload), dest),
		}
	}
	if n != len(payload) {
		return &errors.NetworkError{
			Operation: "send response",
			Err:       fmt.Errorf("partial write: %d/%d bytes", n, len(payload)),
			Details:   "incomplete transmission",
		}
	}
	return nil
}

// Close releases the socket.
func (t *UDPv4Transport) Close() error {
	if t.conn == nil {
		return nil
	}
	if err := t.conn.Close(); err != nil {
		return &errors.NetworkError{
			Operation: "close socket",
			Err:       err,
			Details:   "failed to close UDP connection",
		}
	}
	return nil
}
