package message

import (
	goerrors "errors"
	"net"

	"github.com/localecho/llmnr/internal/protocol"
)

// ErrNoAnswerData reports that none of the offered addresses can be
// encoded as an answer record. An authoritative host with no usable
// address stays silent rather than replying with an empty answer
// section, so callers drop the query on this error without logging it
// as a failure.
var ErrNoAnswerData = goerrors.New("no usable addresses for answer records")

// ipv4RecordSize is the wire size of one A record with a full
// (uncompressed) owner name of nameLen bytes: length octet + name +
// terminator, TYPE, CLASS, TTL, RDLENGTH, and 4 bytes of RDATA.
func ipv4RecordSize(nameLen int) int {
	return (1 + nameLen + 1) + 2 + 2 + 4 + 2 + net.IPv4len
}

// BuildResponse synthesizes the positive response datagram for a query
// whose name matched the responder's hostname.
//
// The layout follows RFC 4795 §2.1.1: the header echoes the query ID
// and QDCOUNT with only the QR bit set in FLAGS, the question section
// is the received question echoed byte-for-byte, and one A record
// follows per address. The first record's owner name is the query name
// as received; the matcher has already established it equals the
// configured hostname up to ASCII case, and echoing the querier's
// spelling keeps the record consistent with the echoed question. Every
// later record carries a 2-byte compression pointer (RFC 1035 §4.1.3)
// to the first record's name. The pointer offset is header size plus
// received question length, which stays correct even when the query
// carried trailing bytes beyond QTYPE/QCLASS, because those bytes are
// echoed too.
//
// Addresses that are not IPv4 are skipped; at most
// protocol.MaxAnswerAddrs records are emitted. If no address survives,
// BuildResponse returns ErrNoAnswerData.
func BuildResponse(q *Query, addrs []net.IP, ttl uint32) ([]byte, error) {
	var v4 []net.IP
	for _, addr := range addrs {
		if len(v4) == protocol.MaxAnswerAddrs {
			break
		}
		if ip4 := addr.To4(); ip4 != nil {
			v4 = append(v4, ip4)
		}
	}
	if len(v4) == 0 {
		return nil, ErrNoAnswerData
	}

	qname := q.QName()

	// Worst case: every record with a full owner name and no
	// compression. The actual message is smaller from the second
	// record on.
	capacity := protocol.HeaderSize + len(q.Question) + len(v4)*ipv4RecordSize(len(qname)-2)
	w := newPacketWriter(capacity)

	w.putUint16(q.ID)
	w.putUint16(protocol.FlagQR)
	w.putUint16(q.QDCount)
	w.putUint16(uint16(len(v4)))
	w.putUint16(0) // NSCOUNT
	w.putUint16(0) // ARCOUNT

	w.putBytes(q.Question)

	// The first record's owner name starts at the current cursor,
	// header size + received question length; later records point back
	// at it.
	nameOffset := w.len()

	for i, addr := range v4 {
		if i == 0 {
			w.putBytes(qname)
		} else {
			w.putUint16(protocol.CompressionPointer | uint16(nameOffset))
		}
		w.putUint16(uint16(protocol.RecordTypeA))
		w.putUint16(protocol.ClassIN)
		w.putUint32(ttl)
		w.putUint16(net.IPv4len)
		w.putBytes(addr)
	}

	return w.finish()
}
