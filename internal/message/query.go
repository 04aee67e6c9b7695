package message

import (
	"encoding/binary"
	"fmt"

	"github.com/localecho/llmnr/internal/errors"
	"github.com/localecho/llmnr/internal/protocol"
)

// Query is a validated LLMNR query datagram.
//
// Question holds every byte after the fixed header exactly as received,
// starting at the QNAME. It is kept verbatim so the response can echo
// the question section byte-for-byte (RFC 4795 §2.1.1: the response
// question section is a copy of the query's).
type Query struct {
	ID      uint16
	Flags   uint16
	QDCount uint16

	Question []byte

	// nameLen is the QNAME's label length octet, validated against the
	// framing rules in ParseQuery.
	nameLen int
}

// ParseQuery validates an inbound datagram as an LLMNR query per
// RFC 4795 §2.1.1 and returns its decoded form.
//
// A datagram failing any check is off-protocol and must be dropped
// without a wire response; the returned ValidationError identifies the
// failed check for logging and tests. LLMNR differs from DNS here: a
// malformed query never earns a FORMERR reply, only silence.
//
// Checks, in order:
//   - payload at least HeaderSize bytes;
//   - QR clear (responders process queries, never responses);
//   - OPCODE zero (only standard queries);
//   - TC clear;
//   - QDCOUNT == 1, ANCOUNT == 0, NSCOUNT == 0;
//   - QNAME length octet in 1..63 and shorter than the remaining
//     payload;
//   - the octet after the QNAME bytes is the zero terminator.
func ParseQuery(payload []byte) (*Query, error) {
	if len(payload) < protocol.HeaderSize {
		return nil, &errors.ValidationError{
			Field:   "datagram",
			Value:   fmt.Sprintf("%d bytes", len(payload)),
			Message: fmt.Sprintf("shorter than the %d-byte header", protocol.HeaderSize),
		}
	}

	id := binary.BigEndian.Uint16(payload[0:2])
	flags := binary.BigEndian.Uint16(payload[2:4])
	qdcount := binary.BigEndian.Uint16(payload[4:6])
	ancount := binary.BigEndian.Uint16(payload[6:8])
	nscount := binary.BigEndian.Uint16(payload[8:10])

	if flags&protocol.FlagQR != 0 {
		return nil, &errors.ValidationError{
			Field:   "flags",
			Value:   fmt.Sprintf("%#04x", flags),
			Message: "QR bit set; not a query",
		}
	}
	if flags&protocol.OpcodeMask != 0 {
		return nil, &errors.ValidationError{
			Field:   "flags",
			Value:   fmt.Sprintf("%#04x", flags),
			Message: "non-zero OPCODE per RFC 4795 §2.1.1",
		}
	}
	if flags&protocol.FlagTC != 0 {
		return nil, &errors.ValidationError{
			Field:   "flags",
			Value:   fmt.Sprintf("%#04x", flags),
			Message: "TC bit set per RFC 4795 §2.1.1",
		}
	}
	if qdcount != 1 {
		return nil, &errors.ValidationError{
			Field:   "qdcount",
			Value:   fmt.Sprintf("%d", qdcount),
			Message: "query must carry exactly one question",
		}
	}
	if ancount != 0 || nscount != 0 {
		return nil, &errors.ValidationError{
			Field:   "counts",
			Value:   fmt.Sprintf("ancount=%d nscount=%d", ancount, nscount),
			Message: "query must carry no answer or authority records",
		}
	}

	question := payload[protocol.HeaderSize:]
	if len(question) == 0 {
		return nil, &errors.ValidationError{
			Field:   "qname",
			Value:   "",
			Message: "question section missing",
		}
	}

	nameLen := int(question[0])
	switch {
	case nameLen == 0:
		return nil, &errors.ValidationError{
			Field:   "qname",
			Value:   "0",
			Message: "zero-length label",
		}
	case nameLen > protocol.MaxLabelSize:
		return nil, &errors.ValidationError{
			Field:   "qname",
			Value:   fmt.Sprintf("%d", nameLen),
			Message: fmt.Sprintf("label exceeds maximum %d bytes per RFC 1035 §3.1", protocol.MaxLabelSize),
		}
	case nameLen+1 >= len(question):
		// The label plus its terminator octet must fit inside the
		// payload; a label that exactly fills it leaves no room for
		// the terminator read below.
		return nil, &errors.ValidationError{
			Field:   "qname",
			Value:   fmt.Sprintf("%d", nameLen),
			Message: fmt.Sprintf("label length exceeds remaining payload of %d bytes", len(question)),
		}
	}
	if question[1+nameLen] != 0 {
		return nil, &errors.ValidationError{
			Field:   "qname",
			Value:   fmt.Sprintf("%#02x", question[1+nameLen]),
			Message: "label not followed by the zero terminator",
		}
	}

	return &Query{
		ID:       id,
		Flags:    flags,
		QDCount:  qdcount,
		Question: question,
		nameLen:  nameLen,
	}, nil
}

// QName returns the wire-encoded query name: length octet, name bytes,
// zero octet.
func (q *Query) QName() []byte {
	return q.Question[:q.nameLen+2]
}

// TypeClass returns the QTYPE and QCLASS following the QNAME. ok is
// false when fewer than four bytes follow the name terminator, i.e. the
// question is truncated.
func (q *Query) TypeClass() (qtype, qclass uint16, ok bool) {
	rest := q.Question[q.nameLen+2:]
	if len(rest) < 4 {
		return 0, 0, false
	}
	return binary.BigEndian.Uint16(rest[0:2]), binary.BigEndian.Uint16(rest[2:4]), true
}
