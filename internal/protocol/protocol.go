// Package protocol defines LLMNR wire-format constants per RFC 4795.
//
// LLMNR reuses the DNS message format (RFC 1035 §4.1) on its own UDP port
// and multicast group. All multi-byte fields are network byte order.
package protocol

const (
	// Port is the LLMNR UDP port per RFC 4795 §2.
	Port = 5355

	// MulticastAddrIPv4 is the LLMNR IPv4 link-scope multicast group
	// per RFC 4795 §2.
	MulticastAddrIPv4 = "224.0.0.252"

	// HeaderSize is the fixed LLMNR/DNS header size in bytes:
	// ID, FLAGS, QDCOUNT, ANCOUNT, NSCOUNT, ARCOUNT (RFC 1035 §4.1.1).
	HeaderSize = 12
)

// Header FLAGS field bits per RFC 4795 §2.1.1.
const (
	// FlagQR is the query/response bit (0 = query, 1 = response).
	FlagQR uint16 = 0x8000

	// OpcodeMask covers the 4-bit OPCODE field. RFC 4795 §2.1.1:
	// senders MUST set OPCODE to zero, responders MUST ignore messages
	// with other values.
	OpcodeMask uint16 = 0x7800

	// FlagTC is the truncation bit. A query with TC set is not a valid
	// LLMNR query (RFC 4795 §2.1.1).
	FlagTC uint16 = 0x0200
)

const (
	// ClassIN is the Internet class, the only class LLMNR uses.
	ClassIN uint16 = 1

	// MaxLabelSize is the maximum length of a single name label in
	// bytes per RFC 1035 §3.1.
	MaxLabelSize = 63

	// MaxDatagramSize bounds a received LLMNR datagram. RFC 4795 §2.1
	// limits LLMNR over UDP to the smaller of the link MTU and 9194
	// bytes; 2048 comfortably covers any query this responder answers.
	MaxDatagramSize = 2048

	// MaxAnswerAddrs caps the number of addresses placed in one
	// response. The cap keeps response construction bounded; a host
	// with more addresses on one link answers with the first 16.
	MaxAnswerAddrs = 16

	// DefaultTTL is the resource record TTL in seconds. RFC 4795 §2.8
	// recommends 30 seconds for hosts with dynamic addresses.
	DefaultTTL uint32 = 30

	// CompressionPointer marks the top two bits of a 16-bit name field
	// as a compression pointer per RFC 1035 §4.1.4; the low 14 bits
	// are a byte offset from the start of the message.
	CompressionPointer uint16 = 0xC000
)

// RecordType represents a DNS record type in an LLMNR question or answer.
type RecordType uint16

const (
	// RecordTypeA is the IPv4 address record type (RFC 1035 §3.2.2).
	RecordTypeA RecordType = 1

	// RecordTypeANY requests all records for a name (RFC 1035 §3.2.3).
	RecordTypeANY RecordType = 255
)

// String returns the standard mnemonic for the record type.
func (t RecordType) String() string {
	switch t {
	case RecordTypeA:
		return "A"
	case RecordTypeANY:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}
