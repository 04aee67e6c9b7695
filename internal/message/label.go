// Package message implements the LLMNR wire format: hostname label
// encoding, query parsing and conformance validation, and response
// synthesis per RFC 4795 and RFC 1035.
package message

import (
	"fmt"

	"github.com/localecho/llmnr/internal/errors"
	"github.com/localecho/llmnr/internal/protocol"
)

// Label is a hostname in DNS name wire encoding: one length octet
// (1..63), the name bytes, and a terminating zero octet (RFC 1035 §3.1).
//
// A Label is immutable after construction and safe to share across
// goroutines. The responder holds exactly one, built at startup from the
// configured hostname.
type Label struct {
	wire []byte
}

// NewLabel encodes name as a single DNS label.
//
// LLMNR resolves flat, single-label names, so name must not contain a
// dot. Names longer than 63 bytes are rejected outright rather than
// truncated: a silently truncated name would leave the responder
// authoritative for a name nobody queries.
func NewLabel(name string) (Label, error) {
	if len(name) == 0 {
		return Label{}, &errors.ValidationError{
			Field:   "hostname",
			Value:   name,
			Message: "must not be empty",
		}
	}
	if len(name) > protocol.MaxLabelSize {
		return Label{}, &errors.ValidationError{
			Field:   "hostname",
			Value:   name,
			Message: fmt.Sprintf("exceeds maximum label length of %d bytes per RFC 1035 §3.1", protocol.MaxLabelSize),
		}
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return Label{}, &errors.ValidationError{
				Field:   "hostname",
				Value:   name,
				Message: "must be a single label without dots",
			}
		}
	}

	wire := make([]byte, 0, len(name)+2)
	wire = append(wire, byte(len(name)))
	wire = append(wire, name...)
	wire = append(wire, 0)
	return Label{wire: wire}, nil
}

// Wire returns the label in wire encoding: length octet, name bytes,
// zero octet. Callers must not modify the returned slice.
func (l Label) Wire() []byte {
	return l.wire
}

// NameLen returns the number of name bytes, excluding the length and
// terminator octets.
func (l Label) NameLen() int {
	if len(l.wire) == 0 {
		return 0
	}
	return int(l.wire[0])
}

// String returns the decoded hostname.
func (l Label) String() string {
	if len(l.wire) == 0 {
		return ""
	}
	return string(l.wire[1 : 1+l.NameLen()])
}

// Matches reports whether qname, a wire-encoded QNAME (length octet,
// name bytes, zero octet), names this label.
//
// RFC 4795 §2.4: name comparison is done in a case-insensitive manner
// for ASCII characters. Matching is all-or-nothing on the single label;
// there is no suffix or multi-label matching.
func (l Label) Matches(qname []byte) bool {
	n := l.NameLen()
	if n == 0 || len(qname) < n+2 {
		return false
	}
	if int(qname[0]) != n {
		return false
	}
	if qname[1+n] != 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if lowerASCII(qname[1+i]) != lowerASCII(l.wire[1+i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
