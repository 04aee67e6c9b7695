package message

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewLabel_RFC1035_LabelLength validates hostname encoding against
// the 63-byte label limit of RFC 1035 §3.1. Over-length names are
// rejected at configuration time, never truncated: a truncated label
// would match queries for a name the operator never configured.
func TestNewLabel_RFC1035_LabelLength(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{
			name:  "simple hostname",
			input: "myhost",
		},
		{
			name:  "label exactly 63 bytes (valid per RFC 1035 §3.1)",
			input: strings.Repeat("a", 63),
		},
		{
			name:   "label 64 bytes (exceeds maximum per RFC 1035 §3.1)",
			input:  strings.Repeat("a", 64),
			errMsg: "exceeds maximum label length",
		},
		{
			name:   "empty hostname",
			input:  "",
			errMsg: "must not be empty",
		},
		{
			name:   "dotted name (LLMNR resolves flat labels only)",
			input:  "myhost.example",
			errMsg: "single label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := NewLabel(tt.input)

			if tt.errMsg != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got: %v", tt.errMsg, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := label.String(); got != tt.input {
				t.Errorf("String() = %q, want %q", got, tt.input)
			}
			if got := label.NameLen(); got != len(tt.input) {
				t.Errorf("NameLen() = %d, want %d", got, len(tt.input))
			}
		})
	}
}

// TestLabel_Wire checks the wire encoding: length octet, name bytes,
// zero terminator (RFC 1035 §3.1).
func TestLabel_Wire(t *testing.T) {
	label, err := NewLabel("myhost")
	if err != nil {
		t.Fatalf("NewLabel: %v", err)
	}

	want := []byte{0x06, 'm', 'y', 'h', 'o', 's', 't', 0x00}
	if !bytes.Equal(label.Wire(), want) {
		t.Errorf("Wire() = %#v, want %#v", label.Wire(), want)
	}
}

// TestLabel_Matches validates the authority decision per RFC 4795 §2.4:
// match iff length octets are equal and the name bytes compare equal
// under ASCII case-insensitive comparison. No substring or multi-label
// matching.
func TestLabel_Matches(t *testing.T) {
	label, err := NewLabel("myhost")
	if err != nil {
		t.Fatalf("NewLabel: %v", err)
	}

	tests := []struct {
		name  string
		qname []byte
		want  bool
	}{
		{
			name:  "exact match",
			qname: []byte{0x06, 'm', 'y', 'h', 'o', 's', 't', 0x00},
			want:  true,
		},
		{
			name:  "uppercase query matches case-insensitively",
			qname: []byte{0x06, 'M', 'Y', 'H', 'O', 'S', 'T', 0x00},
			want:  true,
		},
		{
			name:  "mixed case matches",
			qname: []byte{0x06, 'M', 'y', 'H', 'o', 'S', 't', 0x00},
			want:  true,
		},
		{
			name:  "different name of same length",
			qname: []byte{0x06, 'y', 'o', 'u', 'r', 'h', 's', 0x00},
			want:  false,
		},
		{
			name:  "shorter name",
			qname: []byte{0x04, 'm', 'y', 'h', 'o', 0x00},
			want:  false,
		},
		{
			name:  "prefix with longer label",
			qname: []byte{0x08, 'm', 'y', 'h', 'o', 's', 't', 'i', 'e', 0x00},
			want:  false,
		},
		{
			name:  "missing zero terminator",
			qname: []byte{0x06, 'm', 'y', 'h', 'o', 's', 't', 0x01},
			want:  false,
		},
		{
			name:  "truncated buffer",
			qname: []byte{0x06, 'm', 'y', 'h'},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := label.Matches(tt.qname); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.qname, got, tt.want)
			}
		})
	}
}

// Case-insensitivity must cover ASCII letters only; bytes outside A-Z
// compare verbatim (RFC 4795 §2.4 name comparison).
func TestLabel_Matches_NonASCIIBytesCompareVerbatim(t *testing.T) {
	label, err := NewLabel("h\xc3\xa9")
	if err != nil {
		t.Fatalf("NewLabel: %v", err)
	}

	if !label.Matches([]byte{0x03, 'H', 0xc3, 0xa9, 0x00}) {
		t.Error("ASCII letter should still fold, non-ASCII bytes verbatim")
	}
	if label.Matches([]byte{0x03, 'h', 0xc3, 0x89, 0x00}) {
		t.Error("non-ASCII bytes must not case-fold")
	}
}
