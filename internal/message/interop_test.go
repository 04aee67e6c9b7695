package message

import (
	"net"
	"testing"

	"github.com/miekg/dns"

	"github.com/localecho/llmnr/internal/protocol"
)

// TestBuildResponse_InteropMiekgDNS unpacks a synthesized response with
// an independent DNS implementation. Anything our writer gets wrong in
// the header layout, label encoding, or compression pointer shows up
// here as an unpack failure or a mangled record.
func TestBuildResponse_InteropMiekgDNS(t *testing.T) {
	q := mustParseQuery(t, testDatagram(0xBEEF, 0, 1, 0, 0, 0, qMyhostANY()))

	addrs := []net.IP{
		net.IPv4(192, 0, 2, 1),
		net.IPv4(192, 0, 2, 2),
	}
	resp, err := BuildResponse(q, addrs, protocol.DefaultTTL)
	if err != nil {
		t.Fatalf("BuildResponse: %v", err)
	}

	var msg dns.Msg
	if err := msg.Unpack(resp); err != nil {
		t.Fatalf("miekg/dns failed to unpack our response: %v", err)
	}

	if msg.Id != 0xBEEF {
		t.Errorf("Id = %#04x, want 0xBEEF", msg.Id)
	}
	if !msg.Response {
		t.Error("QR bit not seen as response")
	}
	if msg.Opcode != dns.OpcodeQuery {
		t.Errorf("Opcode = %d, want query", msg.Opcode)
	}

	if len(msg.Question) != 1 {
		t.Fatalf("question count = %d, want 1", len(msg.Question))
	}
	if msg.Question[0].Name != "myhost." {
		t.Errorf("question name = %q, want %q", msg.Question[0].Name, "myhost.")
	}
	if msg.Question[0].Qclass != dns.ClassINET {
		t.Errorf("question class = %d, want IN", msg.Question[0].Qclass)
	}

	if len(msg.Answer) != len(addrs) {
		t.Fatalf("answer count = %d, want %d", len(msg.Answer), len(addrs))
	}
	for i, rr := range msg.Answer {
		a, ok := rr.(*dns.A)
		if !ok {
			t.Fatalf("answer %d is %T, want *dns.A", i, rr)
		}
		// The second record's name arrives via the compression
		// pointer; both must decompress to the query name.
		if a.Hdr.Name != "myhost." {
			t.Errorf("answer %d name = %q, want %q", i, a.Hdr.Name, "myhost.")
		}
		if a.Hdr.Class != dns.ClassINET {
			t.Errorf("answer %d class = %d, want IN", i, a.Hdr.Class)
		}
		if a.Hdr.Ttl != protocol.DefaultTTL {
			t.Errorf("answer %d TTL = %d, want %d", i, a.Hdr.Ttl, protocol.DefaultTTL)
		}
		if !a.A.Equal(addrs[i]) {
			t.Errorf("answer %d address = %v, want %v", i, a.A, addrs[i])
		}
	}
}
