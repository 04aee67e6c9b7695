package iface

import (
	goerrors "errors"
	"net"
	"testing"

	"github.com/localecho/llmnr/internal/errors"
)

// An interface index the OS does not know is a NetworkError, distinct
// from a known interface that simply has no addresses.
func TestSystemAddressSource_UnknownInterface(t *testing.T) {
	_, err := SystemAddressSource{}.Lookup(1<<30, FamilyIPv4, 16)
	if err == nil {
		t.Fatal("Lookup accepted a bogus interface index")
	}
	var netErr *errors.NetworkError
	if !goerrors.As(err, &netErr) {
		t.Errorf("error type = %T, want *errors.NetworkError", err)
	}
}

// TestSystemAddressSource_FamilyIPv4 walks the host's real interfaces
// and checks the IPv4 filter: every returned address is a 4-byte IPv4,
// never loopback or unspecified, and the cap is honored.
func TestSystemAddressSource_FamilyIPv4(t *testing.T) {
	ifis, err := net.Interfaces()
	if err != nil {
		t.Skipf("cannot enumerate interfaces: %v", err)
	}
	if len(ifis) == 0 {
		t.Skip("no network interfaces on this host")
	}

	src := SystemAddressSource{}
	for _, ifi := range ifis {
		addrs, err := src.Lookup(ifi.Index, FamilyIPv4, 2)
		if err != nil {
			// Interfaces can disappear mid-test.
			continue
		}
		if len(addrs) > 2 {
			t.Errorf("%s: returned %d addresses, cap was 2", ifi.Name, len(addrs))
		}
		for _, ip := range addrs {
			if len(ip) != net.IPv4len {
				t.Errorf("%s: address %v is not 4 bytes", ifi.Name, ip)
			}
			if ip.IsLoopback() || ip.IsUnspecified() {
				t.Errorf("%s: address %v should have been filtered", ifi.Name, ip)
			}
		}
	}
}

// FamilyUnspec may return both families; the IPv4 entries must come
// back in their 16-byte or 4-byte form but convert with To4.
func TestSystemAddressSource_FamilyUnspec(t *testing.T) {
	ifis, err := net.Interfaces()
	if err != nil || len(ifis) == 0 {
		t.Skip("no network interfaces on this host")
	}

	src := SystemAddressSource{}
	for _, ifi := range ifis {
		unspec, err := src.Lookup(ifi.Index, FamilyUnspec, 16)
		if err != nil {
			continue
		}
		v4, err := src.Lookup(ifi.Index, FamilyIPv4, 16)
		if err != nil {
			continue
		}
		// Every IPv4-filtered address must also appear unfiltered.
		if len(v4) > len(unspec) {
			t.Errorf("%s: FamilyIPv4 returned %d addresses, FamilyUnspec only %d",
				ifi.Name, len(v4), len(unspec))
		}
	}
}
