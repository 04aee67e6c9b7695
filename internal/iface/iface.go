// Package iface resolves arrival interfaces to their locally configured
// addresses.
//
// RFC 4795 §2.4: a responder answers with addresses valid on the
// interface the query arrived on, never with addresses from other
// interfaces. The AddressSource abstraction keeps that lookup injectable
// so the answer pipeline can be tested without real interfaces.
package iface

import (
	"fmt"
	"net"

	"github.com/localecho/llmnr/internal/errors"
)

// Family selects which address family a lookup returns.
type Family int

const (
	// FamilyUnspec places no family constraint on the lookup.
	FamilyUnspec Family = iota

	// FamilyIPv4 restricts the lookup to IPv4 addresses.
	FamilyIPv4
)

// AddressSource looks up the addresses configured on a network
// interface.
type AddressSource interface {
	// Lookup returns up to max addresses bound to the interface with
	// the given OS index, filtered to the requested family. A missing
	// or unreadable interface is an error; an interface with no
	// matching addresses returns an empty slice and no error.
	Lookup(ifIndex int, family Family, max int) ([]net.IP, error)
}

// SystemAddressSource is the production AddressSource, backed by the
// operating system's interface tables.
type SystemAddressSource struct{}

// Lookup implements AddressSource over net.InterfaceByIndex.
//
// Loopback and unspecified addresses are excluded: neither is a useful
// answer to a peer on the link.
func (SystemAddressSource) Lookup(ifIndex int, family Family, max int) ([]net.IP, error) {
	ifi, err := net.InterfaceByIndex(ifIndex)
	if err != nil {
		return nil, &errors.NetworkError{
			Operation: "lookup interface",
			Err:       err,
			Details:   fmt.Sprintf("interface index %d", ifIndex),
		}
	}

	addrs, err := ifi.Addrs()
	if err != nil {
		return nil, &errors.NetworkError{
			Operation: "list interface addresses",
			Err:       err,
			Details:   ifi.Name,
		}
	}

	var out []net.IP
	for _, addr := range addrs {
		if len(out) == max {
			break
		}
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipnet.IP
		if ip.IsLoopback() || ip.IsUnspecified() {
			continue
		}
		if family == FamilyIPv4 {
			ip4 := ip.To4()
			if ip4 == nil {
				continue
			}
			ip = ip4
		}
		out = append(out, ip)
	}
	return out, nil
}
