// Package responder implements an LLMNR responder per RFC 4795: it
// answers Link-Local Multicast Name Resolution queries for a single
// configured hostname with the IPv4 addresses of the interface each
// query arrived on.
//
// ## WHY THIS PACKAGE EXISTS
//
// Hosts on networks without a configured DNS server still need to find
// each other by name. LLMNR lets a host answer "who has this name" on
// the local link directly; Windows clients in particular fall back to
// LLMNR whenever DNS cannot resolve a single-label name. This package is
// the answering side only: it holds one authoritative hostname and
// replies to matching queries.
//
// ## PRIMARY TECHNICAL AUTHORITY
//
// - RFC 4795 §2.1.1: LLMNR message format and sender/responder checks
// - RFC 4795 §2.4: responses carry addresses of the receiving interface
// - RFC 1035 §3.1, §4.1: DNS name encoding and message layout
// - RFC 1035 §4.1.3: message compression pointers
//
// ## DESIGN RATIONALE
//
// Processing is single-threaded and request-at-a-time: one datagram is
// received, validated, matched, and answered (or dropped) before the
// next is read. The only state shared across requests is the hostname
// label, which is immutable after New, so the loop can later be
// parallelized across sockets without a locking discipline.
//
// Malformed and off-protocol input is dropped silently. Unlike DNS,
// LLMNR never answers a bad query with a format error; the absence of a
// reply is the protocol-conformant response. The same silence applies
// to unsupported classes and types and to matched queries for which the
// arrival interface has no usable address.
//
// ## EXAMPLE USAGE
//
//	r, err := responder.New(responder.WithHostname("myhost"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	if err := r.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
//	    log.Fatal(err)
//	}
package responder

import (
	"context"
	goerrors "errors"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/localecho/llmnr/internal/iface"
	"github.com/localecho/llmnr/internal/message"
	"github.com/localecho/llmnr/internal/protocol"
	"github.com/localecho/llmnr/internal/transport"
)

// Responder answers LLMNR queries for one configured hostname.
//
// All fields are set during New and never mutated afterwards; a
// Responder is safe to drive from a single Serve loop and to share
// read-only with tests.
type Responder struct {
	hostname message.Label
	trans    transport.Transport
	source   iface.AddressSource
	log      *slog.Logger
	ttl      uint32
}

// New creates a Responder.
//
// Without WithHostname, the machine hostname from os.Hostname is used,
// cut at the first dot: LLMNR names are flat single labels, so
// "myhost.example.org" answers as "myhost". Without WithTransport, an
// LLMNR UDP socket is created and joined to 224.0.0.252 on every
// multicast-capable interface.
//
// A hostname that cannot be encoded as a DNS label (empty, dotted after
// cutting, or over 63 bytes) is rejected here rather than truncated;
// see message.NewLabel.
func New(opts ...Option) (*Responder, error) {
	r := &Responder{
		source: iface.SystemAddressSource{},
		ttl:    protocol.DefaultTTL,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.log == nil {
		r.log = slog.Default()
	}

	if r.hostname.NameLen() == 0 {
		name, err := os.Hostname()
		if err != nil {
			name = "localhost"
		}
		name, _, _ = strings.Cut(name, ".")
		label, err := message.NewLabel(name)
		if err != nil {
			return nil, err
		}
		r.hostname = label
	}

	if r.trans == nil {
		t, err := transport.NewUDPv4Transport(r.log)
		if err != nil {
			return nil, err
		}
		r.trans = t
	}

	return r, nil
}

// Hostname returns the configured hostname the responder answers for.
func (r *Responder) Hostname() string {
	return r.hostname.String()
}

// Serve receives and answers queries until ctx is canceled or the
// transport fails permanently on close.
//
// Receive errors never stop the loop: transient conditions are retried
// silently and anything else is logged and skipped, so one hostile or
// broken datagram cannot take the responder down.
func (r *Responder) Serve(ctx context.Context) error {
	for {
		payload, src, ifIndex, err := r.trans.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if transport.IsTransient(err) {
				continue
			}
			r.log.Error("failed to receive query", "error", err)
			continue
		}
		r.handle(ctx, payload, src, ifIndex)
	}
}

// Close releases the responder's transport.
func (r *Responder) Close() error {
	return r.trans.Close()
}

// handle runs the full pipeline for one datagram: interface check,
// conformance validation, name match, response synthesis, send. Every
// early return is a silent protocol-level drop.
func (r *Responder) handle(ctx context.Context, payload []byte, src net.Addr, ifIndex int) {
	if ifIndex <= 0 {
		// RFC 4795 §2.4: without the arrival interface we cannot pick
		// the right addresses, so the query is unanswerable.
		r.log.Warn("could not determine arrival interface of query", "src", src)
		return
	}

	q, err := message.ParseQuery(payload)
	if err != nil {
		r.log.Debug("dropping malformed datagram", "src", src, "error", err)
		return
	}

	if !r.hostname.Matches(q.QName()) {
		return
	}

	r.respond(ctx, q, src, ifIndex)
}

// respond applies the question policy and, when the query is
// answerable, sends the response to the query's source address.
func (r *Responder) respond(ctx context.Context, q *message.Query, src net.Addr, ifIndex int) {
	qtype, qclass, ok := q.TypeClass()
	if !ok {
		// Truncated question: QNAME matched but QTYPE/QCLASS missing.
		return
	}

	if qclass != protocol.ClassIN {
		return
	}

	var family iface.Family
	switch protocol.RecordType(qtype) {
	case protocol.RecordTypeA:
		family = iface.FamilyIPv4
	case protocol.RecordTypeANY:
		family = iface.FamilyUnspec
	default:
		return
	}

	addrs, err := r.source.Lookup(ifIndex, family, protocol.MaxAnswerAddrs)
	if err != nil {
		r.log.Warn("address lookup failed for arrival interface",
			"interface", ifIndex, "error", err)
		return
	}
	if len(addrs) == 0 {
		// Authoritative but addressless: stay silent rather than send
		// an empty answer section.
		return
	}

	resp, err := message.BuildResponse(q, addrs, r.ttl)
	if err != nil {
		if !goerrors.Is(err, message.ErrNoAnswerData) {
			r.log.Error("failed to build response", "error", err)
		}
		return
	}

	if err := r.trans.Send(ctx, resp, src); err != nil {
		r.log.Error("failed to send response", "dst", src, "error", err)
	}
}
