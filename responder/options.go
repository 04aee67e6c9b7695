package responder

import (
	"log/slog"

	"github.com/localecho/llmnr/internal/iface"
	"github.com/localecho/llmnr/internal/message"
	"github.com/localecho/llmnr/internal/transport"
)

// Option is a functional option for configuring a Responder.
//
// Options follow the functional options pattern so configuration can
// grow without breaking callers. All options are applied during New,
// before the transport is created.
type Option func(*Responder) error

// WithHostname sets the hostname the responder answers for.
//
// The name must be a flat single label: no dots, 1 to 63 bytes
// (RFC 1035 §3.1). An unencodable name fails New immediately instead of
// being truncated; a truncated name would silently answer for the wrong
// identity.
func WithHostname(name string) Option {
	return func(r *Responder) error {
		label, err := message.NewLabel(name)
		if err != nil {
			return err
		}
		r.hostname = label
		return nil
	}
}

// WithTransport replaces the default LLMNR UDP transport. Used by tests
// to drive the pipeline with a scripted transport.
func WithTransport(t transport.Transport) Option {
	return func(r *Responder) error {
		r.trans = t
		return nil
	}
}

// WithAddressSource replaces the default system-backed address source.
func WithAddressSource(s iface.AddressSource) Option {
	return func(r *Responder) error {
		r.source = s
		return nil
	}
}

// WithLogger sets the structured logging sink. Logging is informational
// only; nothing the responder logs changes protocol behavior.
func WithLogger(log *slog.Logger) Option {
	return func(r *Responder) error {
		r.log = log
		return nil
	}
}

// WithTTL overrides the answer record TTL. The default is 30 seconds
// per RFC 4795 §2.8.
func WithTTL(seconds uint32) Option {
	return func(r *Responder) error {
		r.ttl = seconds
		return nil
	}
}
