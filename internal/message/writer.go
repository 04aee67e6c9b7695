package message

import (
	"encoding/binary"
	"fmt"

	"github.com/localecho/llmnr/internal/errors"
)

// packetWriter builds an outgoing datagram by appending fixed-width
// big-endian fields to a buffer of fixed capacity.
//
// The capacity is set once at allocation from the worst-case response
// size; an append past it records an error instead of growing, and
// finish surfaces the first such error. Put calls after an overflow are
// no-ops, so builders can write straight through and check once.
type packetWriter struct {
	buf []byte
	err error
}

func newPacketWriter(capacity int) *packetWriter {
	return &packetWriter{buf: make([]byte, 0, capacity)}
}

func (w *packetWriter) ensure(n int) bool {
	if w.err != nil {
		return false
	}
	if len(w.buf)+n > cap(w.buf) {
		w.err = &errors.ValidationError{
			Field:   "response",
			Value:   fmt.Sprintf("%d+%d bytes", len(w.buf), n),
			Message: fmt.Sprintf("exceeds allocated capacity of %d bytes", cap(w.buf)),
		}
		return false
	}
	return true
}

func (w *packetWriter) putUint16(v uint16) {
	if !w.ensure(2) {
		return
	}
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *packetWriter) putUint32(v uint32) {
	if !w.ensure(4) {
		return
	}
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *packetWriter) putBytes(b []byte) {
	if !w.ensure(len(b)) {
		return
	}
	w.buf = append(w.buf, b...)
}

// len returns the current write cursor, i.e. the offset the next append
// lands at.
func (w *packetWriter) len() int {
	return len(w.buf)
}

func (w *packetWriter) finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}
