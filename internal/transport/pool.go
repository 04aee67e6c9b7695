package transport

import (
	"sync"

	"github.com/localecho/llmnr/internal/protocol"
)

// bufferPool recycles receive buffers so the hot receive path allocates
// only the per-datagram payload copy handed to the caller.
var bufferPool = sync.Pool{
	New: func() any {
		buf := make([]byte, protocol.MaxDatagramSize)
		return &buf
	},
}

// GetBuffer returns a receive buffer of protocol.MaxDatagramSize bytes.
func GetBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

// PutBuffer returns a buffer obtained from GetBuffer to the pool. The
// caller must not touch the buffer afterwards.
func PutBuffer(buf *[]byte) {
	bufferPool.Put(buf)
}
