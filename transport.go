// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmock

import (
	"io"
	"net"
	"time"
)

// Transport capability set.
//
// A real connection and the Stream double both satisfy NetworkStream; code
// under test should depend on the interface only:
//   - Read / Write: io.Reader and io.Writer semantics.
//   - Flush: push buffered output to the peer.
//   - CloseDirection: shut down one or both directions.
//   - PeerAddr: identity of the remote end.
//
// TimeoutSetter is optional; probe for it with a type assertion.

// NetworkStream is the capability set a transport layer expects from a connection.
type NetworkStream interface {
	io.ReadWriter
	Flush() error
	CloseDirection(how Shutdown) error
	PeerAddr() (net.Addr, error)
}

// TimeoutSetter is implemented by streams that accept per-direction timeouts.
// A zero duration means no timeout.
type TimeoutSetter interface {
	SetReadTimeout(d time.Duration) error
	SetWriteTimeout(d time.Duration) error
}

// Shutdown selects which direction CloseDirection shuts down.
type Shutdown uint8

const (
	ShutdownRead  Shutdown = 1
	ShutdownWrite Shutdown = 2
	ShutdownBoth  Shutdown = 3
)

func (how Shutdown) String() string {
	switch how {
	case ShutdownRead:
		return "read"
	case ShutdownWrite:
		return "write"
	case ShutdownBoth:
		return "both"
	default:
		return "none"
	}
}

// Fixed endpoint identities. They never vary with stream content.
var (
	peerAddr  = &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1337}
	localAddr = &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
)

// PeerAddress returns the loopback address every Stream reports as its peer.
func PeerAddress() net.Addr { return peerAddr }

var (
	_ NetworkStream = (*Stream)(nil)
	_ TimeoutSetter = (*Stream)(nil)
	_ net.Conn      = (*Stream)(nil)
)
