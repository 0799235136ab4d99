// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package netmock provides a deterministic, scriptable in-memory network stream
// for exercising protocol code without real sockets.
//
// Semantics and design:
//   - Segmented reads: the read side is a script of byte segments. One segment is
//     current; the next one replaces it only after the current one is fully
//     drained, modeling TCP segments that arrive after earlier ones are consumed.
//     Readers see one contiguous byte stream regardless of their buffer size.
//   - Captured writes: every successful Write is appended to an in-memory sink.
//     Writes are never short.
//   - Caller-armed faults: FailReads and FailWrites make every subsequent call in
//     that direction fail without touching the buffers. Nothing fails spontaneously.
//   - Recorded timeouts: timeouts and deadlines are stored for assertion and
//     never enforced. No call ever blocks.
//
// A Stream is owned by one test and is not safe for concurrent use.
package netmock

import (
	"bytes"
	"io"
	"net"
	"time"

	"go.uber.org/zap"
)

// Stream is a scripted network stream double.
type Stream struct {
	// FailReads makes every Read fail with the configured read fault.
	FailReads bool
	// FailWrites makes every Write fail with the configured write fault.
	FailWrites bool

	read    *bytes.Reader
	next    [][]byte
	segment int // index of the current segment in the original script

	write  bytes.Buffer
	closed bool
	how    Shutdown

	readTimeout   time.Duration
	writeTimeout  time.Duration
	readDeadline  time.Time
	writeDeadline time.Time

	readFault  error
	writeFault error
	log        *zap.Logger
}

// New returns a Stream with an empty read script.
func New(opts ...Option) *Stream {
	return NewWithInput(nil, opts...)
}

// NewWithInput returns a Stream whose read script is the single segment input.
func NewWithInput(input []byte, opts ...Option) *Stream {
	s, _ := NewWithResponses([][]byte{input}, opts...)
	return s
}

// NewWithResponses returns a Stream whose read script is segments, in order.
// The first segment is current. An empty script is rejected with
// ErrInvalidArgument because a current segment must always exist.
func NewWithResponses(segments [][]byte, opts ...Option) (*Stream, error) {
	if len(segments) == 0 {
		return nil, ErrInvalidArgument
	}
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	o.normalize()

	s := &Stream{
		read:       bytes.NewReader(clone(segments[0])),
		next:       make([][]byte, 0, len(segments)-1),
		readFault:  o.ReadFault,
		writeFault: o.WriteFault,
		log:        o.Logger,
	}
	for _, seg := range segments[1:] {
		s.next = append(s.next, clone(seg))
	}
	return s, nil
}

// MustWithResponses is like NewWithResponses but panics on an empty script.
func MustWithResponses(segments ...[]byte) *Stream {
	s, err := NewWithResponses(segments)
	if err != nil {
		panic(err)
	}
	return s
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

// Push appends a segment to the tail of the read script.
func (s *Stream) Push(segment []byte) {
	s.next = append(s.next, clone(segment))
}

// advance replaces a drained current segment with the next queued one.
// It reports whether the script moved.
func (s *Stream) advance() bool {
	if s.read.Len() != 0 || len(s.next) == 0 {
		return false
	}
	s.read = bytes.NewReader(s.next[0])
	s.next[0] = nil
	s.next = s.next[1:]
	s.segment++
	s.log.Debug("netmock: next segment",
		zap.Int("segment", s.segment),
		zap.Int("len", s.read.Len()),
		zap.Int("pending", len(s.next)))
	return true
}

// Read implements io.Reader over the read script.
//
// It returns io.EOF only once every segment has been drained.
func (s *Stream) Read(p []byte) (int, error) {
	if s.FailReads {
		s.log.Debug("netmock: read fault", zap.Error(s.readFault))
		return 0, s.readFault
	}
	if len(p) == 0 {
		return 0, nil
	}
	// Skip over empty or drained segments so an empty segment never reads as EOF.
	for s.advance() {
	}
	n, err := s.read.Read(p)
	s.advance()
	return n, err
}

// Write implements io.Writer by appending p to the sink.
func (s *Stream) Write(p []byte) (int, error) {
	if s.FailWrites {
		s.log.Debug("netmock: write fault", zap.Error(s.writeFault))
		return 0, s.writeFault
	}
	return s.write.Write(p)
}

// Flush is a no-op; the sink is always observable.
func (s *Stream) Flush() error { return nil }

// CloseDirection marks the stream closed. It always succeeds, whatever how is.
func (s *Stream) CloseDirection(how Shutdown) error {
	s.closed = true
	s.how = how
	s.log.Debug("netmock: close", zap.Stringer("how", how))
	return nil
}

// Close implements io.Closer as CloseDirection(ShutdownBoth).
func (s *Stream) Close() error { return s.CloseDirection(ShutdownBoth) }

// PeerAddr returns the fixed loopback peer address.
func (s *Stream) PeerAddr() (net.Addr, error) { return peerAddr, nil }

// RemoteAddr implements net.Conn; it equals PeerAddr.
func (s *Stream) RemoteAddr() net.Addr { return peerAddr }

// LocalAddr implements net.Conn.
func (s *Stream) LocalAddr() net.Addr { return localAddr }

// SetReadTimeout records d. It never causes blocking.
func (s *Stream) SetReadTimeout(d time.Duration) error {
	s.readTimeout = d
	return nil
}

// SetWriteTimeout records d. It never causes blocking.
func (s *Stream) SetWriteTimeout(d time.Duration) error {
	s.writeTimeout = d
	return nil
}

// SetDeadline records t as both the read and the write deadline.
func (s *Stream) SetDeadline(t time.Time) error {
	s.readDeadline = t
	s.writeDeadline = t
	return nil
}

func (s *Stream) SetReadDeadline(t time.Time) error {
	s.readDeadline = t
	return nil
}

func (s *Stream) SetWriteDeadline(t time.Time) error {
	s.writeDeadline = t
	return nil
}

// ReadTimeout returns the last value passed to SetReadTimeout.
func (s *Stream) ReadTimeout() time.Duration { return s.readTimeout }

// WriteTimeout returns the last value passed to SetWriteTimeout.
func (s *Stream) WriteTimeout() time.Duration { return s.writeTimeout }

func (s *Stream) ReadDeadline() time.Time  { return s.readDeadline }
func (s *Stream) WriteDeadline() time.Time { return s.writeDeadline }

// Closed reports whether the stream has been closed in any direction.
func (s *Stream) Closed() bool { return s.closed }

// LastShutdown returns the direction of the most recent close, or zero if the
// stream was never closed.
func (s *Stream) LastShutdown() Shutdown { return s.how }

// Written returns a copy of everything written so far.
func (s *Stream) Written() []byte { return clone(s.write.Bytes()) }

// Unread returns a copy of the bytes left in the current segment.
func (s *Stream) Unread() []byte {
	rest := make([]byte, s.read.Len())
	off := s.read.Size() - int64(s.read.Len())
	_, _ = s.read.ReadAt(rest, off)
	return rest
}

// Pending returns the number of queued segments after the current one.
func (s *Stream) Pending() int { return len(s.next) }

// Equal reports whether s and other hold the same unread bytes in their current
// segments and the same written bytes. Queued segments, flags, timeouts and
// close state are ignored.
func (s *Stream) Equal(other *Stream) bool {
	if s == nil || other == nil {
		return s == other
	}
	return bytes.Equal(s.Unread(), other.Unread()) && bytes.Equal(s.write.Bytes(), other.write.Bytes())
}

var _ io.ReadWriteCloser = (*Stream)(nil)
