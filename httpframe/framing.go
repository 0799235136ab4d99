// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpframe

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strconv"

	"golang.org/x/net/http/httpguts"
)

// Framing is the rule that decides how many bytes make up a request body.
type Framing uint8

const (
	// NoBody: the request carries no body; bytes after the head stay unread.
	NoBody Framing = 1
	// LengthDelimited: the body is exactly Content-Length bytes.
	LengthDelimited Framing = 2
	// Chunked: the body uses chunked transfer coding.
	Chunked Framing = 3
)

func (f Framing) String() string {
	switch f {
	case NoBody:
		return "none"
	case LengthDelimited:
		return "length"
	case Chunked:
		return "chunked"
	default:
		return "unknown"
	}
}

// BodyFraming selects the body-reading strategy from the method and headers.
//
// Rules, in order:
//   - GET and HEAD never carry a body, whatever the headers say.
//   - Transfer-Encoding containing "chunked" selects Chunked; Content-Length is ignored.
//   - Content-Length selects LengthDelimited with that count.
//   - Otherwise there is no body.
//
// The returned length is meaningful only for LengthDelimited.
func BodyFraming(method string, h http.Header) (Framing, int64, error) {
	switch method {
	case http.MethodGet, http.MethodHead:
		return NoBody, 0, nil
	}
	if httpguts.HeaderValuesContainsToken(h["Transfer-Encoding"], "chunked") {
		return Chunked, -1, nil
	}
	values := h["Content-Length"]
	if len(values) == 0 {
		return NoBody, 0, nil
	}
	n, err := parseContentLength(values)
	if err != nil {
		return 0, 0, err
	}
	return LengthDelimited, n, nil
}

// parseContentLength accepts repeated headers only when every value agrees.
func parseContentLength(values []string) (int64, error) {
	n := int64(-1)
	for _, v := range values {
		if v == "" {
			return 0, fmt.Errorf("%w: empty Content-Length", ErrMalformed)
		}
		for i := 0; i < len(v); i++ {
			if v[i] < '0' || v[i] > '9' {
				return 0, fmt.Errorf("%w: bad Content-Length %q", ErrMalformed, v)
			}
		}
		m, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad Content-Length %q", ErrMalformed, v)
		}
		if n >= 0 && m != n {
			return 0, fmt.Errorf("%w: conflicting Content-Length values", ErrMalformed)
		}
		n = m
	}
	return n, nil
}

// NewBodyReader returns a reader over the body framed by f.
// For LengthDelimited it yields exactly n bytes and leaves the rest of br unread.
func NewBodyReader(br *bufio.Reader, f Framing, n int64) io.Reader {
	switch f {
	case LengthDelimited:
		if n == 0 {
			return http.NoBody
		}
		return &lengthReader{rd: br, remaining: n}
	case Chunked:
		return &chunkedReader{br: br, cr: httputil.NewChunkedReader(br)}
	default:
		return http.NoBody
	}
}

type lengthReader struct {
	rd        io.Reader
	remaining int64
}

func (r *lengthReader) Read(p []byte) (n int, err error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}
	n, err = r.rd.Read(p)
	r.remaining -= int64(n)
	if err == io.EOF {
		if r.remaining > 0 {
			// Stream ended before the declared length.
			return n, io.ErrUnexpectedEOF
		}
		err = nil
	}
	return n, err
}

// chunkedReader decodes a chunked body and consumes its trailer section, so
// the next request on br starts at the right byte.
type chunkedReader struct {
	br      *bufio.Reader
	cr      io.Reader
	trailer bool
}

func (r *chunkedReader) Read(p []byte) (n int, err error) {
	n, err = r.cr.Read(p)
	if err == io.EOF && !r.trailer {
		h := &headReader{br: r.br, max: DefaultMaxHeaderBytes}
		for {
			line, le := h.readLine()
			if le == io.EOF {
				return n, io.ErrUnexpectedEOF
			}
			if le != nil {
				return n, le
			}
			if line == "" {
				break
			}
		}
		r.trailer = true
	}
	return n, err
}
