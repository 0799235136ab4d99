// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package httpframe parses an HTTP/1.x request head from a buffered stream and
// frames its body.
//
// Semantics:
//   - Wire format: a request line (method, target, version) and a header block
//     terminated by an empty line, every line ending in CRLF.
//   - Body framing: GET and HEAD have no body; chunked transfer coding wins over
//     Content-Length; Content-Length reads exactly that many bytes. Bytes after
//     the framed body are never consumed by the body reader.
//   - Connection end: io.EOF before the first byte of a request is returned as-is
//     and means the peer is done. io.EOF inside a request head is
//     io.ErrUnexpectedEOF.
//   - Stream errors, including ErrWouldBlock in non-blocking mode, propagate
//     unchanged. A request whose head read failed cannot be resumed.
package httpframe

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"
)

// Request is a parsed request head with a framed body.
type Request struct {
	Method     string
	Target     string
	Proto      string // "HTTP/1.1"
	ProtoMajor int
	ProtoMinor int
	Header     http.Header

	// Framing and ContentLength describe the body. ContentLength is -1 for
	// chunked bodies and 0 when there is no body.
	Framing       Framing
	ContentLength int64

	RemoteAddr net.Addr

	// Body yields exactly the framed body bytes, then io.EOF.
	Body io.Reader
}

// ReadAll drains the body and returns it as a string.
func (r *Request) ReadAll() (string, error) {
	b, err := io.ReadAll(r.Body)
	return string(b), err
}

var crlf = []byte("\r\n")

type headReader struct {
	br  *bufio.Reader
	max int
	n   int
}

// readLine returns the next CRLF-terminated line without its terminator.
func (h *headReader) readLine() (string, error) {
	var line []byte
	for {
		chunk, err := h.br.ReadSlice('\n')
		h.n += len(chunk)
		if h.n > h.max {
			return "", ErrTooLong
		}
		line = append(line, chunk...)
		if err == nil {
			break
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF {
			if h.n == 0 {
				return "", io.EOF
			}
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	if !bytes.HasSuffix(line, crlf) {
		return "", fmt.Errorf("%w: line not terminated by CRLF", ErrMalformed)
	}
	return string(line[:len(line)-len(crlf)]), nil
}

// ReadRequest reads one request head from br and installs a body reader for it.
// remote is recorded as the request's RemoteAddr.
func ReadRequest(br *bufio.Reader, remote net.Addr, opts ...Option) (*Request, error) {
	o := buildOptions(opts)
	h := &headReader{br: br, max: o.MaxHeaderBytes}

	line, err := h.readLine()
	if err != nil {
		return nil, err
	}
	req, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}
	req.RemoteAddr = remote

	if req.Header, err = readHeader(h); err != nil {
		return nil, err
	}

	req.Framing, req.ContentLength, err = BodyFraming(req.Method, req.Header)
	if err != nil {
		return nil, err
	}
	if o.BodyLimit > 0 && req.ContentLength > o.BodyLimit {
		return nil, ErrTooLong
	}
	req.Body = NewBodyReader(br, req.Framing, req.ContentLength)

	o.Logger.Debug("httpframe: request",
		zap.String("method", req.Method),
		zap.String("target", req.Target),
		zap.Stringer("framing", req.Framing),
		zap.Int64("content_length", req.ContentLength))
	return req, nil
}

func parseRequestLine(line string) (*Request, error) {
	method, rest, ok1 := strings.Cut(line, " ")
	target, proto, ok2 := strings.Cut(rest, " ")
	if !ok1 || !ok2 || method == "" || target == "" {
		return nil, fmt.Errorf("%w: request line %q", ErrMalformed, line)
	}
	if !httpguts.ValidHeaderFieldName(method) {
		return nil, fmt.Errorf("%w: method %q", ErrMalformed, method)
	}
	major, minor, ok := http.ParseHTTPVersion(proto)
	if !ok {
		return nil, fmt.Errorf("%w: version %q", ErrMalformed, proto)
	}
	return &Request{
		Method:     method,
		Target:     target,
		Proto:      proto,
		ProtoMajor: major,
		ProtoMinor: minor,
	}, nil
}

func readHeader(h *headReader) (http.Header, error) {
	hdr := make(http.Header)
	for {
		line, err := h.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return hdr, nil
		}
		if line[0] == ' ' || line[0] == '\t' {
			// Obsolete line folding.
			return nil, fmt.Errorf("%w: folded header line", ErrMalformed)
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !httpguts.ValidHeaderFieldName(name) {
			return nil, fmt.Errorf("%w: header line %q", ErrMalformed, line)
		}
		value = textproto.TrimString(value)
		if !httpguts.ValidHeaderFieldValue(value) {
			return nil, fmt.Errorf("%w: header %q value", ErrMalformed, name)
		}
		hdr.Add(name, value)
	}
}
