// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpframe

import (
	"bufio"
	"io"
	"runtime"
	"time"
)

// NewBufferedReader returns the buffering adapter the parser reads through.
//
// The adapter sits between bufio and r and applies the RetryDelay policy to
// iox.ErrWouldBlock. It also turns a (0, nil) result on a non-empty buffer into
// io.ErrNoProgress so a broken stream cannot spin the parser.
func NewBufferedReader(r io.Reader, opts ...Option) *bufio.Reader {
	o := buildOptions(opts)
	return bufio.NewReader(&retryReader{rd: r, retryDelay: o.RetryDelay})
}

type retryReader struct {
	rd         io.Reader
	retryDelay time.Duration
}

func (r *retryReader) waitOnceOnWouldBlock() bool {
	// returns whether the caller should retry
	if r.retryDelay < 0 {
		return false
	}
	if r.retryDelay == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(r.retryDelay)
	return true
}

func (r *retryReader) Read(p []byte) (n int, err error) {
	for {
		n, err = r.rd.Read(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		if n > 0 {
			return n, err
		}
		if err != ErrWouldBlock {
			return n, err
		}
		if !r.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}
