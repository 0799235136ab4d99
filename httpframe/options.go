// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpframe

import (
	"time"

	"go.uber.org/zap"
)

// DefaultMaxHeaderBytes caps the request line plus header block.
const DefaultMaxHeaderBytes = 8 << 10

// Options configures request parsing.
type Options struct {
	// MaxHeaderBytes caps the request head, CRLFs included. Zero or negative
	// selects DefaultMaxHeaderBytes.
	MaxHeaderBytes int

	// BodyLimit caps a declared Content-Length. Zero means no limit.
	BodyLimit int64

	// RetryDelay controls how the buffered reader handles iox.ErrWouldBlock from the underlying stream:
	//   - negative: nonblock, return ErrWouldBlock immediately
	//   - zero: yield (runtime.Gosched) and retry
	//   - positive: sleep for the duration and retry
	RetryDelay time.Duration

	// Logger receives framing decisions at debug level. Nil means no logging.
	Logger *zap.Logger
}

var defaultOptions = Options{
	MaxHeaderBytes: DefaultMaxHeaderBytes,
	BodyLimit:      0,
	RetryDelay:     -1, // default: nonblock
}

type Option func(*Options)

func WithMaxHeaderBytes(n int) Option {
	return func(o *Options) { o.MaxHeaderBytes = n }
}

func WithBodyLimit(n int64) Option {
	return func(o *Options) { o.BodyLimit = n }
}

// WithRetryDelay sets the retry/wait policy used when the underlying stream returns iox.ErrWouldBlock.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on iox.ErrWouldBlock.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock forces non-blocking behavior (return iox.ErrWouldBlock immediately).
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) Options {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.MaxHeaderBytes <= 0 {
		o.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
