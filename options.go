// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmock

import "go.uber.org/zap"

// Options configures a Stream.
type Options struct {
	// Logger receives debug-level trace events. Nil means no logging.
	Logger *zap.Logger

	// ReadFault is returned by Read while FailReads is armed.
	// Nil selects ErrInjected.
	ReadFault error

	// WriteFault is returned by Write while FailWrites is armed.
	// Nil selects ErrInjected.
	WriteFault error
}

var defaultOptions = Options{
	Logger:     nil,
	ReadFault:  ErrInjected,
	WriteFault: ErrInjected,
}

type Option func(*Options)

// WithLogger routes trace events (segment advance, injected faults, close) to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithReadFault sets the error returned by Read while FailReads is armed.
func WithReadFault(err error) Option {
	return func(o *Options) { o.ReadFault = err }
}

// WithWriteFault sets the error returned by Write while FailWrites is armed.
func WithWriteFault(err error) Option {
	return func(o *Options) { o.WriteFault = err }
}

// WithFault sets both the read and the write fault.
func WithFault(err error) Option {
	return func(o *Options) {
		o.ReadFault = err
		o.WriteFault = err
	}
}

func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.ReadFault == nil {
		o.ReadFault = ErrInjected
	}
	if o.WriteFault == nil {
		o.WriteFault = ErrInjected
	}
}
