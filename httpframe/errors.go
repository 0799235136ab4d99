// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpframe

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	// ErrMalformed reports request bytes that violate HTTP/1.x message syntax.
	ErrMalformed = errors.New("httpframe: malformed request")

	// ErrTooLong reports a request head or declared body length above the configured limit.
	ErrTooLong = errors.New("httpframe: message too long")
)

var (
	// ErrWouldBlock is surfaced unchanged from a non-blocking stream when the
	// reader is configured with WithNonblock.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore is surfaced unchanged from the underlying stream.
	ErrMore = iox.ErrMore
)
