// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmock

import (
	"errors"

	"code.hybscloud.com/iox"
)

var (
	// ErrInvalidArgument reports an invalid configuration, such as an empty read script.
	ErrInvalidArgument = errors.New("netmock: invalid argument")

	// ErrInjected is the generic I/O failure returned by an armed Stream when no
	// other fault has been configured.
	ErrInjected = errors.New("netmock: injected I/O error")
)

// These are provided as package-level aliases so tests can arm semantic
// control-flow faults without importing iox directly.
var (
	// ErrWouldBlock means “no further progress without waiting”.
	//
	// Arm it with WithReadFault or WithWriteFault to drive a caller's
	// non-blocking path.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means “this completion is usable and more completions will follow”.
	ErrMore = iox.ErrMore
)
