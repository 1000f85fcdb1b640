// Package chiperr defines the fatal/warning error taxonomy shared by every
// component of the interpreter. It mirrors the enum from the C original this
// machine was ported from (errcode.h), translated into idiomatic Go errors
// instead of a bare int code.
package chiperr

import "fmt"

// Code identifies a class of failure. The zero value never appears on a
// constructed Error.
type Code int

const (
	// TimeSourceError means the monotonic clock read failed.
	TimeSourceError Code = iota + 1
	// FrameOverrun means a single instruction exceeded the per-cycle budget.
	FrameOverrun
	// UnsupportedOpcode means the decoder saw an opcode outside the table.
	UnsupportedOpcode
	// StackOverflow means CALL was attempted with a full stack.
	StackOverflow
	// StackUnderflow means RET was attempted with an empty stack.
	StackUnderflow
	// RomTooLarge means the ROM does not fit in [0x200, 0x1000).
	RomTooLarge
	// RomEmpty means the ROM contained zero bytes.
	RomEmpty
	// RomIoError means the ROM could not be read from disk.
	RomIoError
	// TerminalError means the terminal collaborator (internal/termio)
	// could not be put into raw mode. Distinct from TimeSourceError: this
	// is a collaborator-setup failure, not a monotonic clock failure.
	TerminalError
)

var names = map[Code]string{
	TimeSourceError:   "TimeSourceError",
	FrameOverrun:      "FrameOverrun",
	UnsupportedOpcode: "UnsupportedOpcode",
	StackOverflow:     "StackOverflow",
	StackUnderflow:    "StackUnderflow",
	RomTooLarge:       "RomTooLarge",
	RomEmpty:          "RomEmpty",
	RomIoError:        "RomIoError",
	TerminalError:     "TerminalError",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// ExitStatus maps a taxonomy code to a process exit status. 0 is reserved
// for clean exit and is never returned here.
func (c Code) ExitStatus() int {
	return int(c)
}

// Error wraps a taxonomy Code with context. All fatal conditions raised by
// the interpreter are *Error values so the top level can map them to an
// exit code without string matching.
type Error struct {
	Code Code
	Err  error
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the taxonomy Code from err, if any, and whether it matched.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if err == nil {
		return 0, false
	}
	if ce, ok := err.(*Error); ok {
		e = ce
	} else {
		return 0, false
	}
	return e.Code, true
}
