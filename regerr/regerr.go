// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package regerr defines the error kinds of regaccess: LogicError for
// preconditions the caller can fix, RuntimeError for transient or
// environmental faults that also drive the async fan-out in
// async/exception, and the codec-specific ConversionOverflow and
// InvalidArgument kinds.
package regerr

import "github.com/pkg/errors"

// Kind classifies an error raised by this module.
type Kind int

const (
	// LogicKind marks a precondition the caller can and must fix: a bad map
	// file, an unknown register, raw mode requested on a non-raw type, and
	// so on.
	LogicKind Kind = iota

	// RuntimeKind marks a transient or environmental fault: open failed, a
	// transport read/write failed, a UIO read came back short. These are
	// the only errors that propagate into async subscribers.
	RuntimeKind

	// ConversionOverflowKind marks a cooked-range overflow detected by a
	// codec on a raw-to-cooked conversion.
	ConversionOverflowKind

	// InvalidArgumentKind marks a cooked value, usually a string, that a
	// codec could not parse on a cooked-to-raw conversion.
	InvalidArgumentKind
)

func (k Kind) String() string {
	switch k {
	case LogicKind:
		return "logic error"
	case RuntimeKind:
		return "runtime error"
	case ConversionOverflowKind:
		return "conversion overflow"
	case InvalidArgumentKind:
		return "invalid argument"
	default:
		return "error"
	}
}

// Error is a regaccess error tagged with a Kind.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.kind.String() + ": " + e.msg + ": " + e.err.Error()
	}
	return e.kind.String() + ": " + e.msg
}

// Unwrap allows errors.Is/errors.As to reach a wrapped transport cause.
func (e *Error) Unwrap() error {
	return e.err
}

// Classify returns the Kind of err, defaulting to RuntimeKind for any error
// that did not originate in this package.
func Classify(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return RuntimeKind
}

// Logic constructs a LogicError with the given message.
func Logic(format string, args ...any) error {
	return &Error{kind: LogicKind, msg: errors.Errorf(format, args...).Error()}
}

// Runtime constructs a RuntimeError with the given message.
func Runtime(format string, args ...any) error {
	return &Error{kind: RuntimeKind, msg: errors.Errorf(format, args...).Error()}
}

// WrapRuntime wraps cause as a RuntimeError, preserving it for
// errors.Unwrap/errors.As.
func WrapRuntime(cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &Error{kind: RuntimeKind, msg: errors.Errorf(format, args...).Error(), err: cause}
}

// ConversionOverflow constructs the error raised when a raw-to-cooked
// conversion cannot represent the value in the target cooked type.
func ConversionOverflow(format string, args ...any) error {
	return &Error{kind: ConversionOverflowKind, msg: errors.Errorf(format, args...).Error()}
}

// InvalidArgument constructs the error raised when a cooked-to-raw
// conversion is given a value (typically a string) that cannot be parsed.
func InvalidArgument(format string, args ...any) error {
	return &Error{kind: InvalidArgumentKind, msg: errors.Errorf(format, args...).Error()}
}

// IsLogic reports whether err is a LogicError.
func IsLogic(err error) bool { return Classify(err) == LogicKind }

// IsRuntime reports whether err is a RuntimeError.
func IsRuntime(err error) bool { return Classify(err) == RuntimeKind }
