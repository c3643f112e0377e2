package codec

// Error taxonomy shared by every encode and decode path.

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated          = errors.New("dis: truncated input")
	ErrUnsupportedPDUType = errors.New("dis: unsupported pdu type")
	ErrLengthMismatch     = errors.New("dis: length mismatch")
	ErrValueOutOfRange    = errors.New("dis: value out of range")
	ErrMalformedRecord    = errors.New("dis: malformed variable-length record")
)

// Error carries the detail of a codec failure. Kind is one of the sentinel
// errors above and is what errors.Is matches against.
type Error struct {
	Kind   error
	What   string
	Need   int
	Have   int
	Offset int
	Detail string
}

func (e *Error) Error() string {
	what := e.What
	if what == "" {
		what = "pdu"
	}
	switch e.Kind {
	case ErrTruncated:
		return fmt.Sprintf("%s truncated at offset %d: %d bytes available (need %d)", what, e.Offset, e.Have, e.Need)
	case ErrLengthMismatch:
		return fmt.Sprintf("%s length mismatch: declared %d, actual %d", what, e.Need, e.Have)
	case ErrValueOutOfRange:
		if e.Detail != "" {
			return fmt.Sprintf("%s out of range: %s", what, e.Detail)
		}
		return fmt.Sprintf("%s out of range: %d (max %d)", what, e.Have, e.Need)
	case ErrMalformedRecord:
		return fmt.Sprintf("%s malformed at offset %d: %s", what, e.Offset, e.Detail)
	case ErrUnsupportedPDUType:
		return fmt.Sprintf("unsupported pdu type %d", e.Have)
	}
	return fmt.Sprintf("%s: %v", what, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Truncated reports that need bytes were required at off but only have remained.
func Truncated(what string, need, have, off int) *Error {
	return &Error{Kind: ErrTruncated, What: what, Need: need, Have: have, Offset: off}
}

// Unsupported reports a pdu type code with no body layout.
func Unsupported(code uint8) *Error {
	return &Error{Kind: ErrUnsupportedPDUType, Have: int(code)}
}

// LengthMismatch reports a declared length that disagrees with the bytes
// actually consumed or produced.
func LengthMismatch(what string, declared, actual int) *Error {
	return &Error{Kind: ErrLengthMismatch, What: what, Need: declared, Have: actual}
}

// OutOfRange reports a value that does not fit its wire width.
func OutOfRange(what string, value, max int) *Error {
	return &Error{Kind: ErrValueOutOfRange, What: what, Need: max, Have: value}
}

// OutOfRangef is OutOfRange with a free-form explanation.
func OutOfRangef(what, format string, args ...any) *Error {
	return &Error{Kind: ErrValueOutOfRange, What: what, Detail: fmt.Sprintf(format, args...)}
}

// Malformed reports a count or size field that cannot be honoured.
func Malformed(what string, off int, format string, args ...any) *Error {
	return &Error{Kind: ErrMalformedRecord, What: what, Offset: off, Detail: fmt.Sprintf(format, args...)}
}

// Annotate names the structure an error happened in, unless a more specific
// name was already recorded.
func Annotate(err error, what string) error {
	var e *Error
	if errors.As(err, &e) && e.What == "" {
		e.What = what
	}
	return err
}

// KindName names the failure class of err for counters and reports:
// truncated, unsupported, length_mismatch, malformed, out_of_range, or
// other when err is not a codec error.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrUnsupportedPDUType):
		return "unsupported"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, ErrValueOutOfRange):
		return "out_of_range"
	}
	return "other"
}
