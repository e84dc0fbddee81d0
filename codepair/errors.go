package codepair

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEndOfInput is returned when the stream runs out in the middle
// of a structure (a value line, a section body, an open control group).
var ErrUnexpectedEndOfInput = errors.New("unexpected end of input")

// ErrMalformedHandle is returned when a handle value is not valid hex.
var ErrMalformedHandle = errors.New("malformed handle")

// ErrMalformedHexData is returned when binary data is not valid hex.
var ErrMalformedHexData = errors.New("malformed hex data")

// UnexpectedCodePairError reports a grammar violation at a specific pair.
type UnexpectedCodePairError struct {
	Pair    CodePair
	Message string
}

func (e *UnexpectedCodePairError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected code pair %d/%s at line %d", e.Pair.Code, e.Pair.Value.String(), e.Pair.Offset)
	}
	return fmt.Sprintf("unexpected code pair %d/%s at line %d: %s", e.Pair.Code, e.Pair.Value.String(), e.Pair.Offset, e.Message)
}

// UnexpectedCodeError reports a group code that is out of range for its
// context, notably inside XDATA.
type UnexpectedCodeError struct {
	Code   int
	Offset int
}

func (e *UnexpectedCodeError) Error() string {
	return fmt.Sprintf("unexpected group code %d at line %d", e.Code, e.Offset)
}

// WrongValueTypeError reports an asserter called on a value whose kind does
// not match the one the group code calls for.
type WrongValueTypeError struct {
	Expected Kind
	Actual   Kind
	Code     int
	Offset   int
}

func (e *WrongValueTypeError) Error() string {
	return fmt.Sprintf("group code %d at line %d holds a %s value, not a %s", e.Code, e.Offset, e.Actual, e.Expected)
}
