package codepair

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// PairReader is the producer side of the pair stream. Next returns io.EOF
// when the underlying input is cleanly exhausted.
type PairReader interface {
	Next() (CodePair, error)
}

// Reader tokenizes ASCII DXF: each pair is a group-code line followed by a
// value line, with the group code selecting the value's type. Comment pairs
// (group 999) are skipped. Both LF and CRLF line endings are accepted.
type Reader struct {
	br   *bufio.Reader
	line int
}

// NewReader wraps r in a tokenizer. The caller keeps ownership of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next code pair, io.EOF at clean end of input, or
// ErrUnexpectedEndOfInput if the input stops between a code and its value.
func (r *Reader) Next() (CodePair, error) {
	for {
		codeLine, err := r.readLine()
		if err != nil {
			return CodePair{}, err
		}
		offset := r.line
		trimmed := strings.TrimSpace(codeLine)
		if trimmed == "" {
			// tolerate a trailing blank line at end of input
			if _, err := r.br.Peek(1); err == io.EOF {
				return CodePair{}, io.EOF
			}
			return CodePair{}, &UnexpectedCodePairError{
				Pair:    CodePair{Value: StringValue(codeLine), Offset: offset},
				Message: "expected group code",
			}
		}
		code, err := strconv.Atoi(trimmed)
		if err != nil {
			return CodePair{}, &UnexpectedCodePairError{
				Pair:    CodePair{Value: StringValue(codeLine), Offset: offset},
				Message: "malformed group code",
			}
		}
		valueLine, err := r.readLine()
		if err != nil {
			if err == io.EOF {
				return CodePair{}, ErrUnexpectedEndOfInput
			}
			return CodePair{}, err
		}
		if code == 999 {
			continue
		}
		value, err := parseValue(code, valueLine, offset)
		if err != nil {
			return CodePair{}, err
		}
		return CodePair{Code: code, Value: value, Offset: offset}, nil
	}
}

// readLine returns the next line without its terminator and advances the
// line counter. io.EOF is only returned for a truly empty read.
func (r *Reader) readLine() (string, error) {
	s, err := r.br.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	r.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

func parseValue(code int, raw string, offset int) (Value, error) {
	kind := KindForCode(code)
	if kind == KindString {
		return StringValue(UnescapeUnicode(UnescapeControlCharacters(raw))), nil
	}
	trimmed := strings.TrimSpace(raw)
	malformed := func() error {
		return &UnexpectedCodePairError{
			Pair:    CodePair{Code: code, Value: StringValue(raw), Offset: offset},
			Message: "malformed " + kind.String() + " value",
		}
	}
	switch kind {
	case KindBoolean:
		n, err := strconv.ParseInt(trimmed, 10, 16)
		if err != nil {
			return Value{}, malformed()
		}
		return BoolValue(int16(n)), nil
	case KindShort:
		n, err := strconv.ParseInt(trimmed, 10, 16)
		if err != nil {
			return Value{}, malformed()
		}
		return ShortValue(int16(n)), nil
	case KindInteger:
		n, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return Value{}, malformed()
		}
		return IntValue(int32(n)), nil
	case KindLong:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return Value{}, malformed()
		}
		return LongValue(n), nil
	default: // KindDouble
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, malformed()
		}
		return DoubleValue(f), nil
	}
}

// KindForCode maps a group code to the value kind it carries, per the DXF
// group code ranges. Codes outside every documented range are read as
// strings so that unrecognized sections written by other tools still load.
func KindForCode(code int) Kind {
	switch {
	case code >= 0 && code <= 9:
		return KindString
	case code >= 10 && code <= 59:
		return KindDouble
	case code >= 60 && code <= 79:
		return KindShort
	case code >= 90 && code <= 99:
		return KindInteger
	case code >= 100 && code <= 109:
		return KindString
	case code >= 110 && code <= 149:
		return KindDouble
	case code >= 160 && code <= 169:
		return KindLong
	case code >= 170 && code <= 179:
		return KindShort
	case code >= 210 && code <= 239:
		return KindDouble
	case code >= 270 && code <= 289:
		return KindShort
	case code >= 290 && code <= 299:
		return KindBoolean
	case code >= 300 && code <= 369:
		return KindString
	case code >= 370 && code <= 389:
		return KindShort
	case code >= 390 && code <= 399:
		return KindString
	case code >= 400 && code <= 409:
		return KindShort
	case code >= 410 && code <= 419:
		return KindString
	case code >= 420 && code <= 429:
		return KindInteger
	case code >= 430 && code <= 439:
		return KindString
	case code >= 440 && code <= 449:
		return KindInteger
	case code >= 450 && code <= 459:
		return KindLong
	case code >= 460 && code <= 469:
		return KindDouble
	case code >= 470 && code <= 481:
		return KindString
	case code == 999:
		return KindString
	case code >= 1000 && code <= 1009:
		return KindString
	case code >= 1010 && code <= 1059:
		return KindDouble
	case code >= 1060 && code <= 1070:
		return KindShort
	case code == 1071:
		return KindInteger
	default:
		return KindString
	}
}
