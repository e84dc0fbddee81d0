package codepair

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// EscapeControlCharacters applies the DXF caret encoding: every code point at
// or below 0x1F becomes '^' followed by the character '@'+value ('@' for NUL,
// 'A' for 0x01, ... '_' for 0x1F), and a literal '^' becomes "^ ".
func EscapeControlCharacters(val string) string {
	var sb strings.Builder
	for _, c := range val {
		switch {
		case c <= 0x1F:
			sb.WriteByte('^')
			sb.WriteByte(byte('@' + c))
		case c == '^':
			sb.WriteString("^ ")
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// UnescapeControlCharacters reverses EscapeControlCharacters. An unrecognized
// character after '^' is kept as-is, and a lone '^' at the end of the input is
// dropped, matching what existing DXF consumers do.
func UnescapeControlCharacters(val string) string {
	if !strings.ContainsRune(val, '^') {
		return val
	}
	var sb strings.Builder
	sb.Grow(len(val))
	escaped := false
	for _, c := range val {
		if !escaped {
			if c == '^' {
				escaped = true
			} else {
				sb.WriteRune(c)
			}
			continue
		}
		escaped = false
		switch {
		case c >= '@' && c <= '_':
			sb.WriteByte(byte(c - '@'))
		case c == ' ':
			sb.WriteByte('^')
		default:
			// invalid escape sequence, just keep the character
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// EscapeUnicode rewrites every code point at or above 0x80 as \U+HHHH with the
// code point in uppercase hex. Code points outside the basic multilingual
// plane are emitted with more than four digits and cannot be read back by
// UnescapeUnicode; DXF string values are expected to stay within the BMP.
func EscapeUnicode(val string) string {
	var sb strings.Builder
	for _, c := range val {
		if c >= 0x80 {
			sb.WriteString(fmt.Sprintf("\\U+%04X", c))
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// UnescapeUnicode decodes \U+HHHH sequences back into their code points.
// Invalid hex digits and surrogate code points decode to '?'; a backslash
// that does not open a \U+ sequence passes through along with the six
// characters that were buffered behind it.
func UnescapeUnicode(val string) string {
	var sb strings.Builder
	var seq []rune
	inSequence := false
	sequenceStart := 0
	for i, c := range []rune(val) {
		if !inSequence {
			if c == '\\' {
				inSequence = true
				sequenceStart = i
				seq = seq[:0]
				seq = append(seq, c)
			} else {
				sb.WriteRune(c)
			}
			continue
		}
		seq = append(seq, c)
		if i == sequenceStart+6 {
			inSequence = false
			s := string(seq)
			if strings.HasPrefix(s, "\\U+") {
				decoded := '?'
				if code, err := strconv.ParseUint(s[3:], 16, 32); err == nil {
					if r := rune(code); !utf16.IsSurrogate(r) {
						decoded = r
					}
				}
				sb.WriteRune(decoded)
			} else {
				sb.WriteString(s)
			}
			seq = seq[:0]
		}
	}
	return sb.String()
}
