package codepair

import "fmt"

// Kind identifies which primitive a Value carries. The group code of the
// surrounding pair determines which kind the tokenizer produces.
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindLong
	KindShort
	KindDouble
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindLong:
		return "long"
	case KindShort:
		return "short"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the data portion of a CodePair: one of boolean, 16/32/64-bit
// integer, 64-bit float, or string. Equality is structural, so values are
// directly comparable with ==.
type Value struct {
	kind Kind
	num  int64
	dbl  float64
	str  string
}

func BoolValue(v int16) Value { return Value{kind: KindBoolean, num: int64(v)} }
func ShortValue(v int16) Value { return Value{kind: KindShort, num: int64(v)} }
func IntValue(v int32) Value { return Value{kind: KindInteger, num: int64(v)} }
func LongValue(v int64) Value { return Value{kind: KindLong, num: v} }
func DoubleValue(v float64) Value { return Value{kind: KindDouble, dbl: v} }
func StringValue(v string) Value { return Value{kind: KindString, str: v} }

// Kind reports the variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// String renders the value exactly the way the ASCII writer emits it:
// integers right-aligned to 9 columns, shorts to 6, doubles through
// FormatDouble, strings verbatim (escaping is the writer's concern).
func (v Value) String() string {
	switch v.kind {
	case KindBoolean:
		return fmt.Sprintf("%d", int16(v.num))
	case KindInteger:
		return fmt.Sprintf("%9d", int32(v.num))
	case KindLong:
		return fmt.Sprintf("%d", v.num)
	case KindShort:
		return fmt.Sprintf("%6d", int16(v.num))
	case KindDouble:
		return FormatDouble(v.dbl)
	default:
		return v.str
	}
}
