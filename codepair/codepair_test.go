package codepair

import (
	"errors"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"Integer", IntValue(42), "       42"},
		{"Short", ShortValue(7), "     7"},
		{"Long", LongValue(1234567890123), "1234567890123"},
		{"Boolean", BoolValue(1), "1"},
		{"Double", DoubleValue(11.0), "11.0"},
		{"String", StringValue("LAYER"), "LAYER"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.String(); got != tc.expected {
				t.Errorf("String() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestAsserters(t *testing.T) {
	p := CodePair{Code: 1, Value: StringValue("hello"), Offset: 3}
	if s, err := p.AssertString(); err != nil || s != "hello" {
		t.Errorf("AssertString() = %q, %v", s, err)
	}
	if _, err := p.AssertDouble(); err == nil {
		t.Error("AssertDouble() on a string value should fail")
	} else {
		var wvt *WrongValueTypeError
		if !errors.As(err, &wvt) {
			t.Errorf("AssertDouble() error = %T, want *WrongValueTypeError", err)
		} else if wvt.Code != 1 || wvt.Offset != 3 {
			t.Errorf("error carries code %d offset %d, want 1/3", wvt.Code, wvt.Offset)
		}
	}

	// booleans satisfy the short assertion
	b := CodePair{Code: 290, Value: BoolValue(1), Offset: 9}
	if v, err := b.AssertShort(); err != nil || v != 1 {
		t.Errorf("AssertShort() on boolean = %d, %v", v, err)
	}

	d := CodePair{Code: 40, Value: DoubleValue(2.5), Offset: 4}
	if v, err := d.AssertDouble(); err != nil || v != 2.5 {
		t.Errorf("AssertDouble() = %v, %v", v, err)
	}
	i := CodePair{Code: 90, Value: IntValue(-12), Offset: 5}
	if v, err := i.AssertInteger(); err != nil || v != -12 {
		t.Errorf("AssertInteger() = %v, %v", v, err)
	}
	l := CodePair{Code: 160, Value: LongValue(1 << 40), Offset: 6}
	if v, err := l.AssertLong(); err != nil || v != 1<<40 {
		t.Errorf("AssertLong() = %v, %v", v, err)
	}
}

func TestHandle(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
		wantErr  bool
	}{
		{"A1", 0xA1, false},
		{"deadbeef", 0xDEADBEEF, false},
		{"0", 0, false},
		{"FFFFFFFF", 0xFFFFFFFF, false},
		{"xyz", 0, true},
		{"", 0, true},
		{"100000000", 0, true}, // does not fit in 32 bits
	}
	for _, tc := range tests {
		t.Run("Input_"+tc.input, func(t *testing.T) {
			p := CodePair{Code: 5, Value: StringValue(tc.input), Offset: 1}
			got, err := p.Handle()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Handle(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedHandle) {
					t.Errorf("Handle(%q) error = %v, want ErrMalformedHandle", tc.input, err)
				}
				return
			}
			if got != tc.expected {
				t.Errorf("Handle(%q) = %X, want %X", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input    string
		expected []byte
		wantErr  bool
	}{
		{"0102FF", []byte{0x01, 0x02, 0xFF}, false},
		{"ABC", []byte{0x0A, 0xBC}, false}, // odd length: first digit alone forms the first byte
		{"", []byte{}, false},
		{"GG", nil, true},
	}
	for _, tc := range tests {
		t.Run("Input_"+tc.input, func(t *testing.T) {
			got, err := ParseHex(tc.input, 1)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedHexData) {
					t.Errorf("ParseHex(%q) error = %v, want ErrMalformedHexData", tc.input, err)
				}
				return
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("ParseHex(%q) = %v, want %v", tc.input, got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("ParseHex(%q)[%d] = %02X, want %02X", tc.input, i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestFormatHexAndHandle(t *testing.T) {
	if got := FormatHex([]byte{0x01, 0xAB, 0xFF}); got != "01ABFF" {
		t.Errorf("FormatHex = %q, want 01ABFF", got)
	}
	if got := FormatHandle(0xABC); got != "ABC" {
		t.Errorf("FormatHandle = %q, want ABC", got)
	}
}
