package codepair

import (
	"bytes"
	"testing"
)

func writePairs(t *testing.T, pairs ...CodePair) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, p := range pairs {
		if err := w.WriteCodePair(p); err != nil {
			t.Fatalf("WriteCodePair(%v) failed: %v", p, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	return buf.String()
}

func TestWriterCanonicalForm(t *testing.T) {
	tests := []struct {
		name     string
		pair     CodePair
		expected string
	}{
		{"String", NewString(0, "SECTION"), "  0\nSECTION\n"},
		{"Short", NewShort(70, 3), " 70\n     3\n"},
		{"Integer", NewInt(90, 42), " 90\n       42\n"},
		{"Double", NewDouble(10, 1.5), " 10\n1.5\n"},
		{"Long", NewLong(160, 123), "160\n123\n"},
		{"Boolean", NewBool(290, 1), "290\n1\n"},
		{"XDataCode", NewString(1001, "ACAD"), "1001\nACAD\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := writePairs(t, tc.pair); got != tc.expected {
				t.Errorf("output = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestWriterEscapesStrings(t *testing.T) {
	got := writePairs(t, NewString(1, "a\x07b^c"))
	want := "  1\na^Gb^ c\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterReaderSymmetry(t *testing.T) {
	// whatever the writer emits, the reader accepts and reproduces
	in := []CodePair{
		NewString(0, "SECTION"),
		NewString(2, "ENTITIES"),
		NewDouble(10, 2.0e-9),
		NewShort(70, -1),
		NewInt(90, 1 << 20),
		NewString(1, "control\x01chars^here"),
		NewString(0, "EOF"),
	}
	text := writePairs(t, in...)
	out := readAll(t, text)
	if len(out) != len(in) {
		t.Fatalf("round trip yielded %d pairs, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Code != in[i].Code || out[i].Value != in[i].Value {
			t.Errorf("pair %d: wrote %v, read %v", i, in[i], out[i])
		}
	}
}
