package dxfio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/dxfio/codepair"
)

// readXDataString parses one XDATA block out of a raw pair stream whose
// first pair is the 1001/<appname> boundary.
func readXDataString(t *testing.T, text string) (XData, error) {
	t.Helper()
	iter := codepair.NewPutBack(codepair.NewReader(strings.NewReader(text)))
	first, err := iter.Next()
	require.NoError(t, err)
	name, err := first.AssertString()
	require.NoError(t, err)
	return readXData(name, iter)
}

func TestReadXDataScalars(t *testing.T) {
	xdata, err := readXDataString(t, dxfText(
		"1001", "ACAD",
		"1000", "text item",
		"1003", "LAYER_0",
		"1004", "01FF",
		"1005", "A2",
		"1040", "3.5",
		"1041", "4.5",
		"1042", "5.5",
		"1070", "12",
		"1071", "70000",
	))
	require.NoError(t, err)
	assert.Equal(t, "ACAD", xdata.ApplicationName)
	require.Len(t, xdata.Items, 9)
	assert.Equal(t, &XDataStr{Value: "text item"}, xdata.Items[0])
	assert.Equal(t, &XDataLayerName{Name: "LAYER_0"}, xdata.Items[1])
	assert.Equal(t, &XDataBinary{Data: []byte{0x01, 0xFF}}, xdata.Items[2])
	assert.Equal(t, &XDataHandle{Handle: 0xA2}, xdata.Items[3])
	assert.Equal(t, &XDataReal{Value: 3.5}, xdata.Items[4])
	assert.Equal(t, &XDataDistance{Value: 4.5}, xdata.Items[5])
	assert.Equal(t, &XDataScaleFactor{Value: 5.5}, xdata.Items[6])
	assert.Equal(t, &XDataInteger{Value: 12}, xdata.Items[7])
	assert.Equal(t, &XDataLong{Value: 70000}, xdata.Items[8])
}

func TestReadXDataTriples(t *testing.T) {
	xdata, err := readXDataString(t, dxfText(
		"1001", "APP",
		"1010", "1.0",
		"1010", "2.0",
		"1010", "3.0",
		"1011", "4.0",
		"1011", "5.0",
		"1011", "6.0",
		"1012", "7.0",
		"1012", "8.0",
		"1012", "9.0",
		"1013", "0.5",
		"1013", "0.5",
		"1013", "0.0",
	))
	require.NoError(t, err)
	require.Len(t, xdata.Items, 4)
	assert.Equal(t, &XDataThreeReals{X: 1, Y: 2, Z: 3}, xdata.Items[0])
	assert.Equal(t, &XDataWorldSpacePosition{Location: Point{4, 5, 6}}, xdata.Items[1])
	assert.Equal(t, &XDataWorldSpaceDisplacement{Location: Point{7, 8, 9}}, xdata.Items[2])
	assert.Equal(t, &XDataWorldDirection{Direction: Vector{0.5, 0.5, 0}}, xdata.Items[3])
}

func TestReadXDataNestedControlGroups(t *testing.T) {
	xdata, err := readXDataString(t, dxfText(
		"1001", "APP",
		"1002", "{",
		"1000", "outer",
		"1002", "{",
		"1070", "1",
		"1002", "}",
		"1002", "}",
	))
	require.NoError(t, err)
	require.Len(t, xdata.Items, 1)
	outer, ok := xdata.Items[0].(*XDataControlGroup)
	require.True(t, ok)
	require.Len(t, outer.Items, 2)
	assert.Equal(t, &XDataStr{Value: "outer"}, outer.Items[0])
	inner, ok := outer.Items[1].(*XDataControlGroup)
	require.True(t, ok)
	assert.Equal(t, []XDataItem{&XDataInteger{Value: 1}}, inner.Items)
}

func TestReadXDataStopsAtBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		extra     []string
		wantItems int
		wantNext  int // code of the pair left for the caller
	}{
		{"NextObject", []string{"0", "LINE"}, 1, 0},
		{"NextApplication", []string{"1001", "OTHER"}, 1, 1001},
		{"NonXDataCode", []string{"8", "LAYER_1"}, 1, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := append([]string{"1001", "APP", "1000", "payload"}, tc.extra...)
			iter := codepair.NewPutBack(codepair.NewReader(strings.NewReader(dxfText(lines...))))
			first, err := iter.Next()
			require.NoError(t, err)
			name, err := first.AssertString()
			require.NoError(t, err)
			xdata, err := readXData(name, iter)
			require.NoError(t, err)
			assert.Len(t, xdata.Items, tc.wantItems)
			next, err := iter.Next()
			require.NoError(t, err)
			assert.Equal(t, tc.wantNext, next.Code)
		})
	}
}

func TestReadXDataEndOfStream(t *testing.T) {
	xdata, err := readXDataString(t, dxfText(
		"1001", "APP",
		"1000", "last item",
	))
	require.NoError(t, err)
	assert.Len(t, xdata.Items, 1)
}

func TestReadXDataErrors(t *testing.T) {
	t.Run("UnexpectedCode", func(t *testing.T) {
		_, err := readXDataString(t, dxfText(
			"1001", "APP",
			"1020", "1.0",
		))
		var uc *codepair.UnexpectedCodeError
		require.True(t, errors.As(err, &uc), "error = %v", err)
		assert.Equal(t, 1020, uc.Code)
	})
	t.Run("LowCodeInsideControlGroup", func(t *testing.T) {
		_, err := readXDataString(t, dxfText(
			"1001", "APP",
			"1002", "{",
			"8", "LAYER",
		))
		var ucp *codepair.UnexpectedCodePairError
		require.True(t, errors.As(err, &ucp), "error = %v", err)
	})
	t.Run("UnterminatedControlGroup", func(t *testing.T) {
		_, err := readXDataString(t, dxfText(
			"1001", "APP",
			"1002", "{",
			"1000", "dangling",
		))
		assert.True(t, errors.Is(err, codepair.ErrUnexpectedEndOfInput), "error = %v", err)
	})
	t.Run("TruncatedTriple", func(t *testing.T) {
		_, err := readXDataString(t, dxfText(
			"1001", "APP",
			"1010", "1.0",
			"1010", "2.0",
		))
		assert.True(t, errors.Is(err, codepair.ErrUnexpectedEndOfInput), "error = %v", err)
	})
}

func TestWriteXDataVersionGate(t *testing.T) {
	xdata := XData{
		ApplicationName: "APP",
		Items: []XDataItem{
			&XDataBinary{Data: []byte{0xAB, 0x01}},
			&XDataControlGroup{Items: []XDataItem{&XDataStr{Value: "in"}}},
		},
	}

	var old bytes.Buffer
	w := codepair.NewWriter(&old)
	require.NoError(t, xdata.write(R14, w))
	require.NoError(t, w.Flush())
	assert.Empty(t, old.String(), "XDATA must not be emitted before R2000")

	var buf bytes.Buffer
	w = codepair.NewWriter(&buf)
	require.NoError(t, xdata.write(R2000, w))
	require.NoError(t, w.Flush())
	text := buf.String()
	assert.Contains(t, text, "1001\nAPP\n")
	assert.Contains(t, text, "1004\nAB01\n")
	assert.Contains(t, text, "1002\n{\n")
	assert.Contains(t, text, "1002\n}\n")
}
