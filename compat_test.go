package dxfio

import (
	"path/filepath"
	"testing"

	yofu "github.com/yofu/dxf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A file produced by another Go DXF writer must load through this library:
// its CLASSES/BLOCKS/OBJECTS sections are swallowed, its header variables
// beyond the materialized set are skipped, and its entities come through.
func TestLoadDrawingWrittenByYofuDxf(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "compat.dxf")

	dwg := yofu.NewDrawing()
	dwg.Line(0.0, 0.0, 0.0, 100.0, 100.0, 0.0)
	require.NoError(t, dwg.SaveAs(path))

	drawing, err := LoadFile(path)
	require.NoError(t, err)

	var lines []*Line
	for _, e := range drawing.Entities {
		if l, ok := e.Specific.(*Line); ok {
			lines = append(lines, l)
		}
	}
	require.Len(t, lines, 1)
	assert.Equal(t, Point{0, 0, 0}, lines[0].P1)
	assert.Equal(t, Point{100, 100, 0}, lines[0].P2)

	// the standard symbol tables come along
	assert.NotEmpty(t, drawing.Layers)
	assert.NotEmpty(t, drawing.LineTypes)
}
