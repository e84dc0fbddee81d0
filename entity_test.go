package dxfio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entitiesSection(body ...string) string {
	lines := append([]string{"0", "SECTION", "2", "ENTITIES"}, body...)
	lines = append(lines, "0", "ENDSEC", "0", "EOF")
	return dxfText(lines...)
}

func TestInsertGathersAttributes(t *testing.T) {
	drawing := loadString(t, entitiesSection(
		"0", "INSERT",
		"66", "1",
		"2", "BLK",
		"0", "ATTRIB",
		"1", "first",
		"2", "T1",
		"0", "ATTRIB",
		"1", "second",
		"2", "T2",
		"0", "SEQEND",
		"0", "LINE",
	))
	require.Len(t, drawing.Entities, 2)
	insert, ok := drawing.Entities[0].Specific.(*Insert)
	require.True(t, ok)
	require.Len(t, insert.Attributes, 2)
	assert.Equal(t, "first", insert.Attributes[0].Value)
	assert.Equal(t, "T2", insert.Attributes[1].Tag)
	_, ok = drawing.Entities[1].Specific.(*Line)
	assert.True(t, ok, "the LINE after the fold must survive as a top-level entity")
}

// An INSERT whose attributes-follow flag is unset does not gather, even if
// ATTRIB entities trail it. The flag is the contract.
func TestInsertWithoutFlagDoesNotGather(t *testing.T) {
	drawing := loadString(t, entitiesSection(
		"0", "INSERT",
		"2", "BLK",
		"0", "ATTRIB",
		"1", "stray",
		"2", "T1",
	))
	require.Len(t, drawing.Entities, 2)
	insert := drawing.Entities[0].Specific.(*Insert)
	assert.Empty(t, insert.Attributes)
	_, ok := drawing.Entities[1].Specific.(*Attribute)
	assert.True(t, ok)
}

func TestPolylineGathersVertices(t *testing.T) {
	drawing := loadString(t, entitiesSection(
		"0", "POLYLINE",
		"66", "1",
		"70", "1",
		"0", "VERTEX",
		"10", "0.0",
		"20", "0.0",
		"30", "0.0",
		"0", "VERTEX",
		"10", "5.0",
		"20", "0.0",
		"30", "0.0",
		"0", "VERTEX",
		"10", "5.0",
		"20", "5.0",
		"30", "0.0",
		"0", "SEQEND",
		"0", "CIRCLE",
		"40", "1.0",
	))
	require.Len(t, drawing.Entities, 2)
	poly, ok := drawing.Entities[0].Specific.(*Polyline)
	require.True(t, ok)
	require.Len(t, poly.Vertices, 3)
	assert.Equal(t, Point{5, 0, 0}, poly.Vertices[1].Location)
	assert.Equal(t, int16(1), poly.Flags)
}

func TestPolylineWithoutSeqend(t *testing.T) {
	// a missing SEQEND still closes the run at the first non-VERTEX
	drawing := loadString(t, entitiesSection(
		"0", "POLYLINE",
		"70", "0",
		"0", "VERTEX",
		"10", "1.0",
		"20", "1.0",
		"30", "0.0",
		"0", "LINE",
	))
	require.Len(t, drawing.Entities, 2)
	poly := drawing.Entities[0].Specific.(*Polyline)
	assert.Len(t, poly.Vertices, 1)
	_, ok := drawing.Entities[1].Specific.(*Line)
	assert.True(t, ok)
}

func TestStraySeqendIsDiscarded(t *testing.T) {
	drawing := loadString(t, entitiesSection(
		"0", "SEQEND",
		"0", "LINE",
		"0", "SEQEND",
	))
	require.Len(t, drawing.Entities, 1)
	_, ok := drawing.Entities[0].Specific.(*Line)
	assert.True(t, ok)
}

func TestPolylineAtEndOfSection(t *testing.T) {
	// the section may end while a vertex run is open
	drawing := loadString(t, entitiesSection(
		"0", "POLYLINE",
		"70", "0",
		"0", "VERTEX",
		"10", "1.0",
		"20", "2.0",
		"30", "0.0",
	))
	require.Len(t, drawing.Entities, 1)
	poly := drawing.Entities[0].Specific.(*Polyline)
	assert.Len(t, poly.Vertices, 1)
}

func TestEntityXData(t *testing.T) {
	drawing := loadString(t, entitiesSection(
		"0", "LINE",
		"10", "0.0",
		"20", "0.0",
		"30", "0.0",
		"11", "1.0",
		"21", "1.0",
		"31", "0.0",
		"1001", "ACAD",
		"1000", "a note",
		"1070", "7",
	))
	require.Len(t, drawing.Entities, 1)
	xdata := drawing.Entities[0].Common.XData
	require.Len(t, xdata, 1)
	assert.Equal(t, "ACAD", xdata[0].ApplicationName)
	require.Len(t, xdata[0].Items, 2)
	assert.Equal(t, &XDataStr{Value: "a note"}, xdata[0].Items[0])
	assert.Equal(t, &XDataInteger{Value: 7}, xdata[0].Items[1])
}
