package dxfio

import (
	"github.com/hailam/dxfio/codepair"
)

// Entity is one drawing object: fields common to every entity plus the
// per-type variant. After post-processing, an Attribute run that follows an
// Insert with its attributes-follow flag set lives inside that Insert, and a
// Vertex run that follows a Polyline lives inside that Polyline. Attribute
// and Vertex entities that follow neither stay at the top level.
type Entity struct {
	Common   EntityCommon
	Specific EntitySpecific
}

// EntityCommon holds the fields shared by all entity types.
type EntityCommon struct {
	Handle   uint32
	Layer    string
	LineType string
	Color    int16
	XData    []XData
}

// EntitySpecific is the per-type side of an entity. Implementations apply
// incoming code pairs to their fields and emit their fields as pairs.
type EntitySpecific interface {
	typeString() string
	// applyCodePair consumes a field pair, reporting whether the code
	// belonged to this entity type.
	applyCodePair(pair codepair.CodePair) (bool, error)
	// fieldPairs renders the entity's own fields in file order.
	fieldPairs() []codepair.CodePair
}

func (c *EntityCommon) applyCodePair(pair codepair.CodePair) error {
	switch pair.Code {
	case 5:
		h, err := pair.Handle()
		if err != nil {
			return err
		}
		c.Handle = h
	case 6:
		s, err := pair.AssertString()
		if err != nil {
			return err
		}
		c.LineType = s
	case 8:
		s, err := pair.AssertString()
		if err != nil {
			return err
		}
		c.Layer = s
	case 62:
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		c.Color = v
	default:
		// fields this library does not materialize are dropped
	}
	return nil
}

// TypeString returns the entity's DXF type name, e.g. "LINE".
func (e *Entity) TypeString() string {
	return e.Specific.typeString()
}

// write emits the entity and, for folded parents, its children and the
// trailing SEQEND delimiter.
func (e *Entity) write(version AcadVersion, writeHandles bool, w codepair.PairWriter) error {
	if err := w.WriteCodePair(codepair.NewString(0, e.Specific.typeString())); err != nil {
		return err
	}
	if writeHandles && e.Common.Handle != 0 {
		if err := w.WriteCodePair(codepair.NewString(5, codepair.FormatHandle(e.Common.Handle))); err != nil {
			return err
		}
	}
	if e.Common.Layer != "" {
		if err := w.WriteCodePair(codepair.NewString(8, e.Common.Layer)); err != nil {
			return err
		}
	}
	if e.Common.LineType != "" {
		if err := w.WriteCodePair(codepair.NewString(6, e.Common.LineType)); err != nil {
			return err
		}
	}
	if e.Common.Color != 0 {
		if err := w.WriteCodePair(codepair.NewShort(62, e.Common.Color)); err != nil {
			return err
		}
	}
	for _, p := range e.Specific.fieldPairs() {
		if err := w.WriteCodePair(p); err != nil {
			return err
		}
	}
	for i := range e.Common.XData {
		if err := e.Common.XData[i].write(version, w); err != nil {
			return err
		}
	}
	switch spec := e.Specific.(type) {
	case *Insert:
		if spec.HasAttributes {
			for _, att := range spec.Attributes {
				child := Entity{Specific: att}
				if err := child.write(version, writeHandles, w); err != nil {
					return err
				}
			}
			if err := writeSeqend(w); err != nil {
				return err
			}
		}
	case *Polyline:
		for _, v := range spec.Vertices {
			child := Entity{Specific: v}
			if err := child.write(version, writeHandles, w); err != nil {
				return err
			}
		}
		if err := writeSeqend(w); err != nil {
			return err
		}
	}
	return nil
}

func writeSeqend(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewString(0, "SEQEND"))
}

// Line is a straight segment between two points.
type Line struct {
	P1 Point
	P2 Point
}

func (*Line) typeString() string { return "LINE" }

func (l *Line) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		return applyPointCoordinate(pair, &l.P1, pair.Code/10-1)
	case 11, 21, 31:
		return applyPointCoordinate(pair, &l.P2, pair.Code/10-1)
	}
	return false, nil
}

func (l *Line) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, l.P1.X),
		codepair.NewDouble(20, l.P1.Y),
		codepair.NewDouble(30, l.P1.Z),
		codepair.NewDouble(11, l.P2.X),
		codepair.NewDouble(21, l.P2.Y),
		codepair.NewDouble(31, l.P2.Z),
	}
}

// Circle is a full circle around a center point.
type Circle struct {
	Center Point
	Radius float64
}

func (*Circle) typeString() string { return "CIRCLE" }

func (c *Circle) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		return applyPointCoordinate(pair, &c.Center, pair.Code/10-1)
	case 40:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		c.Radius = v
		return true, nil
	}
	return false, nil
}

func (c *Circle) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, c.Center.X),
		codepair.NewDouble(20, c.Center.Y),
		codepair.NewDouble(30, c.Center.Z),
		codepair.NewDouble(40, c.Radius),
	}
}

// Arc is a circular arc swept counter-clockwise between two angles.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (*Arc) typeString() string { return "ARC" }

func (a *Arc) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		return applyPointCoordinate(pair, &a.Center, pair.Code/10-1)
	case 40:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		a.Radius = v
		return true, nil
	case 50:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		a.StartAngle = v
		return true, nil
	case 51:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		a.EndAngle = v
		return true, nil
	}
	return false, nil
}

func (a *Arc) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, a.Center.X),
		codepair.NewDouble(20, a.Center.Y),
		codepair.NewDouble(30, a.Center.Z),
		codepair.NewDouble(40, a.Radius),
		codepair.NewDouble(50, a.StartAngle),
		codepair.NewDouble(51, a.EndAngle),
	}
}

// Text is a single-line text entity.
type Text struct {
	Location Point
	Height   float64
	Value    string
	Rotation float64
}

func (*Text) typeString() string { return "TEXT" }

func (t *Text) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		return applyPointCoordinate(pair, &t.Location, pair.Code/10-1)
	case 40:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		t.Height = v
		return true, nil
	case 1:
		s, err := pair.AssertString()
		if err != nil {
			return false, err
		}
		t.Value = s
		return true, nil
	case 50:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		t.Rotation = v
		return true, nil
	}
	return false, nil
}

func (t *Text) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, t.Location.X),
		codepair.NewDouble(20, t.Location.Y),
		codepair.NewDouble(30, t.Location.Z),
		codepair.NewDouble(40, t.Height),
		codepair.NewString(1, t.Value),
		codepair.NewDouble(50, t.Rotation),
	}
}

// ModelPoint is a POINT entity.
type ModelPoint struct {
	Location Point
}

func (*ModelPoint) typeString() string { return "POINT" }

func (m *ModelPoint) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		return applyPointCoordinate(pair, &m.Location, pair.Code/10-1)
	}
	return false, nil
}

func (m *ModelPoint) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, m.Location.X),
		codepair.NewDouble(20, m.Location.Y),
		codepair.NewDouble(30, m.Location.Z),
	}
}

// Insert places a block reference, optionally trailed by ATTRIB entities
// that the post-processor folds into Attributes. Folding is driven by the
// attributes-follow flag (group 66), not by what actually trails the INSERT.
type Insert struct {
	Name          string
	Location      Point
	XScale        float64
	YScale        float64
	ZScale        float64
	Rotation      float64
	HasAttributes bool
	Attributes    []*Attribute
}

// NewInsert returns an insert with unit scales.
func NewInsert() *Insert {
	return &Insert{XScale: 1.0, YScale: 1.0, ZScale: 1.0}
}

func (*Insert) typeString() string { return "INSERT" }

func (i *Insert) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 2:
		s, err := pair.AssertString()
		if err != nil {
			return false, err
		}
		i.Name = s
		return true, nil
	case 10, 20, 30:
		return applyPointCoordinate(pair, &i.Location, pair.Code/10-1)
	case 41:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		i.XScale = v
		return true, nil
	case 42:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		i.YScale = v
		return true, nil
	case 43:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		i.ZScale = v
		return true, nil
	case 50:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		i.Rotation = v
		return true, nil
	case 66:
		v, err := pair.AssertShort()
		if err != nil {
			return false, err
		}
		i.HasAttributes = v != 0
		return true, nil
	}
	return false, nil
}

func (i *Insert) fieldPairs() []codepair.CodePair {
	pairs := []codepair.CodePair{}
	if i.HasAttributes {
		pairs = append(pairs, codepair.NewShort(66, 1))
	}
	pairs = append(pairs,
		codepair.NewString(2, i.Name),
		codepair.NewDouble(10, i.Location.X),
		codepair.NewDouble(20, i.Location.Y),
		codepair.NewDouble(30, i.Location.Z),
		codepair.NewDouble(41, i.XScale),
		codepair.NewDouble(42, i.YScale),
		codepair.NewDouble(43, i.ZScale),
		codepair.NewDouble(50, i.Rotation))
	return pairs
}

// Attribute is an ATTRIB entity: a tagged text value owned by an Insert.
type Attribute struct {
	Location   Point
	TextHeight float64
	Value      string
	Tag        string
}

func (*Attribute) typeString() string { return "ATTRIB" }

func (a *Attribute) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		return applyPointCoordinate(pair, &a.Location, pair.Code/10-1)
	case 40:
		v, err := pair.AssertDouble()
		if err != nil {
			return false, err
		}
		a.TextHeight = v
		return true, nil
	case 1:
		s, err := pair.AssertString()
		if err != nil {
			return false, err
		}
		a.Value = s
		return true, nil
	case 2:
		s, err := pair.AssertString()
		if err != nil {
			return false, err
		}
		a.Tag = s
		return true, nil
	}
	return false, nil
}

func (a *Attribute) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, a.Location.X),
		codepair.NewDouble(20, a.Location.Y),
		codepair.NewDouble(30, a.Location.Z),
		codepair.NewDouble(40, a.TextHeight),
		codepair.NewString(1, a.Value),
		codepair.NewString(2, a.Tag),
	}
}

// Polyline is the classic POLYLINE entity; its VERTEX children are folded
// into Vertices by the post-processor and the run is closed by SEQEND.
type Polyline struct {
	Flags    int16
	Vertices []*Vertex
}

func (*Polyline) typeString() string { return "POLYLINE" }

func (p *Polyline) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 66:
		// vertices-follow flag; not stored, fieldPairs always writes it as 1
		if _, err := pair.AssertShort(); err != nil {
			return false, err
		}
		return true, nil
	case 70:
		v, err := pair.AssertShort()
		if err != nil {
			return false, err
		}
		p.Flags = v
		return true, nil
	}
	return false, nil
}

func (p *Polyline) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewShort(66, 1),
		codepair.NewShort(70, p.Flags),
	}
}

// Vertex is a VERTEX entity owned by a Polyline.
type Vertex struct {
	Location Point
	Flags    int16
}

func (*Vertex) typeString() string { return "VERTEX" }

func (v *Vertex) applyCodePair(pair codepair.CodePair) (bool, error) {
	switch pair.Code {
	case 10, 20, 30:
		return applyPointCoordinate(pair, &v.Location, pair.Code/10-1)
	case 70:
		f, err := pair.AssertShort()
		if err != nil {
			return false, err
		}
		v.Flags = f
		return true, nil
	}
	return false, nil
}

func (v *Vertex) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, v.Location.X),
		codepair.NewDouble(20, v.Location.Y),
		codepair.NewDouble(30, v.Location.Z),
		codepair.NewShort(70, v.Flags),
	}
}

// Seqend terminates an INSERT or POLYLINE child run. It is a delimiter, not
// a drawing object: the post-processor absorbs it.
type Seqend struct{}

func (*Seqend) typeString() string { return "SEQEND" }

func (*Seqend) applyCodePair(pair codepair.CodePair) (bool, error) { return false, nil }

func (*Seqend) fieldPairs() []codepair.CodePair { return nil }

// applyPointCoordinate assigns a 10/20/30-family pair to the point axis
// given by index 0..2.
func applyPointCoordinate(pair codepair.CodePair, pt *Point, axis int) (bool, error) {
	v, err := pair.AssertDouble()
	if err != nil {
		return false, err
	}
	switch axis {
	case 0:
		pt.X = v
	case 1:
		pt.Y = v
	default:
		pt.Z = v
	}
	return true, nil
}

// newSpecificEntity maps a 0-pair entity type string to a fresh variant, or
// nil for a type this library does not materialize.
func newSpecificEntity(typeString string) EntitySpecific {
	switch typeString {
	case "LINE":
		return &Line{}
	case "CIRCLE":
		return &Circle{}
	case "ARC":
		return &Arc{}
	case "TEXT":
		return &Text{}
	case "POINT":
		return &ModelPoint{}
	case "INSERT":
		return NewInsert()
	case "ATTRIB":
		return &Attribute{}
	case "POLYLINE":
		return &Polyline{}
	case "VERTEX":
		return &Vertex{}
	case "SEQEND":
		return &Seqend{}
	default:
		return nil
	}
}
