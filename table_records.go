package dxfio

import (
	"github.com/hailam/dxfio/codepair"
)

// The symbol table records. Each carries its name, handle, standard flags,
// and the small field subset this library materializes; unrecognized codes
// are dropped on read.

// AppId registers an application name for XDATA ownership.
type AppId struct {
	Name   string
	Handle uint32
	Flags  int16
}

func (*AppId) tableKind() string { return "APPID" }
func (*AppId) handleCode() int { return 5 }
func (a *AppId) recordHandle() *uint32 { return &a.Handle }
func (a *AppId) recordName() *string { return &a.Name }

func (a *AppId) applyCodePair(pair codepair.CodePair) error {
	if pair.Code == 70 {
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		a.Flags = v
	}
	return nil
}

func (a *AppId) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{codepair.NewShort(70, a.Flags)}
}

// BlockRecord names a block definition.
type BlockRecord struct {
	Name   string
	Handle uint32
	Flags  int16
}

func (*BlockRecord) tableKind() string { return "BLOCK_RECORD" }
func (*BlockRecord) handleCode() int { return 5 }
func (b *BlockRecord) recordHandle() *uint32 { return &b.Handle }
func (b *BlockRecord) recordName() *string { return &b.Name }

func (b *BlockRecord) applyCodePair(pair codepair.CodePair) error {
	if pair.Code == 70 {
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		b.Flags = v
	}
	return nil
}

func (b *BlockRecord) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{codepair.NewShort(70, b.Flags)}
}

// DimStyle is a dimension style. Its handle rides group 105, unlike every
// other table record.
type DimStyle struct {
	Name   string
	Handle uint32
	Flags  int16
}

func (*DimStyle) tableKind() string { return "DIMSTYLE" }
func (*DimStyle) handleCode() int { return 105 }
func (s *DimStyle) recordHandle() *uint32 { return &s.Handle }
func (s *DimStyle) recordName() *string { return &s.Name }

func (s *DimStyle) applyCodePair(pair codepair.CodePair) error {
	if pair.Code == 70 {
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		s.Flags = v
	}
	return nil
}

func (s *DimStyle) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{codepair.NewShort(70, s.Flags)}
}

// Layer groups entities and gives them default color and line type.
type Layer struct {
	Name     string
	Handle   uint32
	Flags    int16
	Color    int16
	LineType string
}

// NewLayer returns a layer with the defaults a fresh layer carries.
func NewLayer() *Layer {
	return &Layer{Color: 7, LineType: "CONTINUOUS"}
}

func (*Layer) tableKind() string { return "LAYER" }
func (*Layer) handleCode() int { return 5 }
func (l *Layer) recordHandle() *uint32 { return &l.Handle }
func (l *Layer) recordName() *string { return &l.Name }

func (l *Layer) applyCodePair(pair codepair.CodePair) error {
	switch pair.Code {
	case 6:
		s, err := pair.AssertString()
		if err != nil {
			return err
		}
		l.LineType = s
	case 62:
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		l.Color = v
	case 70:
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		l.Flags = v
	}
	return nil
}

func (l *Layer) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewShort(70, l.Flags),
		codepair.NewShort(62, l.Color),
		codepair.NewString(6, l.LineType),
	}
}

// LineType defines a dash pattern.
type LineType struct {
	Name        string
	Handle      uint32
	Flags       int16
	Description string
	TotalLength float64
	DashLengths []float64
}

func (*LineType) tableKind() string { return "LTYPE" }
func (*LineType) handleCode() int { return 5 }
func (l *LineType) recordHandle() *uint32 { return &l.Handle }
func (l *LineType) recordName() *string { return &l.Name }

func (l *LineType) applyCodePair(pair codepair.CodePair) error {
	switch pair.Code {
	case 3:
		s, err := pair.AssertString()
		if err != nil {
			return err
		}
		l.Description = s
	case 40:
		v, err := pair.AssertDouble()
		if err != nil {
			return err
		}
		l.TotalLength = v
	case 49:
		v, err := pair.AssertDouble()
		if err != nil {
			return err
		}
		l.DashLengths = append(l.DashLengths, v)
	case 70:
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		l.Flags = v
	}
	return nil
}

func (l *LineType) fieldPairs() []codepair.CodePair {
	pairs := []codepair.CodePair{
		codepair.NewShort(70, l.Flags),
		codepair.NewString(3, l.Description),
		codepair.NewShort(73, int16(len(l.DashLengths))),
		codepair.NewDouble(40, l.TotalLength),
	}
	for _, dash := range l.DashLengths {
		pairs = append(pairs, codepair.NewDouble(49, dash))
	}
	return pairs
}

// Style is a text style.
type Style struct {
	Name       string
	Handle     uint32
	Flags      int16
	TextHeight float64
	FontFile   string
}

func (*Style) tableKind() string { return "STYLE" }
func (*Style) handleCode() int { return 5 }
func (s *Style) recordHandle() *uint32 { return &s.Handle }
func (s *Style) recordName() *string { return &s.Name }

func (s *Style) applyCodePair(pair codepair.CodePair) error {
	switch pair.Code {
	case 3:
		f, err := pair.AssertString()
		if err != nil {
			return err
		}
		s.FontFile = f
	case 40:
		v, err := pair.AssertDouble()
		if err != nil {
			return err
		}
		s.TextHeight = v
	case 70:
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		s.Flags = v
	}
	return nil
}

func (s *Style) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewShort(70, s.Flags),
		codepair.NewDouble(40, s.TextHeight),
		codepair.NewString(3, s.FontFile),
	}
}

// Ucs is a saved user coordinate system.
type Ucs struct {
	Name   string
	Handle uint32
	Origin Point
}

func (*Ucs) tableKind() string { return "UCS" }
func (*Ucs) handleCode() int { return 5 }
func (u *Ucs) recordHandle() *uint32 { return &u.Handle }
func (u *Ucs) recordName() *string { return &u.Name }

func (u *Ucs) applyCodePair(pair codepair.CodePair) error {
	switch pair.Code {
	case 10, 20, 30:
		_, err := applyPointCoordinate(pair, &u.Origin, pair.Code/10-1)
		return err
	}
	return nil
}

func (u *Ucs) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, u.Origin.X),
		codepair.NewDouble(20, u.Origin.Y),
		codepair.NewDouble(30, u.Origin.Z),
	}
}

// View is a saved view.
type View struct {
	Name   string
	Handle uint32
	Height float64
	Width  float64
}

func (*View) tableKind() string { return "VIEW" }
func (*View) handleCode() int { return 5 }
func (v *View) recordHandle() *uint32 { return &v.Handle }
func (v *View) recordName() *string { return &v.Name }

func (v *View) applyCodePair(pair codepair.CodePair) error {
	switch pair.Code {
	case 40:
		h, err := pair.AssertDouble()
		if err != nil {
			return err
		}
		v.Height = h
	case 41:
		w, err := pair.AssertDouble()
		if err != nil {
			return err
		}
		v.Width = w
	}
	return nil
}

func (v *View) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(40, v.Height),
		codepair.NewDouble(41, v.Width),
	}
}

// ViewPort is a viewport configuration.
type ViewPort struct {
	Name       string
	Handle     uint32
	LowerLeft  Point
	UpperRight Point
}

func (*ViewPort) tableKind() string { return "VPORT" }
func (*ViewPort) handleCode() int { return 5 }
func (v *ViewPort) recordHandle() *uint32 { return &v.Handle }
func (v *ViewPort) recordName() *string { return &v.Name }

func (v *ViewPort) applyCodePair(pair codepair.CodePair) error {
	switch pair.Code {
	case 10, 20:
		_, err := applyPointCoordinate(pair, &v.LowerLeft, pair.Code/10-1)
		return err
	case 11, 21:
		_, err := applyPointCoordinate(pair, &v.UpperRight, pair.Code/10-1)
		return err
	}
	return nil
}

func (v *ViewPort) fieldPairs() []codepair.CodePair {
	return []codepair.CodePair{
		codepair.NewDouble(10, v.LowerLeft.X),
		codepair.NewDouble(20, v.LowerLeft.Y),
		codepair.NewDouble(11, v.UpperRight.X),
		codepair.NewDouble(21, v.UpperRight.Y),
	}
}
