package dxfio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mohae/deepcopy"

	"github.com/hailam/dxfio/codepair"
)

// Drawing is the aggregate root of a DXF file: the header plus the ordered
// tables and entities. A drawing owns its members exclusively; references
// between them go by name or handle, never by pointer.
type Drawing struct {
	Header       Header
	Entities     []*Entity
	AppIds       []*AppId
	BlockRecords []*BlockRecord
	DimStyles    []*DimStyle
	Layers       []*Layer
	LineTypes    []*LineType
	Styles       []*Style
	Ucs          []*Ucs
	Views        []*View
	ViewPorts    []*ViewPort
}

// New creates an empty drawing.
func New() *Drawing {
	return &Drawing{Header: NewHeader()}
}

// Load reads an ASCII DXF drawing from r.
func Load(r io.Reader) (*Drawing, error) {
	drawing := New()
	iter := codepair.NewPutBack(codepair.NewReader(r))
	if err := drawing.readSections(iter); err != nil {
		return nil, err
	}
	pair, err := iter.Next()
	switch {
	case err == io.EOF:
		return drawing, nil
	case err != nil:
		return nil, err
	case pair.IsString(0, "EOF"):
		return drawing, nil
	default:
		return nil, &codepair.UnexpectedCodePairError{Pair: pair, Message: "expected 0/EOF"}
	}
}

// LoadFile reads a drawing from disk through a buffered reader.
func LoadFile(fileName string) (*Drawing, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fileName, err)
	}
	defer f.Close()
	return Load(bufio.NewReader(f))
}

// Save writes the drawing as ASCII DXF to w.
func (d *Drawing) Save(w io.Writer) error {
	writer := codepair.NewWriter(w)
	if err := d.Header.write(writer); err != nil {
		return err
	}
	writeHandles := d.Header.Version >= R13 || d.Header.HandlesEnabled
	if err := d.writeTables(writeHandles, writer); err != nil {
		return err
	}
	if err := d.writeEntities(writeHandles, writer); err != nil {
		return err
	}
	if err := writer.WriteCodePair(codepair.NewString(0, "EOF")); err != nil {
		return err
	}
	return writer.Flush()
}

// SaveFile writes the drawing to disk through a buffered writer.
func (d *Drawing) SaveFile(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	return d.Save(f)
}

// Clone returns a deep copy of the drawing.
func (d *Drawing) Clone() *Drawing {
	return deepcopy.Copy(d).(*Drawing)
}

// readSections drives the top-level state machine: a run of
// 0/SECTION ... 0/ENDSEC blocks terminated by 0/EOF. Unknown section names
// are swallowed; end of stream outside a section is tolerated.
func (d *Drawing) readSections(iter *codepair.PutBack) error {
	for {
		pair, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return nil // ideally should have been 0/EOF
			}
			return err
		}
		if pair.Code != 0 {
			return &codepair.UnexpectedCodePairError{Pair: pair, Message: "expected 0/SECTION or 0/EOF"}
		}
		name, err := pair.AssertString()
		if err != nil {
			return err
		}
		switch name {
		case "EOF":
			iter.Put(pair)
			return nil
		case "SECTION":
			if err := d.readSection(iter); err != nil {
				return err
			}
		default:
			return &codepair.UnexpectedCodePairError{Pair: pair, Message: "expected 0/SECTION"}
		}
	}
}

func (d *Drawing) readSection(iter *codepair.PutBack) error {
	namePair, err := iter.Next()
	if err != nil {
		if err == io.EOF {
			return codepair.ErrUnexpectedEndOfInput
		}
		return err
	}
	if namePair.Code != 2 {
		return &codepair.UnexpectedCodePairError{Pair: namePair, Message: "expected 2/<section-name>"}
	}
	name, err := namePair.AssertString()
	if err != nil {
		return err
	}
	switch name {
	case "HEADER":
		if d.Header, err = readHeader(iter); err != nil {
			return err
		}
	case "ENTITIES":
		if err := d.readEntities(iter); err != nil {
			return err
		}
	case "TABLES":
		if err := d.readTables(iter); err != nil {
			return err
		}
	default:
		if err := swallowSection(iter); err != nil {
			return err
		}
	}
	endPair, err := iter.Next()
	if err != nil {
		if err == io.EOF {
			return codepair.ErrUnexpectedEndOfInput
		}
		return err
	}
	if !endPair.IsString(0, "ENDSEC") {
		return &codepair.UnexpectedCodePairError{Pair: endPair, Message: "expected 0/ENDSEC"}
	}
	return nil
}

// swallowSection discards an unrecognized section's body, leaving its
// 0/ENDSEC pushed back.
func swallowSection(iter *codepair.PutBack) error {
	for {
		pair, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if pair.IsString(0, "ENDSEC") {
			iter.Put(pair)
			return nil
		}
	}
}

// readEntities materializes the ENTITIES body, folding ATTRIB runs into
// their INSERT and VERTEX runs into their POLYLINE, absorbing the SEQEND
// that closes each run. A SEQEND with no open run is a stray delimiter and
// is dropped.
func (d *Drawing) readEntities(iter *codepair.PutBack) error {
	entities := &entityPutBack{iter: &entityIter{iter: iter}}
	for {
		ent, err := entities.next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch spec := ent.Specific.(type) {
		case *Insert:
			if spec.HasAttributes {
				if err := gatherAttributes(entities, spec); err != nil {
					return err
				}
			}
			d.Entities = append(d.Entities, ent)
		case *Polyline:
			if err := gatherVertices(entities, spec); err != nil {
				return err
			}
			d.Entities = append(d.Entities, ent)
		case *Seqend:
			// stray delimiter
		default:
			d.Entities = append(d.Entities, ent)
		}
	}
}

func gatherAttributes(entities *entityPutBack, insert *Insert) error {
	for {
		ent, err := entities.next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		att, ok := ent.Specific.(*Attribute)
		if !ok {
			// stop gathering on any non-ATTRIB
			entities.put(ent)
			break
		}
		insert.Attributes = append(insert.Attributes, att)
	}
	return swallowSeqend(entities)
}

func gatherVertices(entities *entityPutBack, poly *Polyline) error {
	for {
		ent, err := entities.next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		vertex, ok := ent.Specific.(*Vertex)
		if !ok {
			// stop gathering on any non-VERTEX
			entities.put(ent)
			break
		}
		poly.Vertices = append(poly.Vertices, vertex)
	}
	return swallowSeqend(entities)
}

// swallowSeqend absorbs one SEQEND if it is next; anything else goes back.
func swallowSeqend(entities *entityPutBack) error {
	ent, err := entities.next()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if _, ok := ent.Specific.(*Seqend); !ok {
		entities.put(ent)
	}
	return nil
}

func (d *Drawing) writeTables(writeHandles bool, w codepair.PairWriter) error {
	if err := w.WriteCodePair(codepair.NewString(0, "SECTION")); err != nil {
		return err
	}
	if err := w.WriteCodePair(codepair.NewString(2, "TABLES")); err != nil {
		return err
	}
	if err := d.writeTableBlocks(writeHandles, w); err != nil {
		return err
	}
	return w.WriteCodePair(codepair.NewString(0, "ENDSEC"))
}

func (d *Drawing) writeEntities(writeHandles bool, w codepair.PairWriter) error {
	if err := w.WriteCodePair(codepair.NewString(0, "SECTION")); err != nil {
		return err
	}
	if err := w.WriteCodePair(codepair.NewString(2, "ENTITIES")); err != nil {
		return err
	}
	for _, e := range d.Entities {
		if err := e.write(d.Header.Version, writeHandles, w); err != nil {
			return err
		}
	}
	return w.WriteCodePair(codepair.NewString(0, "ENDSEC"))
}
