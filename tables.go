package dxfio

import (
	"io"
	"log"
	"sync"

	"github.com/hailam/dxfio/codepair"
)

// tableReader consumes one 0/TABLE block body of its kind, leaving the
// closing 0/ENDTAB (or whatever 0 pair ended the block) pushed back.
type tableReader func(d *Drawing, iter *codepair.PutBack) error

// tableReaderRegistry maps table kind names (LAYER, LTYPE, ...) to their
// readers. Populated during init; unknown kinds fall back to swallowTable.
var (
	tableReaderRegistry = make(map[string]tableReader)
	tableRegistryMutex  sync.RWMutex
)

func registerTableReader(kind string, reader tableReader) {
	tableRegistryMutex.Lock()
	defer tableRegistryMutex.Unlock()
	if _, exists := tableReaderRegistry[kind]; exists {
		log.Printf("Warning: Duplicate table reader registration for %s. Overwriting existing one.", kind)
	}
	tableReaderRegistry[kind] = reader
}

func lookupTableReader(kind string) (tableReader, bool) {
	tableRegistryMutex.RLock()
	defer tableRegistryMutex.RUnlock()
	r, ok := tableReaderRegistry[kind]
	return r, ok
}

func init() {
	registerTableReader("APPID", readTableOf("APPID", func(d *Drawing) tableRecord {
		r := &AppId{}
		d.AppIds = append(d.AppIds, r)
		return r
	}))
	registerTableReader("BLOCK_RECORD", readTableOf("BLOCK_RECORD", func(d *Drawing) tableRecord {
		r := &BlockRecord{}
		d.BlockRecords = append(d.BlockRecords, r)
		return r
	}))
	registerTableReader("DIMSTYLE", readTableOf("DIMSTYLE", func(d *Drawing) tableRecord {
		r := &DimStyle{}
		d.DimStyles = append(d.DimStyles, r)
		return r
	}))
	registerTableReader("LAYER", readTableOf("LAYER", func(d *Drawing) tableRecord {
		r := NewLayer()
		d.Layers = append(d.Layers, r)
		return r
	}))
	registerTableReader("LTYPE", readTableOf("LTYPE", func(d *Drawing) tableRecord {
		r := &LineType{}
		d.LineTypes = append(d.LineTypes, r)
		return r
	}))
	registerTableReader("STYLE", readTableOf("STYLE", func(d *Drawing) tableRecord {
		r := &Style{}
		d.Styles = append(d.Styles, r)
		return r
	}))
	registerTableReader("UCS", readTableOf("UCS", func(d *Drawing) tableRecord {
		r := &Ucs{}
		d.Ucs = append(d.Ucs, r)
		return r
	}))
	registerTableReader("VIEW", readTableOf("VIEW", func(d *Drawing) tableRecord {
		r := &View{}
		d.Views = append(d.Views, r)
		return r
	}))
	registerTableReader("VPORT", readTableOf("VPORT", func(d *Drawing) tableRecord {
		r := &ViewPort{}
		d.ViewPorts = append(d.ViewPorts, r)
		return r
	}))
}

// tableRecord is one row of a symbol table.
type tableRecord interface {
	tableKind() string
	// handleCode is 5 for every table except DIMSTYLE, which uses 105.
	handleCode() int
	recordHandle() *uint32
	recordName() *string
	applyCodePair(pair codepair.CodePair) error
	fieldPairs() []codepair.CodePair
}

// readTables consumes the TABLES section body: a run of 0/TABLE blocks,
// ending with 0/ENDSEC pushed back.
func (d *Drawing) readTables(iter *codepair.PutBack) error {
	for {
		pair, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return codepair.ErrUnexpectedEndOfInput
			}
			return err
		}
		if pair.Code != 0 {
			return &codepair.UnexpectedCodePairError{Pair: pair, Message: "expected 0/TABLE or 0/ENDSEC"}
		}
		name, err := pair.AssertString()
		if err != nil {
			return err
		}
		switch name {
		case "ENDSEC":
			iter.Put(pair)
			return nil
		case "TABLE":
			if err := d.readSpecificTable(iter); err != nil {
				return err
			}
		default:
			return &codepair.UnexpectedCodePairError{Pair: pair, Message: "expected 0/TABLE or 0/ENDSEC"}
		}
	}
}

func (d *Drawing) readSpecificTable(iter *codepair.PutBack) error {
	namePair, err := iter.Next()
	if err != nil {
		if err == io.EOF {
			return codepair.ErrUnexpectedEndOfInput
		}
		return err
	}
	if namePair.Code != 2 {
		return &codepair.UnexpectedCodePairError{Pair: namePair, Message: "expected 2/<table-kind>"}
	}
	kind, err := namePair.AssertString()
	if err != nil {
		return err
	}
	if reader, ok := lookupTableReader(kind); ok {
		if err := reader(d, iter); err != nil {
			return err
		}
	} else {
		if err := swallowTable(iter); err != nil {
			return err
		}
	}
	// consume the ENDTAB if the block was well formed; a TABLE or ENDSEC
	// left behind by a truncated block stays for the outer loop
	pair, err := iter.Next()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if !pair.IsString(0, "ENDTAB") {
		iter.Put(pair)
	}
	return nil
}

// readTableOf builds a reader that materializes records of one kind. Pairs
// before the first record (the table's own handle and count) are skipped;
// each 0/<KIND> opens a record whose fields run to the next 0 pair.
func readTableOf(kind string, appendNew func(d *Drawing) tableRecord) tableReader {
	return func(d *Drawing, iter *codepair.PutBack) error {
		var current tableRecord
		for {
			pair, err := iter.Next()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			if pair.Code == 0 {
				name, err := pair.AssertString()
				if err != nil {
					return err
				}
				if name == kind {
					current = appendNew(d)
					continue
				}
				iter.Put(pair)
				return nil
			}
			if current == nil {
				// table-block preamble (handle, max count); not materialized
				continue
			}
			if err := applyRecordPair(current, pair); err != nil {
				return err
			}
		}
	}
}

func applyRecordPair(record tableRecord, pair codepair.CodePair) error {
	switch pair.Code {
	case record.handleCode():
		h, err := pair.Handle()
		if err != nil {
			return err
		}
		*record.recordHandle() = h
	case 2:
		name, err := pair.AssertString()
		if err != nil {
			return err
		}
		*record.recordName() = name
	default:
		return record.applyCodePair(pair)
	}
	return nil
}

// swallowTable discards pairs until the next 0/TABLE, 0/ENDSEC, or
// 0/ENDTAB, which is pushed back.
func swallowTable(iter *codepair.PutBack) error {
	for {
		pair, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return codepair.ErrUnexpectedEndOfInput
			}
			return err
		}
		if pair.Code == 0 {
			name, err := pair.AssertString()
			if err != nil {
				return err
			}
			switch name {
			case "TABLE", "ENDSEC", "ENDTAB":
				iter.Put(pair)
				return nil
			}
		}
	}
}

// tableBlock pairs a kind name with the records currently in the drawing,
// in the order blocks are emitted.
type tableBlock struct {
	kind    string
	records []tableRecord
}

func (d *Drawing) tableBlocks() []tableBlock {
	return []tableBlock{
		{"APPID", toRecords(d.AppIds)},
		{"BLOCK_RECORD", toRecords(d.BlockRecords)},
		{"DIMSTYLE", toRecords(d.DimStyles)},
		{"LAYER", toRecords(d.Layers)},
		{"LTYPE", toRecords(d.LineTypes)},
		{"STYLE", toRecords(d.Styles)},
		{"UCS", toRecords(d.Ucs)},
		{"VIEW", toRecords(d.Views)},
		{"VPORT", toRecords(d.ViewPorts)},
	}
}

func toRecords[T tableRecord](items []T) []tableRecord {
	records := make([]tableRecord, len(items))
	for i, item := range items {
		records[i] = item
	}
	return records
}

// writeTableBlocks emits one 0/TABLE block per non-empty table.
func (d *Drawing) writeTableBlocks(writeHandles bool, w codepair.PairWriter) error {
	for _, block := range d.tableBlocks() {
		if len(block.records) == 0 {
			continue
		}
		if err := w.WriteCodePair(codepair.NewString(0, "TABLE")); err != nil {
			return err
		}
		if err := w.WriteCodePair(codepair.NewString(2, block.kind)); err != nil {
			return err
		}
		if err := w.WriteCodePair(codepair.NewShort(70, int16(len(block.records)))); err != nil {
			return err
		}
		for _, record := range block.records {
			if err := writeTableRecord(record, writeHandles, w); err != nil {
				return err
			}
		}
		if err := w.WriteCodePair(codepair.NewString(0, "ENDTAB")); err != nil {
			return err
		}
	}
	return nil
}

func writeTableRecord(record tableRecord, writeHandles bool, w codepair.PairWriter) error {
	if err := w.WriteCodePair(codepair.NewString(0, record.tableKind())); err != nil {
		return err
	}
	if writeHandles && *record.recordHandle() != 0 {
		pair := codepair.NewString(record.handleCode(), codepair.FormatHandle(*record.recordHandle()))
		if err := w.WriteCodePair(pair); err != nil {
			return err
		}
	}
	if err := w.WriteCodePair(codepair.NewString(2, *record.recordName())); err != nil {
		return err
	}
	for _, p := range record.fieldPairs() {
		if err := w.WriteCodePair(p); err != nil {
			return err
		}
	}
	return nil
}
