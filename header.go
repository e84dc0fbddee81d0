package dxfio

import (
	"io"

	"github.com/hailam/dxfio/codepair"
)

// Header holds drawing-wide settings from the HEADER section. Only the
// variables this library acts on are materialized; everything else is
// skipped on read and absent on write.
type Header struct {
	// Version is the drawing database version ($ACADVER).
	Version AcadVersion
	// HandlesEnabled mirrors $HANDLING; on R13 and later handles are
	// always written regardless of this flag.
	HandlesEnabled bool
	// NextAvailableHandle is the $HANDSEED value.
	NextAvailableHandle uint32
	// InsertionBase is $INSBASE.
	InsertionBase Point
	// MinimumDrawingExtents is $EXTMIN.
	MinimumDrawingExtents Point
	// MaximumDrawingExtents is $EXTMAX.
	MaximumDrawingExtents Point
	// LineTypeScale is $LTSCALE.
	LineTypeScale float64
}

// NewHeader returns a header with the defaults a fresh drawing carries.
func NewHeader() Header {
	return Header{
		Version:             R12,
		NextAvailableHandle: 1,
		LineTypeScale:       1.0,
	}
}

// readHeader consumes the HEADER section body: a run of 9/$NAME pairs each
// followed by that variable's value pairs. Returns with the terminating
// 0-code pair pushed back for the section reader to verify.
func readHeader(iter *codepair.PutBack) (Header, error) {
	header := NewHeader()
	for {
		pair, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return header, nil
			}
			return header, err
		}
		if pair.Code == 0 {
			iter.Put(pair)
			return header, nil
		}
		if pair.Code != 9 {
			return header, &codepair.UnexpectedCodePairError{Pair: pair, Message: "expected 9/$VARIABLE"}
		}
		name, err := pair.AssertString()
		if err != nil {
			return header, err
		}
		if err := header.readVariable(name, iter); err != nil {
			return header, err
		}
	}
}

func (h *Header) readVariable(name string, iter *codepair.PutBack) error {
	switch name {
	case "$ACADVER":
		pair, err := nextValuePair(iter)
		if err != nil {
			return err
		}
		s, err := pair.AssertString()
		if err != nil {
			return err
		}
		version, err := ParseAcadVersion(s)
		if err != nil {
			return err
		}
		h.Version = version
	case "$HANDLING":
		pair, err := nextValuePair(iter)
		if err != nil {
			return err
		}
		v, err := pair.AssertShort()
		if err != nil {
			return err
		}
		h.HandlesEnabled = v != 0
	case "$HANDSEED":
		pair, err := nextValuePair(iter)
		if err != nil {
			return err
		}
		handle, err := pair.Handle()
		if err != nil {
			return err
		}
		h.NextAvailableHandle = handle
	case "$LTSCALE":
		pair, err := nextValuePair(iter)
		if err != nil {
			return err
		}
		v, err := pair.AssertDouble()
		if err != nil {
			return err
		}
		h.LineTypeScale = v
	case "$INSBASE":
		return readHeaderPoint(iter, &h.InsertionBase)
	case "$EXTMIN":
		return readHeaderPoint(iter, &h.MinimumDrawingExtents)
	case "$EXTMAX":
		return readHeaderPoint(iter, &h.MaximumDrawingExtents)
	default:
		// unrecognized variable: discard its value pairs
		for {
			pair, err := iter.Next()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			if pair.Code == 0 || pair.Code == 9 {
				iter.Put(pair)
				return nil
			}
		}
	}
	return nil
}

// nextValuePair returns the next pair, which must exist: running out of
// input in the middle of a header variable is a truncated structure.
func nextValuePair(iter *codepair.PutBack) (codepair.CodePair, error) {
	pair, err := iter.Next()
	if err != nil {
		if err == io.EOF {
			return codepair.CodePair{}, codepair.ErrUnexpectedEndOfInput
		}
		return codepair.CodePair{}, err
	}
	return pair, nil
}

func readHeaderPoint(iter *codepair.PutBack, pt *Point) error {
	for {
		pair, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch pair.Code {
		case 10:
			if pt.X, err = pair.AssertDouble(); err != nil {
				return err
			}
		case 20:
			if pt.Y, err = pair.AssertDouble(); err != nil {
				return err
			}
		case 30:
			if pt.Z, err = pair.AssertDouble(); err != nil {
				return err
			}
		default:
			iter.Put(pair)
			return nil
		}
	}
}

// write emits the HEADER section.
func (h *Header) write(w codepair.PairWriter) error {
	pairs := []codepair.CodePair{
		codepair.NewString(0, "SECTION"),
		codepair.NewString(2, "HEADER"),
		codepair.NewString(9, "$ACADVER"),
		codepair.NewString(1, h.Version.VersionString()),
	}
	if h.Version < R13 {
		handling := int16(0)
		if h.HandlesEnabled {
			handling = 1
		}
		pairs = append(pairs,
			codepair.NewString(9, "$HANDLING"),
			codepair.NewShort(70, handling))
	}
	pairs = append(pairs,
		codepair.NewString(9, "$HANDSEED"),
		codepair.NewString(5, codepair.FormatHandle(h.NextAvailableHandle)),
		codepair.NewString(9, "$LTSCALE"),
		codepair.NewDouble(40, h.LineTypeScale))
	pairs = appendPointPairs(pairs, "$INSBASE", h.InsertionBase)
	pairs = appendPointPairs(pairs, "$EXTMIN", h.MinimumDrawingExtents)
	pairs = appendPointPairs(pairs, "$EXTMAX", h.MaximumDrawingExtents)
	pairs = append(pairs, codepair.NewString(0, "ENDSEC"))
	for _, p := range pairs {
		if err := w.WriteCodePair(p); err != nil {
			return err
		}
	}
	return nil
}

func appendPointPairs(pairs []codepair.CodePair, name string, pt Point) []codepair.CodePair {
	return append(pairs,
		codepair.NewString(9, name),
		codepair.NewDouble(10, pt.X),
		codepair.NewDouble(20, pt.Y),
		codepair.NewDouble(30, pt.Z))
}
