package dxfio

import (
	"io"

	"github.com/hailam/dxfio/codepair"
)

// entityIter turns the pair stream inside an ENTITIES body into a lazy
// sequence of raw entities. io.EOF marks the end of the body; the 0/ENDSEC
// pair that closed it is pushed back for the section reader to verify.
type entityIter struct {
	iter *codepair.PutBack
}

func (e *entityIter) next() (*Entity, error) {
	for {
		pair, err := e.iter.Next()
		if err != nil {
			return nil, err // io.EOF: truncated but clean end of entities
		}
		if pair.Code != 0 {
			return nil, &codepair.UnexpectedCodePairError{Pair: pair, Message: "expected 0/<entity-type>"}
		}
		if pair.IsString(0, "ENDSEC") {
			e.iter.Put(pair)
			return nil, io.EOF
		}
		typeString, err := pair.AssertString()
		if err != nil {
			return nil, err
		}
		specific := newSpecificEntity(typeString)
		if specific == nil {
			// unrecognized entity type: discard its field pairs
			if err := e.swallowFields(); err != nil {
				return nil, err
			}
			continue
		}
		ent := &Entity{Specific: specific}
		if err := e.readFields(ent); err != nil {
			return nil, err
		}
		return ent, nil
	}
}

// readFields consumes the entity's non-0 pairs, routing each to the
// specific variant first and the common fields second; the 0 pair that
// opens the next entity is pushed back.
func (e *entityIter) readFields(ent *Entity) error {
	for {
		pair, err := e.iter.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if pair.Code == 0 {
			e.iter.Put(pair)
			return nil
		}
		if pair.Code == xdataApplicationName {
			appName, err := pair.AssertString()
			if err != nil {
				return err
			}
			xdata, err := readXData(appName, e.iter)
			if err != nil {
				return err
			}
			ent.Common.XData = append(ent.Common.XData, xdata)
			continue
		}
		consumed, err := ent.Specific.applyCodePair(pair)
		if err != nil {
			return err
		}
		if !consumed {
			if err := ent.Common.applyCodePair(pair); err != nil {
				return err
			}
		}
	}
}

func (e *entityIter) swallowFields() error {
	for {
		pair, err := e.iter.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if pair.Code == 0 {
			e.iter.Put(pair)
			return nil
		}
	}
}

// entityPutBack gives the post-processor its single-item lookahead over the
// raw entity sequence.
type entityPutBack struct {
	iter *entityIter
	buf  *Entity
}

func (p *entityPutBack) next() (*Entity, error) {
	if p.buf != nil {
		ent := p.buf
		p.buf = nil
		return ent, nil
	}
	return p.iter.next()
}

func (p *entityPutBack) put(ent *Entity) {
	if p.buf != nil {
		panic("dxfio: entity pushback buffer already occupied")
	}
	p.buf = ent
}
