package codepair

// PutBack wraps a PairReader with single-item pushback, which is all the
// lookahead the section and entity readers ever need. Pushing a second pair
// without consuming the first is a programming error and panics.
type PutBack struct {
	r      PairReader
	buf    CodePair
	hasBuf bool
}

// NewPutBack wraps r with an empty pushback slot.
func NewPutBack(r PairReader) *PutBack {
	return &PutBack{r: r}
}

func (p *PutBack) Next() (CodePair, error) {
	if p.hasBuf {
		p.hasBuf = false
		return p.buf, nil
	}
	return p.r.Next()
}

// Put returns a pair to the stream so the next call to Next yields it again.
func (p *PutBack) Put(pair CodePair) {
	if p.hasBuf {
		panic("codepair: PutBack buffer already occupied")
	}
	p.buf = pair
	p.hasBuf = true
}
