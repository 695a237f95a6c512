package jsonp

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }
