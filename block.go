package sound

// Block is a fixed-length ordered sequence of samples. Samples are either
// real (float64) or complex (complex128); a block is always exactly one of
// the two. The zero value is an empty real block.
type Block struct {
	floats []float64
	cplx   []complex128
}

// Real wraps a float64 slice into a block without copying.
func Real(s []float64) Block {
	return Block{floats: s}
}

// Complex wraps a complex128 slice into a block without copying.
func Complex(s []complex128) Block {
	return Block{cplx: s}
}

// ZeroReal returns a zero-filled real block of length n.
func ZeroReal(n int) Block {
	return Block{floats: make([]float64, n)}
}

// ZeroComplex returns a zero-filled complex block of length n.
func ZeroComplex(n int) Block {
	return Block{cplx: make([]complex128, n)}
}

// Len returns the number of samples in the block.
func (b Block) Len() int {
	if b.cplx != nil {
		return len(b.cplx)
	}
	return len(b.floats)
}

// IsComplex reports whether the block holds complex samples.
func (b Block) IsComplex() bool {
	return b.cplx != nil
}

// Floats returns the underlying real samples. It returns nil for a complex
// block. The returned slice aliases the block's storage.
func (b Block) Floats() []float64 {
	return b.floats
}

// Complexes returns the underlying complex samples. It returns nil for a
// real block. The returned slice aliases the block's storage.
func (b Block) Complexes() []complex128 {
	return b.cplx
}

// At returns the i-th sample widened to complex128.
func (b Block) At(i int) complex128 {
	if b.cplx != nil {
		return b.cplx[i]
	}
	return complex(b.floats[i], 0)
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	if b.cplx != nil {
		s := make([]complex128, len(b.cplx))
		copy(s, b.cplx)
		return Block{cplx: s}
	}
	s := make([]float64, len(b.floats))
	copy(s, b.floats)
	return Block{floats: s}
}

// AsComplex returns the block as complex samples. A complex block is
// returned as is, a real block is widened into a fresh allocation.
func (b Block) AsComplex() Block {
	if b.cplx != nil {
		return b
	}
	s := make([]complex128, len(b.floats))
	for i, v := range b.floats {
		s[i] = complex(v, 0)
	}
	return Block{cplx: s}
}

// Append returns the concatenation of b and other. The result is promoted
// to complex when either block is complex. It may reuse b's storage.
func (b Block) Append(other Block) Block {
	if b.cplx != nil || other.cplx != nil {
		b = b.AsComplex()
		other = other.AsComplex()
		return Block{cplx: append(b.cplx, other.cplx...)}
	}
	return Block{floats: append(b.floats, other.floats...)}
}

// Slice returns the [start:end) sub-block. The result aliases the block's
// storage.
func (b Block) Slice(start, end int) Block {
	if b.cplx != nil {
		return Block{cplx: b.cplx[start:end]}
	}
	return Block{floats: b.floats[start:end]}
}
