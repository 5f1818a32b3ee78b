package bbdlz

// AppendToken appends the wire representation of t to p and returns the
// extended slice. The token must satisfy the field widths; use the [Raw],
// [RLE] and [LZ] constructors or [Serialize], which verifies.
func AppendToken(p []byte, t Token) []byte {
	switch t.Kind {
	case KindRaw:
		p = append(p, byte(len(t.Data)))
		p = append(p, t.Data...)
	case KindRLE:
		p = append(p, 0x80|byte(len(t.Data)-1)<<2|byte(t.N>>8), byte(t.N))
		p = append(p, t.Data...)
	case KindLZ:
		// Distance is big-endian on the wire.
		p = append(p, 0x80|lzSentinel<<2|byte(t.N>>8), byte(t.N),
			byte(t.Dist>>8), byte(t.Dist))
	}
	return p
}

// Serialize writes the token sequence followed by the one-byte terminator.
// Tokens reaching this stage are normally already valid; the field widths
// are re-checked to guard against hand-built tokens, and a zero-length raw
// token inside the sequence is rejected with [ErrEarlyTerminator].
func Serialize(tokens []Token) ([]byte, error) {
	n := 1
	for _, t := range tokens {
		n += t.EmitLen()
	}
	p := make([]byte, 0, n)
	for _, t := range tokens {
		if err := t.verify(); err != nil {
			return nil, err
		}
		if t.Kind == KindRaw && len(t.Data) == 0 {
			return nil, ErrEarlyTerminator
		}
		p = AppendToken(p, t)
	}
	return append(p, 0), nil
}
