package bbdlz

import "fmt"

// Decode expands the compressed block in p starting at offset and returns
// the plain buffer together with the number of compressed bytes consumed,
// terminator included. Decoding stops at the terminator; trailing bytes in p
// are ignored.
//
// Decode returns [ErrTruncated] if a header or payload reaches past the end
// of p, and [ErrBackReference] if an LZ copy points before the start of the
// output.
func Decode(p []byte, offset int) (data []byte, consumed int, err error) {
	if !(0 <= offset && offset <= len(p)) {
		return nil, 0, fmt.Errorf("%w: offset %d outside input of %d bytes",
			ErrTruncated, offset, len(p))
	}
	pos := offset
	for {
		t, n, err := readToken(p, pos)
		if err != nil {
			return nil, 0, err
		}
		pos += n
		switch t.Kind {
		case KindRaw:
			if len(t.Data) == 0 {
				return data, pos - offset, nil
			}
			data = append(data, t.Data...)
		case KindRLE:
			for k := 0; k < t.N; k++ {
				data = append(data, t.Data...)
			}
		case KindLZ:
			if t.Dist > len(data) {
				return nil, 0, fmt.Errorf(
					"%w: distance %d with only %d bytes decoded",
					ErrBackReference, t.Dist, len(data))
			}
			// The copy may overlap its own output, so it has to go
			// byte by byte: every appended byte is readable by the
			// later bytes of the same copy.
			j := len(data) - t.Dist
			for k := 0; k < t.N; k++ {
				data = append(data, data[j+k])
			}
		}
	}
}

// Tokens scans the compressed block in p starting at offset and returns its
// token sequence without the terminator, plus the number of compressed bytes
// consumed. No output is produced, so LZ distances are not validated against
// a decode position.
func Tokens(p []byte, offset int) (tokens []Token, consumed int, err error) {
	if !(0 <= offset && offset <= len(p)) {
		return nil, 0, fmt.Errorf("%w: offset %d outside input of %d bytes",
			ErrTruncated, offset, len(p))
	}
	pos := offset
	for {
		t, n, err := readToken(p, pos)
		if err != nil {
			return nil, 0, err
		}
		pos += n
		if t.Kind == KindRaw && len(t.Data) == 0 {
			return tokens, pos - offset, nil
		}
		tokens = append(tokens, t)
	}
}

// readToken decodes the token header at pos and slices its payload out of p.
// It returns the token and the number of stream bytes it occupies.
func readToken(p []byte, pos int) (t Token, n int, err error) {
	if pos >= len(p) {
		return Token{}, 0, fmt.Errorf("%w: missing token header at %d",
			ErrTruncated, pos)
	}
	flag := p[pos]
	if flag&0x80 == 0 {
		// Raw literals; length 0 is the terminator.
		end := pos + 1 + int(flag)
		if end > len(p) {
			return Token{}, 0, fmt.Errorf(
				"%w: raw payload of %d bytes at %d",
				ErrTruncated, int(flag), pos+1)
		}
		return Token{Kind: KindRaw, Data: p[pos+1 : end]}, end - pos, nil
	}
	if pos+1 >= len(p) {
		return Token{}, 0, fmt.Errorf("%w: missing count byte at %d",
			ErrTruncated, pos+1)
	}
	count := int(flag&3)<<8 | int(p[pos+1])
	if size := int(flag>>2) & 0x1F; size != lzSentinel {
		chunkSize := size + 1
		end := pos + 2 + chunkSize
		if end > len(p) {
			return Token{}, 0, fmt.Errorf(
				"%w: rle chunk of %d bytes at %d",
				ErrTruncated, chunkSize, pos+2)
		}
		t = Token{Kind: KindRLE, Data: p[pos+2 : end], N: count}
		return t, end - pos, nil
	}
	if pos+4 > len(p) {
		return Token{}, 0, fmt.Errorf("%w: missing lz distance at %d",
			ErrTruncated, pos+2)
	}
	dist := int(p[pos+2])<<8 | int(p[pos+3])
	if dist == 0 {
		return Token{}, 0, fmt.Errorf("%w: distance 0 at %d",
			ErrBackReference, pos+2)
	}
	return Token{Kind: KindLZ, N: count, Dist: dist}, 4, nil
}
