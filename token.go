package bbdlz

import "fmt"

// Kind tags the three token variants of the compressed stream.
type Kind byte

// Token kinds.
const (
	KindRaw Kind = iota
	KindRLE
	KindLZ
)

// String returns the name of the token kind.
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindRLE:
		return "rle"
	case KindLZ:
		return "lz"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one self-describing unit of a compressed stream. Data holds the
// raw literals or the RLE chunk; N is the RLE repeat count or the LZ copy
// length; Dist is the LZ backward distance. Tokens are not modified after
// construction. Use [Raw], [RLE] and [LZ] to build tokens with validated
// field widths.
type Token struct {
	Kind Kind
	Data []byte
	N    int
	Dist int
}

// Raw returns a raw literal token for p. An empty p yields the stream
// terminator.
func Raw(p []byte) (Token, error) {
	if len(p) > MaxRawLen {
		return Token{}, fmt.Errorf("%w: raw length %d > %d",
			ErrFieldOverflow, len(p), MaxRawLen)
	}
	return Token{Kind: KindRaw, Data: p}, nil
}

// RLE returns a token repeating chunk count times.
func RLE(chunk []byte, count int) (Token, error) {
	if !(1 <= len(chunk) && len(chunk) <= MaxChunkSize) {
		return Token{}, fmt.Errorf("%w: chunk size %d out of range [1,%d]",
			ErrFieldOverflow, len(chunk), MaxChunkSize)
	}
	if !(0 <= count && count <= MaxCount) {
		return Token{}, fmt.Errorf("%w: repeat count %d out of range [0,%d]",
			ErrFieldOverflow, count, MaxCount)
	}
	return Token{Kind: KindRLE, Data: chunk, N: count}, nil
}

// LZ returns a token copying length bytes from distance bytes back in the
// decoded output. The distance may be smaller than the length; the copy then
// overlaps its own output.
func LZ(length, distance int) (Token, error) {
	if !(0 <= length && length <= MaxCount) {
		return Token{}, fmt.Errorf("%w: copy length %d out of range [0,%d]",
			ErrFieldOverflow, length, MaxCount)
	}
	if !(1 <= distance && distance <= MaxDistance) {
		return Token{}, fmt.Errorf("%w: distance %d out of range [1,%d]",
			ErrFieldOverflow, distance, MaxDistance)
	}
	return Token{Kind: KindLZ, N: length, Dist: distance}, nil
}

// EmitLen returns the number of bytes the token occupies in the compressed
// stream. The terminator occupies a single byte.
func (t Token) EmitLen() int {
	switch t.Kind {
	case KindRaw:
		return 1 + len(t.Data)
	case KindRLE:
		return 2 + len(t.Data)
	default:
		return 4
	}
}

// PlainLen returns the number of plain bytes the token produces when
// decoded. The terminator produces none.
func (t Token) PlainLen() int {
	switch t.Kind {
	case KindRaw:
		return len(t.Data)
	case KindRLE:
		return len(t.Data) * t.N
	default:
		return t.N
	}
}

// verify re-checks the constructor invariants for hand-built tokens.
func (t Token) verify() error {
	var err error
	switch t.Kind {
	case KindRaw:
		_, err = Raw(t.Data)
	case KindRLE:
		_, err = RLE(t.Data, t.N)
	case KindLZ:
		_, err = LZ(t.N, t.Dist)
	default:
		err = fmt.Errorf("bbdlz: unknown token kind %d", int(t.Kind))
	}
	return err
}
