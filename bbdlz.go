// Package bbdlz implements the hybrid LZ77/RLE byte-stream codec used for
// graphics tiles, tilemaps and similar binary assets in the Battle B-Daman
// GBA cartridges (and possibly other Atlus titles).
//
// A compressed stream is a sequence of self-describing tokens. A raw token
// copies up to 127 literal bytes, an RLE token repeats a 1..31 byte chunk up
// to 1023 times, and an LZ token copies up to 1023 bytes from up to 65535
// bytes back in the already decoded output. Copies may overlap their own
// output, which expands short patterns into long periodic runs. A zero-length
// raw token terminates the stream.
//
// [Decode] expands a compressed block into a plain buffer. [Encode] runs a
// cost-minimizing parse over a plain buffer and serializes the resulting
// token sequence; the emitted stream is the smallest this token format can
// represent for the input. [GreedyConfig] provides the faster one-step
// lookahead strategy of the historical encoder instead.
//
// The 16-bit LZ distance field is serialized big-endian.
package bbdlz

// Field limits of the wire format. The headers leave 7 bits for a raw
// literal count, 5 bits for the RLE chunk size minus one, 10 bits for the
// RLE repeat count and the LZ copy length, and 16 bits for the LZ distance.
const (
	// MaxRawLen is the largest literal count of a raw token. A count of
	// zero is reserved for the stream terminator.
	MaxRawLen = 0x7F
	// MaxChunkSize is the largest RLE chunk size.
	MaxChunkSize = 0x1F
	// MaxCount limits the RLE repeat count and the LZ copy length.
	MaxCount = 0x3FF
	// MaxDistance is the largest backward distance of an LZ copy.
	MaxDistance = 0xFFFF

	// The 5-bit size field of a compressed-token header holds chunkSize-1
	// for RLE; the all-ones value marks an LZ token instead.
	lzSentinel = 0x1F
)

// Encode compresses p into a complete compressed block, including the
// terminator. It uses the cost-minimizing parser with default settings; the
// stream decodes back to exactly p. Encoding cannot fail for a finite
// buffer, raw literals always provide a fallback.
func Encode(p []byte) ([]byte, error) {
	tokens, err := EncodeTokens(p)
	if err != nil {
		return nil, err
	}
	return Serialize(tokens)
}

// EncodeTokens returns the minimal-cost token sequence for p, without the
// terminator.
func EncodeTokens(p []byte) ([]Token, error) {
	cfg := &OptimalConfig{}
	cfg.SetDefaults()
	parser, err := cfg.NewParser()
	if err != nil {
		return nil, err
	}
	return parser.Parse(p)
}
