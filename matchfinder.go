package bbdlz

import (
	"fmt"
	"math"
)

// LZ matches shorter than the fixed 4-byte token overhead can never beat the
// raw fallback, so candidates are indexed by their first 4 bytes.
const (
	minMatchLen = 4
	hashBits    = 16
	hashShift   = 64 - hashBits
)

// prime is used for hashing.
const prime = 9920624304325388887

func hashValue(x uint64) uint32 {
	return uint32((x * prime) >> hashShift)
}

type lzMatch struct {
	length   int
	distance int
}

type rleMatch struct {
	chunkSize int
	count     int
}

// plainLen returns the plain bytes the match expands to.
func (m rleMatch) plainLen() int { return m.chunkSize * m.count }

// matchFinder indexes a plain buffer for the encoder. Every position is
// chained to earlier positions sharing the same 4-byte prefix, most recent
// first, so a walk sees candidates in order of increasing distance.
type matchFinder struct {
	data  []byte
	head  []int32
	prev  []int32
	depth int
}

// newMatchFinder builds the chain index over data. depth limits how many
// chain entries a query inspects; 0 leaves the walk unbounded, which
// guarantees length-maximal matches.
func newMatchFinder(data []byte, depth int) *matchFinder {
	if len(data) > math.MaxInt32 {
		panic(fmt.Errorf("bbdlz: len(data)=%d too large", len(data)))
	}
	f := &matchFinder{data: data, depth: depth}
	f.head = make([]int32, 1<<hashBits)
	for i := range f.head {
		f.head[i] = -1
	}
	n := len(data) - minMatchLen + 1
	if n <= 0 {
		return f
	}
	f.prev = make([]int32, n)
	for i := 0; i < n; i++ {
		h := hashValue(uint64(_getLE32(data[i:])))
		f.prev[i] = f.head[h]
		f.head[h] = int32(i)
	}
	return f
}

// bestLZ returns the longest match starting at pos, ties broken by the
// smallest distance. Matches shorter than minMatchLen are not reported.
func (f *matchFinder) bestLZ(pos int) (m lzMatch, ok bool) {
	n := len(f.data)
	if pos < 1 || n-pos < minMatchLen {
		return lzMatch{}, false
	}
	maxLen := min(MaxCount, n-pos)
	v := _getLE32(f.data[pos:])
	tries := f.depth
	for j := f.head[hashValue(uint64(v))]; j >= 0; j = f.prev[j] {
		i := int(j)
		if i >= pos {
			continue
		}
		if pos-i > MaxDistance {
			// Chains descend by position, every further entry is
			// even farther away.
			break
		}
		if _getLE32(f.data[i:]) == v {
			// Comparing against the plain buffer handles
			// self-overlap: source bytes past pos equal the bytes
			// the copy itself will have produced.
			k := lcp(f.data[pos:pos+maxLen], f.data[i:])
			if k > m.length {
				m = lzMatch{length: k, distance: pos - i}
				if k == maxLen {
					break
				}
			}
		}
		if tries > 0 {
			if tries--; tries == 0 {
				break
			}
		}
	}
	if m.length < minMatchLen {
		return lzMatch{}, false
	}
	return m, true
}

// appendRLE appends, for every chunk size that fits the remaining buffer,
// the maximal repeat count starting at pos.
func (f *matchFinder) appendRLE(matches []rleMatch, pos int) []rleMatch {
	rem := len(f.data) - pos
	for c := 1; c <= MaxChunkSize && c <= rem; c++ {
		// If data repeats with period c for m extra bytes, the chunk
		// occurs 1+m/c full times.
		ext := min((MaxCount-1)*c, rem-c)
		m := lcp(f.data[pos+c:pos+c+ext], f.data[pos:])
		matches = append(matches, rleMatch{chunkSize: c, count: 1 + m/c})
	}
	return matches
}

// bestRLE returns the chunk size and count maximizing saved bytes per
// emitted byte, ties broken by the larger count. It reports no match when
// the best candidate does not expand past a single byte.
func (f *matchFinder) bestRLE(pos int) (m rleMatch, ok bool) {
	if pos >= len(f.data) {
		return rleMatch{}, false
	}
	var matches [MaxChunkSize]rleMatch
	for _, c := range f.appendRLE(matches[:0], pos) {
		// Compare plain/emit ratios by cross multiplication.
		l, r := c.plainLen()*(2+m.chunkSize), m.plainLen()*(2+c.chunkSize)
		if l > r || (l == r && c.count > m.count) {
			m = c
		}
	}
	if m.plainLen() <= 1 {
		return rleMatch{}, false
	}
	return m, true
}
