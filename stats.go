package bbdlz

// Stats summarizes a token sequence.
type Stats struct {
	// Token counts per kind.
	RawTokens int
	RLETokens int
	LZTokens  int

	// EmitBytes counts the stream bytes including the terminator;
	// PlainBytes counts the decoded output.
	EmitBytes  int
	PlainBytes int

	// Histograms of LZ distances and of RLE/LZ plain lengths.
	DistHist map[int]int
	LenHist  map[int]int
}

// CollectStats computes the statistics of a token sequence, terminator
// excluded from the sequence but included in EmitBytes.
func CollectStats(tokens []Token) Stats {
	st := Stats{
		EmitBytes: 1,
		DistHist:  make(map[int]int),
		LenHist:   make(map[int]int),
	}
	for _, t := range tokens {
		st.EmitBytes += t.EmitLen()
		st.PlainBytes += t.PlainLen()
		switch t.Kind {
		case KindRaw:
			st.RawTokens++
		case KindRLE:
			st.RLETokens++
			st.LenHist[t.PlainLen()]++
		case KindLZ:
			st.LZTokens++
			st.DistHist[t.Dist]++
			st.LenHist[t.N]++
		}
	}
	return st
}

// Ratio returns emitted bytes per plain byte; 1 for an empty buffer.
func (st Stats) Ratio() float64 {
	if st.PlainBytes == 0 {
		return 1
	}
	return float64(st.EmitBytes) / float64(st.PlainBytes)
}
