package bbdlz

import "fmt"

// OptimalConfig configures the cost-minimizing parser. The parser runs a
// dynamic program over the whole buffer and returns the token sequence with
// the smallest total emitted byte count, terminator included.
type OptimalConfig struct {
	// ChainDepth limits how many match candidates are inspected per
	// position; 0 keeps the walk unbounded, which guarantees a minimal
	// parse.
	ChainDepth int
}

// Clone creates a copy of the configuration.
func (cfg *OptimalConfig) Clone() ParserConfig {
	x := *cfg
	return &x
}

// SetDefaults sets the defaults for the zero values of the configuration.
// All zero values are valid defaults.
func (cfg *OptimalConfig) SetDefaults() {}

// Verify checks the configuration.
func (cfg *OptimalConfig) Verify() error {
	if cfg.ChainDepth < 0 {
		return fmt.Errorf("bbdlz: ChainDepth=%d must not be negative",
			cfg.ChainDepth)
	}
	return nil
}

// UnmarshalJSON parses the JSON value and sets the fields of OptimalConfig.
func (cfg *OptimalConfig) UnmarshalJSON(p []byte) error {
	*cfg = OptimalConfig{}
	return unmarshalJSON(cfg, p)
}

// MarshalJSON creates the JSON string for the configuration. Note that it
// adds a property Type with value "Optimal" to the structure.
func (cfg *OptimalConfig) MarshalJSON() ([]byte, error) {
	return marshalJSON(cfg)
}

// NewParser returns the cost-minimizing parser.
func (cfg *OptimalConfig) NewParser() (Parser, error) {
	c := *cfg
	c.SetDefaults()
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return &optimalParser{cfg: c}, nil
}

// choice records the transition the dynamic program took at a position. The
// n field is the number of plain bytes the transition consumes.
type choice struct {
	kind      Kind
	n         int
	chunkSize int
	count     int
	dist      int
}

type optimalParser struct {
	cfg OptimalConfig
}

// Parse finds the token sequence of minimal emitted size for p. cost[i] is
// the minimal number of stream bytes needed for p[i:] plus the terminator,
// computed back to front; the recorded choices are then walked forward to
// build the sequence.
func (s *optimalParser) Parse(p []byte) ([]Token, error) {
	n := len(p)
	if n == 0 {
		return nil, nil
	}
	f := newMatchFinder(p, s.cfg.ChainDepth)

	cost := make([]int32, n+1)
	choices := make([]choice, n)
	cost[n] = 1
	var rle []rleMatch
	for pos := n - 1; pos >= 0; pos-- {
		// Raw literal of every admissible length. Splitting a raw run
		// never pays by itself, but a shorter run can end exactly
		// where a cheaper match begins.
		best := cost[pos+1] + 2
		ch := choice{kind: KindRaw, n: 1}
		for l := 2; l <= MaxRawLen && pos+l <= n; l++ {
			if c := cost[pos+l] + int32(1+l); c < best {
				best = c
				ch = choice{kind: KindRaw, n: l}
			}
		}
		rle = f.appendRLE(rle[:0], pos)
		for _, m := range rle {
			emit := int32(2 + m.chunkSize)
			for count := m.count; count >= 1; count-- {
				adv := m.chunkSize * count
				if c := cost[pos+adv] + emit; c < best {
					best = c
					ch = choice{
						kind:      KindRLE,
						n:         adv,
						chunkSize: m.chunkSize,
						count:     count,
					}
				}
			}
		}
		if m, ok := f.bestLZ(pos); ok {
			// A prefix of a match is a match at the same distance.
			for l := m.length; l >= 1; l-- {
				if c := cost[pos+l] + 4; c < best {
					best = c
					ch = choice{kind: KindLZ, n: l, dist: m.distance}
				}
			}
		}
		cost[pos] = best
		choices[pos] = ch
	}

	var tokens []Token
	for pos := 0; pos < n; {
		ch := choices[pos]
		var t Token
		var err error
		switch ch.kind {
		case KindRaw:
			t, err = Raw(p[pos : pos+ch.n])
		case KindRLE:
			t, err = RLE(p[pos:pos+ch.chunkSize], ch.count)
		default:
			t, err = LZ(ch.n, ch.dist)
		}
		if err != nil {
			return nil, fmt.Errorf(
				"bbdlz: optimal parse chose an invalid token: %w", err)
		}
		tokens = append(tokens, t)
		pos += ch.n
	}
	return tokens, nil
}

var (
	_ Parser       = (*optimalParser)(nil)
	_ ParserConfig = (*OptimalConfig)(nil)
)
