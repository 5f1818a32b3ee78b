package bbdlz

import "fmt"

// GreedyConfig configures the greedy parser, which reproduces the strategy
// of the original encoder: accumulate raw literals and emit a compressed
// token only when its gain beats dumping the raws now and is not undercut by
// a better match one position later. It is much faster than the optimal
// parser and usually close in output size.
type GreedyConfig struct {
	// ChainDepth limits how many match candidates are inspected per
	// position; 0 keeps the walk unbounded.
	ChainDepth int
}

// Clone creates a copy of the configuration.
func (cfg *GreedyConfig) Clone() ParserConfig {
	x := *cfg
	return &x
}

// SetDefaults sets the defaults for the zero values of the configuration.
// All zero values are valid defaults.
func (cfg *GreedyConfig) SetDefaults() {}

// Verify checks the configuration.
func (cfg *GreedyConfig) Verify() error {
	if cfg.ChainDepth < 0 {
		return fmt.Errorf("bbdlz: ChainDepth=%d must not be negative",
			cfg.ChainDepth)
	}
	return nil
}

// UnmarshalJSON parses the JSON value and sets the fields of GreedyConfig.
func (cfg *GreedyConfig) UnmarshalJSON(p []byte) error {
	*cfg = GreedyConfig{}
	return unmarshalJSON(cfg, p)
}

// MarshalJSON creates the JSON string for the configuration. Note that it
// adds a property Type with value "Greedy" to the structure.
func (cfg *GreedyConfig) MarshalJSON() ([]byte, error) {
	return marshalJSON(cfg)
}

// NewParser returns the greedy parser.
func (cfg *GreedyConfig) NewParser() (Parser, error) {
	c := *cfg
	c.SetDefaults()
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return &greedyParser{cfg: c}, nil
}

type greedyParser struct {
	cfg GreedyConfig
}

// candidate is a compress command with the compare pair of the original
// encoder: gain in stream bytes first, expanded plain length second.
type candidate struct {
	gain      int
	plain     int
	kind      Kind
	chunkSize int
	count     int
	dist      int
	ok        bool
}

// beats implements the candidate ordering: by gain, then by plain length.
func (c candidate) beats(o candidate) bool {
	if !o.ok {
		return true
	}
	return c.gain > o.gain || (c.gain == o.gain && c.plain > o.plain)
}

func (s *greedyParser) Parse(p []byte) ([]Token, error) {
	f := newMatchFinder(p, s.cfg.ChainDepth)
	var rle []rleMatch

	// best returns the highest-gain RLE or LZ command starting at pos.
	best := func(pos int) candidate {
		var b candidate
		rle = f.appendRLE(rle[:0], pos)
		for _, m := range rle {
			c := candidate{
				gain:      m.plainLen() - (2 + m.chunkSize),
				plain:     m.plainLen(),
				kind:      KindRLE,
				chunkSize: m.chunkSize,
				count:     m.count,
				ok:        true,
			}
			if c.beats(b) {
				b = c
			}
		}
		if m, ok := f.bestLZ(pos); ok {
			c := candidate{
				gain:  m.length - 4,
				plain: m.length,
				kind:  KindLZ,
				dist:  m.distance,
				ok:    true,
			}
			if c.beats(b) {
				b = c
			}
		}
		return b
	}

	var tokens []Token
	rawStart, rawLen := 0, 0
	flush := func() error {
		if rawLen == 0 {
			return nil
		}
		t, err := Raw(p[rawStart : rawStart+rawLen])
		if err != nil {
			return err
		}
		tokens = append(tokens, t)
		rawLen = 0
		return nil
	}
	// Dumping literals costs one header byte however many there are, so
	// only the very first literal of a run loses a byte.
	rawGain := func(n int) int {
		if n <= 1 {
			return -1
		}
		return 0
	}

	pos := 0
	for pos < len(p) {
		cur := best(pos)
		curRawGain := rawGain(rawLen + 1)
		emit := false
		if cur.ok && cur.gain > curRawGain {
			// One-position lookahead: skipping this match must not
			// block a better one starting at the next byte.
			skipGain := rawGain(rawLen + 2)
			if pos+1 < len(p) {
				skipGain = best(pos + 1).gain
			}
			emit = cur.gain >= curRawGain+skipGain
		}
		if emit {
			if err := flush(); err != nil {
				return nil, err
			}
			var t Token
			var err error
			if cur.kind == KindRLE {
				t, err = RLE(p[pos:pos+cur.chunkSize], cur.count)
			} else {
				t, err = LZ(cur.plain, cur.dist)
			}
			if err != nil {
				return nil, fmt.Errorf(
					"bbdlz: greedy parse chose an invalid token: %w", err)
			}
			tokens = append(tokens, t)
			pos += cur.plain
		} else {
			if rawLen == 0 {
				rawStart = pos
			}
			rawLen++
			pos++
			if rawLen == MaxRawLen {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tokens, nil
}

var (
	_ Parser       = (*greedyParser)(nil)
	_ ParserConfig = (*GreedyConfig)(nil)
)
