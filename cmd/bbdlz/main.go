// Command bbdlz packs and unpacks the LZ/RLE-compressed binary assets of
// the Battle B-Daman GBA cartridges.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/romhack/bbdlz"
	"github.com/rs/zerolog"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: bbdlz <command> [options] <file>

Commands:
  pack    compress a plain file
  unpack  decompress a packed block
  stats   report token statistics of a plain file's parse

Run 'bbdlz <command> -h' for the options of a command.
`)
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch cmd := os.Args[1]; cmd {
	case "pack":
		err = pack(log, os.Args[2:])
	case "unpack":
		err = unpack(log, os.Args[2:])
	case "stats":
		err = stats(log, os.Args[2:])
	case "-h", "-help", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "bbdlz: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg(os.Args[1] + " failed")
	}
}

// newParser builds the parser selected by the pack/stats flags: a JSON
// config file wins, then the -greedy shorthand, default optimal.
func newParser(configFile string, greedy bool) (bbdlz.Parser, error) {
	var cfg bbdlz.ParserConfig
	switch {
	case configFile != "":
		p, err := os.ReadFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg, err = bbdlz.ParseJSON(p)
		if err != nil {
			return nil, err
		}
	case greedy:
		cfg = &bbdlz.GreedyConfig{}
	default:
		cfg = &bbdlz.OptimalConfig{}
	}
	cfg.SetDefaults()
	return cfg.NewParser()
}

func inputFile(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one input file, got %d",
			fs.NArg())
	}
	return fs.Arg(0), nil
}

func pack(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	outName := fs.String("o", "compressed.bin", "output packed file name")
	configFile := fs.String("config", "", "JSON parser configuration file")
	greedy := fs.Bool("greedy", false, "use the greedy parser of the original encoder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	inName, err := inputFile(fs)
	if err != nil {
		return err
	}

	plain, err := os.ReadFile(inName)
	if err != nil {
		return err
	}
	parser, err := newParser(*configFile, *greedy)
	if err != nil {
		return err
	}

	start := time.Now()
	tokens, err := parser.Parse(plain)
	if err != nil {
		return err
	}
	packed, err := bbdlz.Serialize(tokens)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outName, packed, 0644); err != nil {
		return err
	}

	st := bbdlz.CollectStats(tokens)
	log.Info().
		Str("out", *outName).
		Int("plain", len(plain)).
		Int("packed", len(packed)).
		Float64("ratio", st.Ratio()).
		Dur("took", time.Since(start)).
		Msg("packed")
	return nil
}

func unpack(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ExitOnError)
	addr := fs.String("a", "0", "offset of the packed block start (0x-prefixed hex allowed)")
	outName := fs.String("o", "decompressed.bin", "output plain file name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	inName, err := inputFile(fs)
	if err != nil {
		return err
	}

	offset, err := strconv.ParseInt(*addr, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid offset %q: %w", *addr, err)
	}
	packed, err := os.ReadFile(inName)
	if err != nil {
		return err
	}
	plain, consumed, err := bbdlz.Decode(packed, int(offset))
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outName, plain, 0644); err != nil {
		return err
	}

	log.Info().
		Str("out", *outName).
		Str("blockSize", fmt.Sprintf("%#x", consumed)).
		Int("plain", len(plain)).
		Msg("unpacked")
	return nil
}

func stats(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	graph := fs.String("graph", "", "write an SVG scatter plot of the LZ distance histogram")
	packed := fs.Bool("c", false, "input is already packed; read its token stream instead of parsing")
	configFile := fs.String("config", "", "JSON parser configuration file")
	greedy := fs.Bool("greedy", false, "use the greedy parser of the original encoder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	inName, err := inputFile(fs)
	if err != nil {
		return err
	}

	p, err := os.ReadFile(inName)
	if err != nil {
		return err
	}
	var tokens []bbdlz.Token
	if *packed {
		tokens, _, err = bbdlz.Tokens(p, 0)
	} else {
		var parser bbdlz.Parser
		if parser, err = newParser(*configFile, *greedy); err == nil {
			tokens, err = parser.Parse(p)
		}
	}
	if err != nil {
		return err
	}

	st := bbdlz.CollectStats(tokens)
	log.Info().
		Int("raw", st.RawTokens).
		Int("rle", st.RLETokens).
		Int("lz", st.LZTokens).
		Int("emit", st.EmitBytes).
		Int("plain", st.PlainBytes).
		Float64("ratio", st.Ratio()).
		Msg("token stats")

	if *graph != "" {
		if err := scatterIntMap(*graph, st.DistHist); err != nil {
			return err
		}
		log.Info().Str("out", *graph).Msg("distance histogram written")
	}
	return nil
}
